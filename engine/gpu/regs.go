package gpu

// Register is the index of a GPU register as addressed by the command stream.
type Register uint16

const (
	GPUREG_FINALIZE Register = 0x0010

	GPUREG_ATTRIBBUFFERS_LOC        Register = 0x0200
	GPUREG_ATTRIBBUFFERS_FORMAT_LOW Register = 0x0201
	GPUREG_ATTRIBBUFFER0_OFFSET     Register = 0x0203
	GPUREG_ATTRIBBUFFER0_CONFIG1    Register = 0x0204

	GPUREG_INDEXBUFFER_CONFIG Register = 0x0227
	GPUREG_NUMVERTICES        Register = 0x0228
	GPUREG_GEOSTAGE_CONFIG    Register = 0x0229
	GPUREG_VERTEX_OFFSET      Register = 0x022A
	GPUREG_DRAWARRAYS         Register = 0x022E
	GPUREG_DRAWELEMENTS       Register = 0x022F
	GPUREG_VTX_FUNC           Register = 0x0231
	GPUREG_FIXEDATTRIB_INDEX  Register = 0x0232
	GPUREG_FIXEDATTRIB_DATA0  Register = 0x0233

	GPUREG_START_DRAW_FUNC0  Register = 0x0245
	GPUREG_GEOSTAGE_CONFIG2  Register = 0x0254
	GPUREG_PRIMITIVE_CONFIG  Register = 0x025E
	GPUREG_RESTART_PRIMITIVE Register = 0x025F

	GPUREG_VSH_NUM_ATTR                   Register = 0x02B9
	GPUREG_VSH_ATTRIBUTES_PERMUTATION_LOW Register = 0x02BB
)

// Each attribute buffer slot owns OFFSET, CONFIG1 and CONFIG2, laid out
// consecutively starting at GPUREG_ATTRIBBUFFER0_OFFSET.
const ATTRIBBUFFER_REGISTER_STRIDE Register = 3

// MAX_ATTRIB_BUFFERS is the number of attribute buffer slots the vertex
// fetch stage exposes.
const MAX_ATTRIB_BUFFERS = 12

// SlotRegister returns the register of slot id that corresponds to base,
// which must be one of the GPUREG_ATTRIBBUFFER0_* registers.
func SlotRegister(base Register, id uint8) Register {
	return base + Register(id)*ATTRIBBUFFER_REGISTER_STRIDE
}
