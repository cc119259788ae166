package gpu

// AttribType is the element type of a vertex attribute as understood by the
// vertex fetch stage.
type AttribType uint8

const (
	GPU_BYTE          AttribType = 0x0
	GPU_UNSIGNED_BYTE AttribType = 0x1
	GPU_SHORT         AttribType = 0x2
	GPU_FLOAT         AttribType = 0x3
)

// Size returns the size of one element in bytes.
func (t AttribType) Size() uint32 {
	switch t {
	case GPU_SHORT:
		return 2
	case GPU_FLOAT:
		return 4
	default:
		return 1
	}
}

func (t AttribType) String() string {
	switch t {
	case GPU_BYTE:
		return "byte"
	case GPU_UNSIGNED_BYTE:
		return "ubyte"
	case GPU_SHORT:
		return "short"
	case GPU_FLOAT:
		return "float"
	default:
		return "invalid"
	}
}

// Semantic is the vertex shader input an attribute feeds. Position and color
// always occupy inputs 0 and 1.
type Semantic uint8

const (
	SEMANTIC_POSITION Semantic = iota
	SEMANTIC_COLOR
	SEMANTIC_TEXCOORD0
	SEMANTIC_TEXCOORD1
	SEMANTIC_MAX
)

func (s Semantic) String() string {
	switch s {
	case SEMANTIC_POSITION:
		return "position"
	case SEMANTIC_COLOR:
		return "color"
	case SEMANTIC_TEXCOORD0:
		return "texcoord0"
	case SEMANTIC_TEXCOORD1:
		return "texcoord1"
	default:
		return "invalid"
	}
}

// AttribFmt returns the format nibble of attribute index with count elements
// of type typ, shifted into its place in the attribute format word.
func AttribFmt(index Semantic, count uint8, typ AttribType) uint64 {
	return (uint64(count-1)<<2 | uint64(typ&3)) << (uint64(index) * 4)
}

// Primitive is the primitive topology of a draw.
type Primitive uint32

const (
	PRIMITIVE_TRIANGLES      Primitive = 0x0000
	PRIMITIVE_TRIANGLE_STRIP Primitive = 0x0100
	PRIMITIVE_TRIANGLE_FAN   Primitive = 0x0200
)

func (p Primitive) String() string {
	switch p {
	case PRIMITIVE_TRIANGLES:
		return "triangles"
	case PRIMITIVE_TRIANGLE_STRIP:
		return "triangle_strip"
	case PRIMITIVE_TRIANGLE_FAN:
		return "triangle_fan"
	default:
		return "invalid"
	}
}
