package gl

// Enum is a GL enumerant.
type Enum uint32

// Element types.
const (
	BYTE           Enum = 0x1400
	UNSIGNED_BYTE  Enum = 0x1401
	SHORT          Enum = 0x1402
	UNSIGNED_SHORT Enum = 0x1403
	FLOAT          Enum = 0x1406
)

// Primitive modes. Only the triangle modes have a hardware equivalent.
const (
	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005
	TRIANGLE_FAN   Enum = 0x0006
)

// Client array kinds.
const (
	VERTEX_ARRAY        Enum = 0x8074
	COLOR_ARRAY         Enum = 0x8076
	TEXTURE_COORD_ARRAY Enum = 0x8078
)

// Texture units.
const (
	TEXTURE0 Enum = 0x84C0
	TEXTURE1 Enum = 0x84C1
)

// MAX_TEXTURE_UNITS is the number of texture units with a coordinate array.
const MAX_TEXTURE_UNITS = 2

// MAX_BATCHED_DRAWS is the default number of draws queued before a flush
// is forced.
const MAX_BATCHED_DRAWS = 64
