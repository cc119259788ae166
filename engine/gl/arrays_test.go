package gl

import (
	"testing"

	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/engine/gpu"
	"github.com/spaghettifunk/tilegl/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindTightStride(t *testing.T) {
	var r ArrayRegistry
	verts := make([]float32, 9)
	require.NoError(t, r.Bind(gpu.SEMANTIC_POSITION, 3, FLOAT, 0, verts))

	a := r.Array(gpu.SEMANTIC_POSITION)
	assert.Equal(t, gpu.GPU_FLOAT, a.Type)
	assert.Equal(t, uint8(3), a.Size)
	assert.Equal(t, uint32(12), a.Stride)
	assert.Equal(t, uint32(0), a.Padding)
	assert.Len(t, a.Pointer, 36)
}

func TestBindPaddedStride(t *testing.T) {
	var r ArrayRegistry
	// xyz followed by an unused uv pair
	require.NoError(t, r.Bind(gpu.SEMANTIC_POSITION, 3, FLOAT, 20, make([]float32, 15)))

	a := r.Array(gpu.SEMANTIC_POSITION)
	assert.Equal(t, uint32(20), a.Stride)
	assert.Equal(t, uint32(2), a.Padding)
}

func TestBindRejectsBytePositions(t *testing.T) {
	var r ArrayRegistry
	require.NoError(t, r.Bind(gpu.SEMANTIC_POSITION, 2, SHORT, 0, make([]int16, 6)))

	err := r.Bind(gpu.SEMANTIC_POSITION, 3, UNSIGNED_BYTE, 0, make([]byte, 9))
	require.ErrorIs(t, err, core.ErrUnsupportedType)

	a := r.Array(gpu.SEMANTIC_POSITION)
	assert.Equal(t, gpu.GPU_SHORT, a.Type, "previous binding must survive")
	assert.Equal(t, uint8(2), a.Size)
}

func TestBindColorBytes(t *testing.T) {
	var r ArrayRegistry
	require.NoError(t, r.Bind(gpu.SEMANTIC_COLOR, 4, UNSIGNED_BYTE, 0, make([]byte, 12)))

	a := r.Array(gpu.SEMANTIC_COLOR)
	assert.Equal(t, gpu.GPU_UNSIGNED_BYTE, a.Type)
	assert.Equal(t, uint32(4), a.Stride)

	require.NoError(t, r.Bind(gpu.SEMANTIC_COLOR, 1, BYTE, 0, make([]int8, 3)))
	assert.Equal(t, uint32(1), r.Array(gpu.SEMANTIC_COLOR).Stride)
}

func TestBindValidation(t *testing.T) {
	tests := []struct {
		name   string
		sem    gpu.Semantic
		size   int
		typ    Enum
		stride int
		data   any
		err    error
	}{
		{"unsigned short", gpu.SEMANTIC_POSITION, 3, UNSIGNED_SHORT, 0, nil, core.ErrUnsupportedType},
		{"size one position", gpu.SEMANTIC_POSITION, 1, FLOAT, 0, nil, core.ErrInvalidSize},
		{"size five color", gpu.SEMANTIC_COLOR, 5, FLOAT, 0, nil, core.ErrInvalidSize},
		{"stride below element", gpu.SEMANTIC_TEXCOORD0, 2, FLOAT, 4, nil, core.ErrInvalidStride},
		{"stride too wide", gpu.SEMANTIC_TEXCOORD0, 2, FLOAT, 256, nil, core.ErrInvalidStride},
		{"padded stride not word aligned", gpu.SEMANTIC_COLOR, 2, UNSIGNED_BYTE, 10, nil, core.ErrInvalidStride},
		{"padding overflows component list", gpu.SEMANTIC_POSITION, 2, FLOAT, 252, nil, core.ErrInvalidStride},
		{"pointer type", gpu.SEMANTIC_TEXCOORD0, 2, FLOAT, 0, []float64{1, 2}, core.ErrUnsupportedPointer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r ArrayRegistry
			assert.ErrorIs(t, r.Bind(tt.sem, tt.size, tt.typ, tt.stride, tt.data), tt.err)
			assert.Equal(t, ArrayDescriptor{}, r.Array(tt.sem))
		})
	}
}

func TestBindPaddingLimits(t *testing.T) {
	var r ArrayRegistry

	// 6 bytes over a 4-byte color: no whole word of padding.
	require.NoError(t, r.Bind(gpu.SEMANTIC_COLOR, 4, UNSIGNED_BYTE, 6, nil))
	assert.Equal(t, uint32(6), r.Array(gpu.SEMANTIC_COLOR).Stride)
	assert.Zero(t, r.Array(gpu.SEMANTIC_COLOR).Padding)

	// 8 + 44*4 bytes is the widest padded position a slot can describe.
	require.NoError(t, r.Bind(gpu.SEMANTIC_POSITION, 2, FLOAT, 8+gpu.MAX_SLOT_PADDING*4, nil))
	assert.Equal(t, uint32(gpu.MAX_SLOT_PADDING), r.Array(gpu.SEMANTIC_POSITION).Padding)

	assert.ErrorIs(t, r.Bind(gpu.SEMANTIC_POSITION, 2, FLOAT, 8+(gpu.MAX_SLOT_PADDING+1)*4, nil), core.ErrInvalidStride)
	assert.Equal(t, uint32(gpu.MAX_SLOT_PADDING), r.Array(gpu.SEMANTIC_POSITION).Padding, "rejected bind keeps the previous array")
}

func TestBindKeepsEnableFlag(t *testing.T) {
	var r ArrayRegistry
	r.SetEnabled(gpu.SEMANTIC_TEXCOORD1, true)
	require.NoError(t, r.Bind(gpu.SEMANTIC_TEXCOORD1, 2, SHORT, 0, make([]int16, 4)))
	assert.True(t, r.Enabled(gpu.SEMANTIC_TEXCOORD1))

	r.SetEnabled(gpu.SEMANTIC_TEXCOORD1, false)
	assert.False(t, r.Enabled(gpu.SEMANTIC_TEXCOORD1))
	assert.False(t, r.Enabled(gpu.SEMANTIC_MAX))
}

func TestBytesOfVectors(t *testing.T) {
	data, err := bytesOf([]math.Vec3{{X: 1}, {Y: 2}})
	require.NoError(t, err)
	assert.Len(t, data, 24)

	data, err = bytesOf(nil)
	require.NoError(t, err)
	assert.Nil(t, data)
}
