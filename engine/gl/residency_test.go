package gl

import (
	"testing"

	"github.com/spaghettifunk/tilegl/engine/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResidencyBounds(t *testing.T) {
	heap, err := gpu.NewLinearHeap(4096)
	require.NoError(t, err)
	c := NewResidencyClassifier(heap)

	base := heap.Base()
	assert.True(t, c.IsResidentAddr(base))
	assert.True(t, c.IsResidentAddr(base+4095))
	assert.False(t, c.IsResidentAddr(base-1))
	assert.False(t, c.IsResidentAddr(base+4096))
}

func TestResidencyOfSlices(t *testing.T) {
	heap, err := gpu.NewLinearHeap(4096)
	require.NoError(t, err)
	c := NewResidencyClassifier(heap)

	_, err = heap.Alloc(64, 1)
	require.NoError(t, err)
	buf, err := heap.Alloc(32, 16)
	require.NoError(t, err)

	assert.True(t, c.IsResident(buf))
	assert.Equal(t, uint32(64), c.Offset(buf))

	assert.False(t, c.IsResident(make([]byte, 32)))
	assert.False(t, c.IsResident(nil))
	assert.False(t, c.IsResident(buf[:0]))
}
