package gpu

import (
	"testing"

	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearHeapAlloc(t *testing.T) {
	h, err := NewLinearHeap(1024)
	require.NoError(t, err)
	assert.Equal(t, uintptr(1024), h.Size())

	a, err := h.Alloc(10, 1)
	require.NoError(t, err)
	assert.Len(t, a, 10)
	assert.Equal(t, uint32(0), Offset(h, a))

	b, err := h.Alloc(100, 128)
	require.NoError(t, err)
	assert.Equal(t, uint32(128), Offset(h, b))
	assert.Equal(t, 1024-228, h.Available())

	_, err = h.Alloc(1024, 1)
	assert.ErrorIs(t, err, core.ErrHeapExhausted)
}

func TestLinearHeapRegionsDoNotGrowIntoEachOther(t *testing.T) {
	h, err := NewLinearHeap(64)
	require.NoError(t, err)
	a, err := h.Alloc(8, 1)
	require.NoError(t, err)
	a = append(a, 1)
	b, err := h.Alloc(8, 1)
	require.NoError(t, err)
	assert.Zero(t, b[0], "append on a full region must reallocate")
	assert.NotEqual(t, Address(a), Address(b))
}

func TestNewLinearHeapInvalidSize(t *testing.T) {
	_, err := NewLinearHeap(0)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestAddressOfEmptySlice(t *testing.T) {
	assert.Zero(t, Address(nil))
	assert.Zero(t, Address([]byte{}))
}
