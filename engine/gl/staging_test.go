package gl

import (
	"testing"

	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/engine/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArena(t *testing.T, capacity, count int) (*gpu.LinearHeap, *StagingArena) {
	t.Helper()
	heap, err := gpu.NewLinearHeap(1 << 14)
	require.NoError(t, err)
	arena, err := NewStagingArena(heap, capacity, count)
	require.NoError(t, err)
	return heap, arena
}

func TestStagingCursorIsMonotonic(t *testing.T) {
	_, arena := newTestArena(t, 256, 1)

	a, err := arena.CopyIn([]byte{1, 2, 3, 4}, 4)
	require.NoError(t, err)
	b, err := arena.CopyIn([]byte{5, 6}, 2)
	require.NoError(t, err)

	assert.Equal(t, a+4, b)
	assert.Equal(t, 6, arena.Cursor())

	got, ok := arena.Bytes(a, 6)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, got)
}

func TestStagingOverflowLeavesStateAlone(t *testing.T) {
	_, arena := newTestArena(t, 16, 1)

	_, err := arena.Reserve(10)
	require.NoError(t, err)
	assert.True(t, arena.WouldOverflow(7))
	assert.False(t, arena.WouldOverflow(6))
	assert.True(t, arena.WouldOverflow(-1))

	_, err = arena.CopyIn(make([]byte, 7), 7)
	require.ErrorIs(t, err, core.ErrArenaOverflow)
	assert.Equal(t, 10, arena.Cursor())

	_, err = arena.Reserve(6)
	require.NoError(t, err)
	assert.Equal(t, 16, arena.Cursor())
}

func TestStagingResetRotatesRegions(t *testing.T) {
	heap, arena := newTestArena(t, 200, 2)

	first, err := arena.CopyIn([]byte{1}, 1)
	require.NoError(t, err)
	arena.ResetEpoch()
	assert.Equal(t, 0, arena.Cursor())
	assert.Equal(t, uint64(1), arena.Epoch())

	second, err := arena.CopyIn([]byte{2}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Zero(t, second%STAGING_ALIGNMENT)

	arena.ResetEpoch()
	third, err := arena.CopyIn([]byte{3}, 1)
	require.NoError(t, err)
	assert.Equal(t, first, third)
	assert.Less(t, int(third), int(heap.Size()))
}

func TestStagingReservationWithoutSource(t *testing.T) {
	_, arena := newTestArena(t, 64, 1)

	addr, err := arena.CopyIn(nil, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, arena.Cursor())

	// a short source only fills the front of the reservation
	next, err := arena.CopyIn([]byte{9}, 4)
	require.NoError(t, err)
	assert.Equal(t, addr+8, next)
	assert.Equal(t, 12, arena.Cursor())
}

func TestStagingRejectsBadSizes(t *testing.T) {
	heap, err := gpu.NewLinearHeap(1024)
	require.NoError(t, err)

	_, err = NewStagingArena(heap, 0, 1)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	_, err = NewStagingArena(heap, 1024, 2)
	assert.ErrorIs(t, err, core.ErrHeapExhausted)
}

func TestStagingReserveAfterReset(t *testing.T) {
	_, arena := newTestArena(t, 64, 2)

	var last int
	for i, n := range []int{4, 12, 1, 30} {
		off, err := arena.Reserve(n)
		require.NoError(t, err)
		if i > 0 {
			assert.Greater(t, off, last)
		}
		last = off
	}
	arena.ResetEpoch()

	off, err := arena.Reserve(0)
	require.NoError(t, err)
	assert.Equal(t, 0, off)
}
