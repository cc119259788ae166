package gl

import (
	"fmt"

	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/engine/gpu"
)

// STAGING_ALIGNMENT is the alignment of every staging region inside the
// linear heap.
const STAGING_ALIGNMENT = 128

// StagingArena is a bump allocator over GPU-readable memory. Space is
// handed out from a single cursor and only reclaimed as a whole by
// ResetEpoch. The arena owns several equally sized regions and moves to the
// next one on every reset, so the region consumed by the commands just
// submitted is left alone for the following epoch.
type StagingArena struct {
	mem      gpu.Memory
	regions  [][]byte
	current  int
	cursor   int
	capacity int
	epoch    uint64
}

// NewStagingArena carves count regions of capacity bytes each out of heap.
func NewStagingArena(heap gpu.Allocator, capacity, count int) (*StagingArena, error) {
	if capacity <= 0 || count <= 0 {
		return nil, fmt.Errorf("%w: staging arena of %d x %d bytes", core.ErrInvalidConfig, count, capacity)
	}
	s := &StagingArena{
		mem:      heap,
		regions:  make([][]byte, count),
		capacity: capacity,
	}
	for i := range s.regions {
		region, err := heap.Alloc(capacity, STAGING_ALIGNMENT)
		if err != nil {
			return nil, fmt.Errorf("staging region %d: %w", i, err)
		}
		s.regions[i] = region
	}
	return s, nil
}

func (s *StagingArena) Capacity() int {
	return s.capacity
}

// Cursor returns the number of bytes reserved in the current epoch.
func (s *StagingArena) Cursor() int {
	return s.cursor
}

// Epoch returns how many times the arena has been reset.
func (s *StagingArena) Epoch() uint64 {
	return s.epoch
}

// WouldOverflow reports whether reserving n more bytes exceeds the capacity.
func (s *StagingArena) WouldOverflow(n int) bool {
	return n < 0 || s.cursor+n > s.capacity
}

// Reserve returns the offset of n fresh bytes in the current region. A
// request that does not fit is refused entirely.
func (s *StagingArena) Reserve(n int) (int, error) {
	if s.WouldOverflow(n) {
		return 0, fmt.Errorf("%w: %d bytes requested, %d of %d in use", core.ErrArenaOverflow, n, s.cursor, s.capacity)
	}
	off := s.cursor
	s.cursor += n
	return off, nil
}

// CopyIn reserves n bytes and copies src into them. A nil src only reserves
// the space. Bytes of the reservation past len(src) are left as they were.
// It returns the address of the copy relative to the linear heap base.
func (s *StagingArena) CopyIn(src []byte, n int) (uint32, error) {
	off, err := s.Reserve(n)
	if err != nil {
		return 0, err
	}
	region := s.regions[s.current]
	if src != nil {
		copy(region[off:off+n], src)
	}
	return gpu.Offset(s.mem, region) + uint32(off), nil
}

// Bytes returns the n bytes at the heap-relative address addr if they lie in
// the current region.
func (s *StagingArena) Bytes(addr uint32, n int) ([]byte, bool) {
	region := s.regions[s.current]
	start := int(addr) - int(gpu.Offset(s.mem, region))
	if start < 0 || n < 0 || start+n > s.cursor {
		return nil, false
	}
	return region[start : start+n], true
}

// ResetEpoch rewinds the cursor and switches to the next region. Only a
// flush may call it.
func (s *StagingArena) ResetEpoch() {
	s.cursor = 0
	s.current = (s.current + 1) % len(s.regions)
	s.epoch++
}
