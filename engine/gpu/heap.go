package gpu

import (
	"fmt"
	"unsafe"

	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/engine/math"
)

// LinearHeap is the physically contiguous region the GPU reads vertex and
// index data from. Regions are carved out with a bump pointer and never
// returned.
type LinearHeap struct {
	mem  []byte
	next int
}

func NewLinearHeap(size int) (*LinearHeap, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: linear heap size %d", core.ErrInvalidConfig, size)
	}
	return &LinearHeap{mem: make([]byte, size)}, nil
}

func (h *LinearHeap) Base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(h.mem)))
}

func (h *LinearHeap) Size() uintptr {
	return uintptr(len(h.mem))
}

// Available returns the number of bytes not yet handed out, ignoring
// alignment.
func (h *LinearHeap) Available() int {
	return len(h.mem) - h.next
}

// Alloc carves size bytes aligned to align (relative to the heap base).
func (h *LinearHeap) Alloc(size, align int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative allocation", core.ErrHeapExhausted)
	}
	if align < 1 {
		align = 1
	}
	start := math.NextMultipleOf(h.next, align)
	if start+size > len(h.mem) {
		return nil, fmt.Errorf("%w: want %d bytes, %d available", core.ErrHeapExhausted, size, len(h.mem)-start)
	}
	h.next = start + size
	return h.mem[start : start+size : start+size], nil
}

// Offset returns the address of the first byte of b relative to the heap base.
// b must lie in the heap.
func Offset(m Memory, b []byte) uint32 {
	return uint32(Address(b) - m.Base())
}

// Address returns the numeric address of the first byte of b, or 0 for an
// empty slice.
func Address(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
