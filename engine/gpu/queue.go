package gpu

// CommandQueue accepts register writes and draw submissions. Implementations
// may defer execution, but Submit must not return before every command
// added so far has been accepted, in order.
type CommandQueue interface {
	// AddWrite writes a single register.
	AddWrite(reg Register, word uint32)
	// AddIncrementalWrites writes len(words) consecutive registers starting at reg.
	AddIncrementalWrites(reg Register, words []uint32)
	// FixedAttribute selects attribute index and loads it with a constant value.
	FixedAttribute(index uint8, x, y, z, w float32)
	// DrawArrays draws count vertices starting at first.
	DrawArrays(prim Primitive, first, count uint32)
	// DrawElements draws count 16-bit indices stored at indexAddr, which is
	// relative to the base of the linear heap.
	DrawElements(prim Primitive, indexAddr, count uint32)
	// Submit hands everything queued so far to the GPU.
	Submit() error
}

// Memory describes the linear region the GPU can read directly.
type Memory interface {
	Base() uintptr
	Size() uintptr
}

// Allocator hands out regions of GPU-readable memory.
type Allocator interface {
	Memory
	Alloc(size, align int) ([]byte, error)
}
