package core

import (
	"errors"
)

var (
	// ErrArenaOverflow is returned when a staging reservation does not fit in
	// the remaining capacity of the current epoch.
	ErrArenaOverflow = errors.New("staging arena overflow")
	// ErrUnsupportedType means an element type is not legal for the array kind.
	ErrUnsupportedType = errors.New("unsupported element type")
	// ErrUnsupportedIndexType means an index list is not GL_UNSIGNED_SHORT.
	ErrUnsupportedIndexType = errors.New("unsupported index type")
	// ErrInvalidSize means an element count per vertex is outside the range
	// the array kind accepts.
	ErrInvalidSize = errors.New("invalid element count")
	// ErrInvalidStride means a stride is negative, shorter than one packed
	// vertex, or too wide for the 8-bit stride field.
	ErrInvalidStride = errors.New("invalid stride")
	// ErrUnsupportedPointer means client data was not given as a slice of a
	// fixed-size type.
	ErrUnsupportedPointer = errors.New("unsupported client pointer")
	// ErrSlotOutOfRange means an attribute buffer slot id is above 11.
	ErrSlotOutOfRange = errors.New("attribute buffer slot out of range")
	// ErrTooManyComponents means a slot's component list, padding included,
	// needs more than the 12 nibbles the hardware holds.
	ErrTooManyComponents = errors.New("too many slot components")
	// ErrHeapExhausted is returned when the linear heap cannot satisfy a carve-out.
	ErrHeapExhausted = errors.New("linear heap exhausted")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknown       = errors.New("unknown")
)
