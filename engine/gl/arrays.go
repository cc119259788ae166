package gl

import (
	"fmt"

	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/engine/gpu"
	"github.com/spaghettifunk/tilegl/engine/math"
	"honnef.co/go/safeish"
)

// MAX_STRIDE is the widest stride the 8-bit slot stride field can hold.
const MAX_STRIDE = 0xFF

// ArrayDescriptor is the state of one client array as last bound.
type ArrayDescriptor struct {
	Type gpu.AttribType
	// Elements per vertex.
	Size uint8
	// Byte distance between consecutive vertices.
	Stride uint32
	// 4-byte words the slot skips after the elements of each vertex.
	Padding uint32
	// Client memory, read at draw time only.
	Pointer []byte
	Enabled bool
}

// TightStride is the stride of a tightly packed array.
func (a *ArrayDescriptor) TightStride() uint32 {
	return uint32(a.Size) * a.Type.Size()
}

// ArrayRegistry holds the client array bound to each vertex input.
type ArrayRegistry struct {
	arrays [gpu.SEMANTIC_MAX]ArrayDescriptor
}

// Bind validates and stores the array for sem. On error the previous
// descriptor is left untouched.
func (r *ArrayRegistry) Bind(sem gpu.Semantic, size int, typ Enum, stride int, pointer any) error {
	if sem >= gpu.SEMANTIC_MAX {
		return fmt.Errorf("%w: %d", core.ErrUnknown, sem)
	}

	attribType, ok := attribTypeFor(sem, typ)
	if !ok {
		return fmt.Errorf("%w: 0x%04X for %s array", core.ErrUnsupportedType, uint32(typ), sem)
	}

	minSize := 2
	if sem == gpu.SEMANTIC_COLOR {
		minSize = 1
	}
	if size < minSize || size > 4 {
		return fmt.Errorf("%w: %d for %s array", core.ErrInvalidSize, size, sem)
	}

	data, err := bytesOf(pointer)
	if err != nil {
		return err
	}

	a := ArrayDescriptor{
		Type:    attribType,
		Size:    uint8(size),
		Pointer: data,
		Enabled: r.arrays[sem].Enabled,
	}
	a.Stride = a.TightStride()

	if stride != 0 {
		if stride < int(a.Stride) || stride > MAX_STRIDE {
			return fmt.Errorf("%w: %d for %s array of %d bytes per vertex", core.ErrInvalidStride, stride, sem, a.Stride)
		}
		a.Padding = (uint32(stride) - a.Stride) / 4
		a.Stride = uint32(stride)

		// Padding is skipped in whole words.
		if a.Padding > 0 && a.Stride%4 != 0 {
			return fmt.Errorf("%w: %d for %s array is padded but not word aligned", core.ErrInvalidStride, stride, sem)
		}
		if a.Padding > gpu.MAX_SLOT_PADDING {
			return fmt.Errorf("%w: %d for %s array needs %d padding words, at most %d fit", core.ErrInvalidStride, stride, sem, a.Padding, gpu.MAX_SLOT_PADDING)
		}
	}

	r.arrays[sem] = a
	return nil
}

// SetEnabled toggles the array for sem. Unknown inputs are ignored.
func (r *ArrayRegistry) SetEnabled(sem gpu.Semantic, enabled bool) {
	if sem >= gpu.SEMANTIC_MAX {
		return
	}
	r.arrays[sem].Enabled = enabled
}

// Enabled reports whether the array for sem is enabled.
func (r *ArrayRegistry) Enabled(sem gpu.Semantic) bool {
	return sem < gpu.SEMANTIC_MAX && r.arrays[sem].Enabled
}

// Array returns a copy of the descriptor for sem.
func (r *ArrayRegistry) Array(sem gpu.Semantic) ArrayDescriptor {
	if sem >= gpu.SEMANTIC_MAX {
		return ArrayDescriptor{}
	}
	return r.arrays[sem]
}

func (r *ArrayRegistry) array(sem gpu.Semantic) *ArrayDescriptor {
	return &r.arrays[sem]
}

// attribTypeFor maps a GL element type to its hardware type, if the array
// kind accepts it. Only colors may be bytes.
func attribTypeFor(sem gpu.Semantic, typ Enum) (gpu.AttribType, bool) {
	switch typ {
	case SHORT:
		return gpu.GPU_SHORT, true
	case FLOAT:
		return gpu.GPU_FLOAT, true
	case BYTE:
		return gpu.GPU_BYTE, sem == gpu.SEMANTIC_COLOR
	case UNSIGNED_BYTE:
		return gpu.GPU_UNSIGNED_BYTE, sem == gpu.SEMANTIC_COLOR
	default:
		return 0, false
	}
}

// bytesOf reinterprets client data as bytes without copying.
func bytesOf(pointer any) ([]byte, error) {
	switch p := pointer.(type) {
	case nil:
		return nil, nil
	case []byte:
		return p, nil
	case []int8:
		return safeish.SliceCast[[]byte](p), nil
	case []int16:
		return safeish.SliceCast[[]byte](p), nil
	case []uint16:
		return safeish.SliceCast[[]byte](p), nil
	case []int32:
		return safeish.SliceCast[[]byte](p), nil
	case []uint32:
		return safeish.SliceCast[[]byte](p), nil
	case []float32:
		return safeish.SliceCast[[]byte](p), nil
	case []math.Vec2:
		return safeish.SliceCast[[]byte](p), nil
	case []math.Vec3:
		return safeish.SliceCast[[]byte](p), nil
	case []math.Vec4:
		return safeish.SliceCast[[]byte](p), nil
	default:
		return nil, fmt.Errorf("%w: %T", core.ErrUnsupportedPointer, pointer)
	}
}
