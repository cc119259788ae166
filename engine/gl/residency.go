package gl

import "github.com/spaghettifunk/tilegl/engine/gpu"

// ResidencyClassifier decides whether client memory is already readable by
// the GPU.
type ResidencyClassifier struct {
	mem gpu.Memory
}

func NewResidencyClassifier(mem gpu.Memory) ResidencyClassifier {
	return ResidencyClassifier{mem: mem}
}

// IsResidentAddr reports whether addr lies in [base, base+size).
func (c ResidencyClassifier) IsResidentAddr(addr uintptr) bool {
	base := c.mem.Base()
	return addr >= base && addr-base < c.mem.Size()
}

// IsResident reports whether the first byte of p lies in linear memory. Empty
// slices never do.
func (c ResidencyClassifier) IsResident(p []byte) bool {
	if len(p) == 0 {
		return false
	}
	return c.IsResidentAddr(gpu.Address(p))
}

// Offset returns the heap-relative address of resident memory p.
func (c ResidencyClassifier) Offset(p []byte) uint32 {
	return gpu.Offset(c.mem, p)
}
