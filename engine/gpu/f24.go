package gpu

import gomath "math"

// F32ToF24 converts f to the 24-bit float format used by fixed attributes:
// 1 sign bit, 7 exponent bits (bias 63) and 16 mantissa bits.
func F32ToF24(f float32) uint32 {
	if f == 0 {
		return 0
	}
	v := gomath.Float32bits(f)
	sign := v >> 31
	exponent := ((v >> 23) & 0xFF) - 0x40
	mantissa := (v >> 7) & 0xFFFF
	return (sign << 23) | ((exponent & 0x7F) << 16) | mantissa
}

// PackF24x4 packs four 24-bit floats into the three words loaded into
// GPUREG_FIXEDATTRIB_DATA0..2, w first.
func PackF24x4(x, y, z, w float32) [3]uint32 {
	x24, y24, z24, w24 := F32ToF24(x), F32ToF24(y), F32ToF24(z), F32ToF24(w)
	return [3]uint32{
		w24<<8 | z24>>16,
		z24<<16 | y24>>8,
		y24<<24 | x24,
	}
}
