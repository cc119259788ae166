package gpu

import (
	"fmt"

	"github.com/spaghettifunk/tilegl/engine/core"
)

// Nibbles 0x0-0xB of an attribute buffer's component list name attribute
// indices; 0xC-0xF skip 1-4 words of padding.
const (
	ATTRIB_SKIP_BASE uint64 = 0xB
	ATTRIB_SKIP_4    uint64 = 0xF
)

// MAX_SLOT_COMPONENTS is the number of nibbles in a slot's component list.
const MAX_SLOT_COMPONENTS = 12

// MAX_SLOT_PADDING is the most padding, in 4-byte words, a slot holding a
// single attribute can skip.
const MAX_SLOT_PADDING = (MAX_SLOT_COMPONENTS - 1) * 4

// SlotConfig holds the CONFIG1/CONFIG2 words of one attribute buffer slot.
type SlotConfig struct {
	Word0 uint32
	Word1 uint32
}

// Format returns the 48-bit component list.
func (c SlotConfig) Format() uint64 {
	return uint64(c.Word0) | uint64(c.Word1&0xFFFF)<<32
}

// Stride returns the vertex stride in bytes.
func (c SlotConfig) Stride() uint8 {
	return uint8(c.Word1 >> 16)
}

// Count returns the number of components, padding included.
func (c SlotConfig) Count() uint8 {
	return uint8(c.Word1 >> 28)
}

// AppendPadding appends skip nibbles covering padding 4-byte words to format,
// which already holds count components. Full groups of four become one 0xF
// nibble; a remainder r becomes 0xB+r.
func AppendPadding(format uint64, count uint32, padding uint32) (uint64, uint32) {
	for padding > 0 {
		if padding < 4 {
			format |= (ATTRIB_SKIP_BASE + uint64(padding)) << (uint64(count) * 4)
			padding = 0
		} else {
			format |= ATTRIB_SKIP_4 << (uint64(count) * 4)
			padding -= 4
		}
		count++
	}
	return format, count
}

// EncodeSlot packs the configuration of attribute buffer slot id: format is
// the component list holding count entries, stride the vertex stride and
// padding the number of trailing 4-byte words to skip.
func EncodeSlot(id uint8, format uint64, stride uint32, count uint32, padding uint32) (SlotConfig, error) {
	if id >= MAX_ATTRIB_BUFFERS {
		return SlotConfig{}, fmt.Errorf("%w: %d", core.ErrSlotOutOfRange, id)
	}

	format, count = AppendPadding(format, count, padding)
	if count > MAX_SLOT_COMPONENTS {
		return SlotConfig{}, fmt.Errorf("%w: %d in slot %d", core.ErrTooManyComponents, count, id)
	}

	return SlotConfig{
		Word0: uint32(format & 0xFFFFFFFF),
		Word1: (count&0xF)<<28 | (stride&0xFF)<<16 | uint32((format>>32)&0xFFFF),
	}, nil
}

// ConfigureSlot encodes slot id and queues its configuration. It reports
// false, writing nothing, when id is out of range or the padding does not
// fit the component list.
func ConfigureSlot(q CommandQueue, id uint8, format uint64, stride uint32, count uint32, padding uint32) bool {
	cfg, err := EncodeSlot(id, format, stride, count, padding)
	if err != nil {
		core.LogDebug("%s", err)
		return false
	}
	q.AddIncrementalWrites(SlotRegister(GPUREG_ATTRIBBUFFER0_CONFIG1, id), []uint32{cfg.Word0, cfg.Word1})
	return true
}

// SetSlotOffset points slot id at addr, relative to the linear heap base.
func SetSlotOffset(q CommandQueue, id uint8, addr uint32) bool {
	if id >= MAX_ATTRIB_BUFFERS {
		return false
	}
	q.AddWrite(SlotRegister(GPUREG_ATTRIBBUFFER0_OFFSET, id), addr)
	return true
}

// BuffersFormat describes how every vertex shader input of a draw is sourced.
type BuffersFormat struct {
	// Format holds one AttribFmt nibble per attribute.
	Format uint64
	// FixedMask has bit i set when attribute i is a constant.
	FixedMask uint16
	// Permutation maps vertex shader input i (nibble i) to an attribute.
	Permutation uint64
	// BufferCount is the number of buffer-sourced attribute slots in use.
	BufferCount uint8
	// AttribCount is the number of vertex shader inputs fed. It is written
	// to its own register and is not part of Words.
	AttribCount uint8
}

// Words returns the FORMAT_LOW/FORMAT_HIGH pair followed by the
// PERMUTATION_LOW/PERMUTATION_HIGH pair.
func (f BuffersFormat) Words() [4]uint32 {
	count := uint32(f.BufferCount)
	if count > 0 {
		count--
	}
	return [4]uint32{
		uint32(f.Format & 0xFFFFFFFF),
		(count&0xF)<<28 | uint32(f.FixedMask&0xFFF)<<16 | uint32((f.Format>>32)&0xFFFF),
		uint32(f.Permutation & 0xFFFFFFFF),
		uint32((f.Permutation >> 32) & 0xFFFF),
	}
}

// DecodeBuffersFormat is the inverse of BuffersFormat.Words.
func DecodeBuffersFormat(w [4]uint32) BuffersFormat {
	return BuffersFormat{
		Format:      uint64(w[0]) | uint64(w[1]&0xFFFF)<<32,
		FixedMask:   uint16((w[1] >> 16) & 0xFFF),
		Permutation: uint64(w[2]) | uint64(w[3]&0xFFFF)<<32,
		BufferCount: uint8(w[1]>>28) + 1,
	}
}

// EmitBuffersFormat queues the global attribute format of a draw. The base
// location, format and fixed mask go out as one write; slot offsets are
// relative to the heap base, so the location word is 0.
func EmitBuffersFormat(q CommandQueue, f BuffersFormat) {
	w := f.Words()
	q.AddIncrementalWrites(GPUREG_ATTRIBBUFFERS_LOC, []uint32{0, w[0], w[1]})

	inputs := uint32(f.AttribCount)
	if inputs > 0 {
		inputs--
	}
	q.AddWrite(GPUREG_VSH_NUM_ATTR, inputs)
	q.AddIncrementalWrites(GPUREG_VSH_ATTRIBUTES_PERMUTATION_LOW, w[2:4])
}
