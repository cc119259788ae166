package gl

import (
	"encoding/binary"

	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/engine/gpu"
)

// DrawStatus is the outcome of a draw call.
type DrawStatus uint8

const (
	DrawSubmitted DrawStatus = iota
	DrawVertexArrayDisabled
	DrawUnsupportedIndexType
	// Negative or empty counts, end < start, or fewer indices than count.
	DrawInvalidRange
	// The data that has to be staged does not fit in an empty arena.
	DrawTooLarge
)

func (s DrawStatus) String() string {
	switch s {
	case DrawSubmitted:
		return "submitted"
	case DrawVertexArrayDisabled:
		return "vertex array disabled"
	case DrawUnsupportedIndexType:
		return "unsupported index type"
	case DrawInvalidRange:
		return "invalid range"
	case DrawTooLarge:
		return "too large"
	default:
		return "unknown"
	}
}

// Worst-case bytes per vertex assumed by the capacity prediction: twelve
// floats, enough for every input as a 3-component float.
const predictedVertexSize = 12 * 4

const indexSize = 2

func (c *Context) DrawArrays(mode Enum, first, count int) {
	c.drawArrays(mode, first, count)
}

func (c *Context) DrawElements(mode Enum, count int, typ Enum, indices any) {
	c.drawElements(mode, count, typ, indices)
}

func (c *Context) DrawRangeElements(mode Enum, start, end int, count int, typ Enum, indices any) {
	c.drawRangeElements(mode, start, end, count, typ, indices)
}

func (c *Context) drawArrays(mode Enum, first, count int) DrawStatus {
	if !c.arrays.Enabled(gpu.SEMANTIC_POSITION) {
		return c.drop(DrawVertexArrayDisabled, mode)
	}
	if first < 0 || count <= 0 {
		return c.drop(DrawInvalidRange, mode)
	}
	return c.drawRange(mode, first, first+count, count, nil)
}

func (c *Context) drawElements(mode Enum, count int, typ Enum, indices any) DrawStatus {
	if typ != UNSIGNED_SHORT {
		return c.drop(DrawUnsupportedIndexType, mode)
	}
	if !c.arrays.Enabled(gpu.SEMANTIC_POSITION) {
		return c.drop(DrawVertexArrayDisabled, mode)
	}
	data, ok := indexBytes(count, indices)
	if !ok {
		return c.drop(DrawInvalidRange, mode)
	}

	var end int
	for i := 0; i < len(data); i += indexSize {
		end = max(end, int(binary.LittleEndian.Uint16(data[i:])))
	}
	end++

	return c.drawRange(mode, 0, end, count, data)
}

func (c *Context) drawRangeElements(mode Enum, start, end int, count int, typ Enum, indices any) DrawStatus {
	if typ != UNSIGNED_SHORT {
		return c.drop(DrawUnsupportedIndexType, mode)
	}
	if !c.arrays.Enabled(gpu.SEMANTIC_POSITION) {
		return c.drop(DrawVertexArrayDisabled, mode)
	}
	if start < 0 || end < start {
		return c.drop(DrawInvalidRange, mode)
	}
	if indices == nil {
		if count <= 0 {
			return c.drop(DrawInvalidRange, mode)
		}
		return c.drawRange(mode, start, end, count, nil)
	}
	data, ok := indexBytes(count, indices)
	if !ok {
		return c.drop(DrawInvalidRange, mode)
	}
	return c.drawRange(mode, start, end, count, data)
}

// indexBytes returns the first count 16-bit indices as bytes.
func indexBytes(count int, indices any) ([]byte, bool) {
	if count <= 0 {
		return nil, false
	}
	data, err := bytesOf(indices)
	if err != nil || len(data) < count*indexSize {
		return nil, false
	}
	return data[:count*indexSize], true
}

// activeArrays reports which inputs are fed from client arrays. Texture
// coordinates also need their texture unit enabled.
func (c *Context) activeArrays() [gpu.SEMANTIC_MAX]bool {
	var active [gpu.SEMANTIC_MAX]bool
	active[gpu.SEMANTIC_POSITION] = c.arrays.Enabled(gpu.SEMANTIC_POSITION)
	active[gpu.SEMANTIC_COLOR] = c.arrays.Enabled(gpu.SEMANTIC_COLOR)
	for unit := 0; unit < MAX_TEXTURE_UNITS; unit++ {
		sem := texCoordSemantic(unit)
		active[sem] = c.arrays.Enabled(sem) && c.fixed.TextureEnabled(unit)
	}
	return active
}

// predict returns the staging space a draw of vertices [0, end) may need:
// the conservative per-vertex estimate, and the exact sum over the arrays
// that are not resident.
func (c *Context) predict(active [gpu.SEMANTIC_MAX]bool, end, count int, indexed bool) (estimate, exact int) {
	estimate = end * predictedVertexSize
	if indexed {
		estimate += count * indexSize
		exact += count * indexSize
	}
	for sem, on := range active {
		if !on {
			continue
		}
		a := c.arrays.array(gpu.Semantic(sem))
		if !c.resident.IsResident(a.Pointer) {
			exact += int(a.Stride) * end
		}
	}
	return estimate, exact
}

// drawRange assembles and submits one draw of count vertices (or count
// indices, when indices is set) reading vertices [0, end).
func (c *Context) drawRange(mode Enum, start, end, count int, indices []byte) DrawStatus {
	active := c.activeArrays()

	estimate, exact := c.predict(active, end, count, indices != nil)
	if c.arena.WouldOverflow(estimate) || c.arena.WouldOverflow(exact) {
		if c.pendingDraws > 0 || c.arena.Cursor() > 0 {
			c.flush(core.FLUSH_REASON_ARENA)
		}
		if c.arena.WouldOverflow(exact) {
			return c.drop(DrawTooLarge, mode)
		}
	}

	format := gpu.BuffersFormat{
		// Inputs 0 and 1 always read position and color.
		Permutation: 0x10,
	}
	var slot uint8
	attribCount := 2

	place := func(sem gpu.Semantic) bool {
		a := c.arrays.array(sem)
		addr, ok := c.placeArray(a, end)
		if !ok {
			return false
		}
		gpu.SetSlotOffset(c.queue, slot, addr)
		gpu.ConfigureSlot(c.queue, slot, uint64(sem), a.Stride, 1, a.Padding)
		format.Format |= gpu.AttribFmt(sem, a.Size, a.Type)
		slot++
		return true
	}

	if !place(gpu.SEMANTIC_POSITION) {
		return c.drop(DrawTooLarge, mode)
	}

	if active[gpu.SEMANTIC_COLOR] {
		if !place(gpu.SEMANTIC_COLOR) {
			return c.drop(DrawTooLarge, mode)
		}
	} else {
		format.FixedMask |= 1 << gpu.SEMANTIC_COLOR
		format.Format |= gpu.AttribFmt(gpu.SEMANTIC_COLOR, 4, gpu.GPU_FLOAT)
		col := c.fixed.CurrentColor()
		c.queue.FixedAttribute(uint8(gpu.SEMANTIC_COLOR), col.X, col.Y, col.Z, col.W)
	}

	if active[gpu.SEMANTIC_TEXCOORD0] {
		format.Permutation |= uint64(gpu.SEMANTIC_TEXCOORD0) << (attribCount * 4)
		if !place(gpu.SEMANTIC_TEXCOORD0) {
			return c.drop(DrawTooLarge, mode)
		}
	} else {
		format.FixedMask |= 1 << gpu.SEMANTIC_TEXCOORD0
		format.Format |= gpu.AttribFmt(gpu.SEMANTIC_TEXCOORD0, 2, gpu.GPU_FLOAT)
		c.queue.FixedAttribute(uint8(gpu.SEMANTIC_TEXCOORD0), 1, 1, 0, 0)
	}
	attribCount++

	// The second unit has no constant fallback; when inactive it is left
	// out of the permutation.
	if active[gpu.SEMANTIC_TEXCOORD1] {
		format.Permutation |= uint64(gpu.SEMANTIC_TEXCOORD1) << (attribCount * 4)
		if !place(gpu.SEMANTIC_TEXCOORD1) {
			return c.drop(DrawTooLarge, mode)
		}
		attribCount++
	}

	format.BufferCount = slot
	format.AttribCount = uint8(attribCount)
	gpu.EmitBuffersFormat(c.queue, format)

	prim := primitiveFor(mode)
	if indices != nil {
		addr, err := c.arena.CopyIn(indices, len(indices))
		if err != nil {
			core.LogError("staging %d indices: %s", count, err)
			return c.drop(DrawTooLarge, mode)
		}
		c.metrics.RecordStaged(uint32(len(indices)), uint32(c.arena.Cursor()))
		c.queue.DrawElements(prim, addr, uint32(count))
	} else {
		c.queue.DrawArrays(prim, uint32(start), uint32(count))
	}

	c.metrics.RecordDraw()
	c.pendingDraws++
	if c.pendingDraws > c.maxBatchedDraws {
		c.flush(core.FLUSH_REASON_BATCH)
	}
	return DrawSubmitted
}

// placeArray returns the heap-relative address the GPU reads a from, staging
// stride*end bytes when a is not resident.
func (c *Context) placeArray(a *ArrayDescriptor, end int) (uint32, bool) {
	if c.resident.IsResident(a.Pointer) {
		return c.resident.Offset(a.Pointer), true
	}
	n := int(a.Stride) * end
	addr, err := c.arena.CopyIn(a.Pointer, n)
	if err != nil {
		core.LogError("staging %d bytes: %s", n, err)
		return 0, false
	}
	c.metrics.RecordStaged(uint32(n), uint32(c.arena.Cursor()))
	return addr, true
}

// primitiveFor maps a GL mode to a hardware primitive. Unknown modes draw
// triangle lists.
func primitiveFor(mode Enum) gpu.Primitive {
	switch mode {
	case TRIANGLES:
		return gpu.PRIMITIVE_TRIANGLES
	case TRIANGLE_FAN:
		return gpu.PRIMITIVE_TRIANGLE_FAN
	case TRIANGLE_STRIP:
		return gpu.PRIMITIVE_TRIANGLE_STRIP
	default:
		return gpu.PRIMITIVE_TRIANGLES
	}
}

func (c *Context) drop(status DrawStatus, mode Enum) DrawStatus {
	c.metrics.RecordDrop()
	core.LogDebug("draw 0x%04X dropped: %s", uint32(mode), status)

	var ctx core.EventContext
	ctx.Data.U32[0] = uint32(status)
	ctx.Data.U32[1] = uint32(mode)
	c.events.Fire(core.EVENT_CODE_DRAW_DROPPED, c, ctx)
	return status
}
