package gl

import (
	"errors"

	"github.com/google/uuid"
	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/engine/gpu"
)

// Context translates client array state and draw calls into commands for a
// gpu.CommandQueue. A Context is not safe for concurrent use: every call
// must come from the goroutine that owns the queue.
//
// Nothing on the GL-style surface returns an error. Invalid input makes the
// call a no-op (or keeps the previous state, for bind calls); the reason is
// logged and raised on the event system.
type Context struct {
	id       uuid.UUID
	queue    gpu.CommandQueue
	fixed    FixedFunction
	resident ResidencyClassifier
	arena    *StagingArena
	arrays   ArrayRegistry

	clientActiveTexture int
	pendingDraws        int
	maxBatchedDraws     int

	events  *core.EventSystem
	metrics *core.Metrics
}

type ContextOption func(*Context)

// WithMaxBatchedDraws sets how many draws may be queued before a flush is
// forced. Values below 1 are ignored.
func WithMaxBatchedDraws(n int) ContextOption {
	return func(c *Context) {
		if n > 0 {
			c.maxBatchedDraws = n
		}
	}
}

func WithEventSystem(es *core.EventSystem) ContextOption {
	return func(c *Context) {
		c.events = es
	}
}

func WithMetrics(m *core.Metrics) ContextOption {
	return func(c *Context) {
		c.metrics = m
	}
}

// NewContext returns a Context drawing through queue. mem is the linear
// region client arrays may already live in, arena the staging memory for
// those that do not.
func NewContext(queue gpu.CommandQueue, mem gpu.Memory, arena *StagingArena, fixed FixedFunction, options ...ContextOption) *Context {
	c := &Context{
		id:              uuid.New(),
		queue:           queue,
		fixed:           fixed,
		resident:        NewResidencyClassifier(mem),
		arena:           arena,
		maxBatchedDraws: MAX_BATCHED_DRAWS,
	}
	for _, o := range options {
		o(c)
	}
	if c.events == nil {
		c.events = core.NewEventSystem()
	}
	if c.metrics == nil {
		c.metrics = core.NewMetrics()
	}
	return c
}

func (c *Context) ID() uuid.UUID {
	return c.id
}

func (c *Context) Events() *core.EventSystem {
	return c.events
}

func (c *Context) Metrics() *core.Metrics {
	return c.metrics
}

func (c *Context) Arena() *StagingArena {
	return c.arena
}

// SetMaxBatchedDraws changes the batch limit for the draws that follow.
// Values below 1 are ignored.
func (c *Context) SetMaxBatchedDraws(n int) {
	if n > 0 {
		c.maxBatchedDraws = n
	}
}

// PendingDraws returns the number of draws submitted since the last flush.
func (c *Context) PendingDraws() int {
	return c.pendingDraws
}

// Array returns the current state of the array feeding sem.
func (c *Context) Array(sem gpu.Semantic) ArrayDescriptor {
	return c.arrays.Array(sem)
}

func (c *Context) VertexPointer(size int, typ Enum, stride int, pointer any) {
	c.bind("VertexPointer", gpu.SEMANTIC_POSITION, size, typ, stride, pointer)
}

func (c *Context) ColorPointer(size int, typ Enum, stride int, pointer any) {
	c.bind("ColorPointer", gpu.SEMANTIC_COLOR, size, typ, stride, pointer)
}

// TexCoordPointer binds the coordinate array of the client active texture
// unit.
func (c *Context) TexCoordPointer(size int, typ Enum, stride int, pointer any) {
	c.bind("TexCoordPointer", texCoordSemantic(c.clientActiveTexture), size, typ, stride, pointer)
}

// ClientActiveTexture selects the unit TexCoordPointer and the
// TEXTURE_COORD_ARRAY client state refer to.
func (c *Context) ClientActiveTexture(texture Enum) {
	unit := int(texture) - int(TEXTURE0)
	if unit < 0 || unit >= MAX_TEXTURE_UNITS {
		core.LogDebug("ClientActiveTexture: ignoring texture unit 0x%04X", uint32(texture))
		return
	}
	c.clientActiveTexture = unit
}

func (c *Context) EnableClientState(array Enum) {
	c.setClientState(array, true)
}

func (c *Context) DisableClientState(array Enum) {
	c.setClientState(array, false)
}

func (c *Context) setClientState(array Enum, enabled bool) {
	switch array {
	case VERTEX_ARRAY:
		c.arrays.SetEnabled(gpu.SEMANTIC_POSITION, enabled)
	case COLOR_ARRAY:
		c.arrays.SetEnabled(gpu.SEMANTIC_COLOR, enabled)
	case TEXTURE_COORD_ARRAY:
		c.arrays.SetEnabled(texCoordSemantic(c.clientActiveTexture), enabled)
	}
}

func (c *Context) bind(fn string, sem gpu.Semantic, size int, typ Enum, stride int, pointer any) {
	err := c.arrays.Bind(sem, size, typ, stride, pointer)
	if err == nil {
		return
	}
	core.LogWarn("%s: %s", fn, err)
	if errors.Is(err, core.ErrUnsupportedType) {
		var ctx core.EventContext
		ctx.Data.U32[0] = uint32(sem)
		ctx.Data.U32[1] = uint32(typ)
		c.events.Fire(core.EVENT_CODE_UNSUPPORTED_TYPE, c, ctx)
	}
}

// Flush submits every queued command and starts a new staging epoch.
func (c *Context) Flush() {
	c.flush(core.FLUSH_REASON_EXPLICIT)
}

func (c *Context) flush(reason core.FlushReason) {
	draws := c.pendingDraws
	staged := c.arena.Cursor()

	if err := c.queue.Submit(); err != nil {
		// The staged data of this epoch may never be read; there is nobody
		// to report to, so carry on with a fresh epoch.
		core.LogError("flush (%s): %s", reason, err)
	}
	c.arena.ResetEpoch()
	c.pendingDraws = 0
	c.metrics.RecordFlush(reason)

	core.LogDebug("flush (%s): %d draws, %d staged bytes", reason, draws, staged)

	var ctx core.EventContext
	ctx.Data.U32[0] = uint32(reason)
	ctx.Data.U32[1] = uint32(draws)
	ctx.Data.U64[0] = uint64(staged)
	ctx.Data.C[0] = c.id.String()
	c.events.Fire(core.EVENT_CODE_FLUSH, c, ctx)
}

func texCoordSemantic(unit int) gpu.Semantic {
	return gpu.SEMANTIC_TEXCOORD0 + gpu.Semantic(unit)
}
