package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/tilegl/engine/config"
	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/engine/gl"
	"github.com/spaghettifunk/tilegl/engine/gpu"
	"github.com/spaghettifunk/tilegl/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine owns a drawing session: the linear heap, the command recorder and
// the processor consuming its lists, the fixed-function state and the GL
// context built on top of them.
type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *config.Config
	isRunning    atomic.Bool

	heap      *gpu.LinearHeap
	recorder  *gpu.Recorder
	processor *systems.CommandProcessor
	state     *gl.State
	context   *gl.Context
	events    *core.EventSystem
	metrics   *core.Metrics
	clock     *core.Clock
	lastTime  float64

	frame   int
	reloads chan *config.Config
}

func New(g *Game) (*Engine, error) {
	cfg := config.Default()
	if g.ApplicationConfig != nil && g.ApplicationConfig.Config != nil {
		cfg = g.ApplicationConfig.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	core.SetLogLevel(cfg.Level())

	heap, err := gpu.NewLinearHeap(cfg.HeapSize)
	if err != nil {
		return nil, err
	}
	arena, err := gl.NewStagingArena(heap, cfg.StagingBufferSize, cfg.StagingBuffers)
	if err != nil {
		return nil, err
	}

	processor, err := systems.NewCommandProcessor(cfg.HistoryDepth)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       cfg,
		heap:         heap,
		processor:    processor,
		state:        gl.NewState(),
		events:       core.NewEventSystem(),
		metrics:      core.NewMetrics(),
		clock:        core.NewClock(),
		reloads:      make(chan *config.Config, 1),
	}
	e.recorder = gpu.NewRecorder(cfg.HistoryDepth, e.onSubmit)
	e.context = gl.NewContext(e.recorder, heap, arena, e.state,
		gl.WithMaxBatchedDraws(cfg.MaxBatchedDraws),
		gl.WithEventSystem(e.events),
		gl.WithMetrics(e.metrics),
	)
	e.isRunning.Store(true)
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	e.events.Register(core.EVENT_CODE_FLUSH, e, e.onFlush)
	e.events.Register(core.EVENT_CODE_DRAW_DROPPED, e, e.onDrawDropped)
	e.events.Register(core.EVENT_CODE_UNSUPPORTED_TYPE, e, e.onUnsupportedType)

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return err
		}
	}

	core.LogInfo("session %s: %d byte heap, %d staging buffers of %d bytes",
		e.context.ID(), e.config.HeapSize, e.config.StagingBuffers, e.config.StagingBufferSize)
	e.currentStage = EngineStageInitialized
	return nil
}

// Run renders frames until the configured frame count is reached or
// Shutdown is called. A frame count of 0 renders until Shutdown.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine must be initialized before running")
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.ElapsedSeconds()

	for e.isRunning.Load() {
		if e.config.Frames > 0 && e.frame >= e.config.Frames {
			break
		}
		e.applyReload()

		e.clock.Update()
		currentTime := e.clock.ElapsedSeconds()
		delta := currentTime - e.lastTime

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down: %s", err)
				e.isRunning.Store(false)
				break
			}
		}

		// Call the game's render routine.
		if err := e.gameInstance.FnRender(e.context, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			e.isRunning.Store(false)
			break
		}
		e.context.Flush()

		e.frame++
		e.lastTime = currentTime
	}

	return e.teardown()
}

// Shutdown stops the frame loop. It may be called from any goroutine; Run
// returns once the current frame is complete.
func (e *Engine) Shutdown() error {
	e.isRunning.Store(false)
	return nil
}

// Reload queues cfg to be applied before the next frame. Only settings that
// can change during a session are taken: the log level and the batch limit.
// It may be called from any goroutine.
func (e *Engine) Reload(cfg *config.Config) {
	select {
	case e.reloads <- cfg:
	default:
		// Replace the one still waiting.
		select {
		case <-e.reloads:
		default:
		}
		e.reloads <- cfg
	}
}

func (e *Engine) applyReload() {
	select {
	case cfg := <-e.reloads:
		core.SetLogLevel(cfg.Level())
		e.context.SetMaxBatchedDraws(cfg.MaxBatchedDraws)
		e.config.LogLevel = cfg.LogLevel
		e.config.MaxBatchedDraws = cfg.MaxBatchedDraws
		core.LogDebug("applied reloaded config: max_batched_draws=%d", cfg.MaxBatchedDraws)
	default:
	}
}

func (e *Engine) teardown() error {
	e.currentStage = EngineStageShuttingDown

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	// Anything drawn outside a frame still has to reach the GPU.
	e.context.Flush()
	if err := e.processor.Shutdown(); err != nil {
		return err
	}

	stats := e.processor.Stats()
	if stats.Failures > 0 {
		core.LogError("%d command lists were rejected", stats.Failures)
	}
	m := e.metrics
	core.LogInfo("%d frames: %d draws, %d dropped, %d flushes, %d bytes staged (high water %d), %d command words",
		e.frame, m.DrawsSubmitted, m.DrawsDropped, m.TotalFlushes(), m.BytesStaged, m.HighWater, stats.Words)

	e.events.Shutdown()
	return nil
}

func (e *Engine) Context() *gl.Context {
	return e.context
}

func (e *Engine) State() *gl.State {
	return e.state
}

// Heap returns the GPU-readable memory. Data allocated from it is drawn in
// place.
func (e *Engine) Heap() *gpu.LinearHeap {
	return e.heap
}

func (e *Engine) Recorder() *gpu.Recorder {
	return e.recorder
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) Frame() int {
	return e.frame
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Processor() *systems.CommandProcessor {
	return e.processor
}

func (e *Engine) onSubmit(s gpu.Submission) error {
	return e.processor.Submit(s)
}

func (e *Engine) onFlush(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	reason := core.FlushReason(context.Data.U32[0])
	if reason == core.FLUSH_REASON_ARENA {
		core.LogDebug("frame %d: staging arena full after %d draws", e.frame, context.Data.U32[1])
	}
	return false
}

func (e *Engine) onDrawDropped(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	core.LogWarn("frame %d: draw dropped (%s, mode 0x%04X)", e.frame, gl.DrawStatus(context.Data.U32[0]), context.Data.U32[1])
	return false
}

func (e *Engine) onUnsupportedType(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	core.LogWarn("frame %d: unsupported element type 0x%04X for input %d", e.frame, context.Data.U32[1], context.Data.U32[0])
	return false
}
