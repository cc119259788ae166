package engine

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/spaghettifunk/tilegl/engine/config"
	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/engine/gl"
	"github.com/spaghettifunk/tilegl/engine/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(frames int) *config.Config {
	cfg := config.Default()
	cfg.HeapSize = 1 << 16
	cfg.StagingBufferSize = 4096
	cfg.Frames = frames
	return cfg
}

func triangleGame(cfg *config.Config) *Game {
	verts := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	return &Game{
		ApplicationConfig: &ApplicationConfig{Name: "test", Config: cfg},
		FnInitialize: func(e *Engine) error {
			ctx := e.Context()
			ctx.VertexPointer(3, gl.FLOAT, 0, verts)
			ctx.EnableClientState(gl.VERTEX_ARRAY)
			return nil
		},
		FnRender: func(ctx *gl.Context, deltaTime float64) error {
			ctx.DrawArrays(gl.TRIANGLES, 0, 3)
			ctx.DrawArrays(gl.TRIANGLES, 0, 3)
			return nil
		},
	}
}

func TestEngineRunsConfiguredFrames(t *testing.T) {
	e, err := New(triangleGame(testConfig(3)))
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())

	assert.Equal(t, 3, e.Frame())
	assert.Equal(t, EngineStageShuttingDown, e.Stage())
	assert.Equal(t, uint64(6), e.Metrics().DrawsSubmitted)
	// one flush per frame plus the final one
	assert.Equal(t, uint64(4), e.Metrics().Flushes[core.FLUSH_REASON_EXPLICIT])

	history := e.Recorder().History()
	require.Len(t, history, 3)
	for _, s := range history {
		assert.Equal(t, 2, s.Draws)
		cmds, err := gpu.Decode(s.Words)
		require.NoError(t, err)
		assert.Equal(t, gpu.GPUREG_FINALIZE, cmds[len(cmds)-1].Reg)
	}
	assert.NotEqual(t, history[0].ID, history[1].ID)

	stats := e.Processor().Stats()
	assert.Equal(t, uint64(3), stats.Lists)
	assert.Equal(t, uint64(6), stats.Draws)
	assert.Zero(t, stats.Failures)
}

func TestEngineRunRequiresInitialize(t *testing.T) {
	e, err := New(triangleGame(testConfig(1)))
	require.NoError(t, err)
	assert.Error(t, e.Run())
}

func TestEngineStopsOnRenderError(t *testing.T) {
	g := triangleGame(testConfig(0))
	g.FnRender = func(ctx *gl.Context, deltaTime float64) error {
		return errors.New("boom")
	}
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())
	assert.Equal(t, 0, e.Frame())
}

func TestEngineShutdown(t *testing.T) {
	g := triangleGame(testConfig(0))
	var e *Engine
	g.FnUpdate = func(deltaTime float64) error {
		if e.Frame() == 4 {
			return e.Shutdown()
		}
		return nil
	}
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())
	assert.Equal(t, 5, e.Frame())
}

func TestEngineReload(t *testing.T) {
	g := triangleGame(testConfig(2))
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	reloaded := testConfig(2)
	reloaded.MaxBatchedDraws = 1
	e.Reload(config.Default())
	e.Reload(reloaded)
	require.NoError(t, e.Run())

	// two draws per frame with a limit of one flush on the second draw
	assert.Equal(t, uint64(2), e.Metrics().Flushes[core.FLUSH_REASON_BATCH])
}

func TestEngineRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(1)
	cfg.StagingBuffers = 0
	_, err := New(triangleGame(cfg))
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}
