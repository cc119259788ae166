package testbed

import (
	stdmath "math"

	"github.com/spaghettifunk/tilegl/engine"
	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/engine/gl"
	"github.com/spaghettifunk/tilegl/engine/math"
	"honnef.co/go/safeish"
)

type TestGame struct {
	*engine.Game
}

// vertex is one entry of an interleaved array: position then texture
// coordinates.
type vertex struct {
	Position math.Vec3
	UV       math.Vec2
}

const vertexStride = 20

type gameState struct {
	elapsed float64
	state   *gl.State

	// Client memory, staged on every draw.
	triangle       []float32
	triangleColors []uint8
	interleaved    []vertex
	secondUnit     []int16

	// Allocated in the linear heap and drawn in place.
	quad        []byte
	quadIndices []uint16
}

func NewTestGame(cfg *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: cfg,
			State:             &gameState{},
		},
	}
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnShutdown = tg.Shutdown
	return tg
}

func (g *TestGame) Initialize(e *engine.Engine) error {
	s := g.State.(*gameState)
	s.state = e.State()

	s.triangle = []float32{
		-1, -1, 0,
		0, 1, 0,
		1, -1, 0,
	}
	s.triangleColors = []uint8{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
	}
	s.interleaved = []vertex{
		{Position: math.NewVec3(-1, -1, 0), UV: math.NewVec2(0, 0)},
		{Position: math.NewVec3(-1, 1, 0), UV: math.NewVec2(0, 1)},
		{Position: math.NewVec3(1, 1, 0), UV: math.NewVec2(1, 1)},
		{Position: math.NewVec3(1, -1, 0), UV: math.NewVec2(1, 0)},
	}
	s.secondUnit = []int16{0, 0, 0, 1, 1, 1, 1, 0}

	quad := []float32{
		-0.5, -0.5, 0.5,
		-0.5, 0.5, 0.5,
		0.5, -0.5, 0.5,
		0.5, 0.5, 0.5,
	}
	buf, err := e.Heap().Alloc(len(quad)*4, 16)
	if err != nil {
		return err
	}
	copy(buf, safeish.SliceCast[[]byte](quad))
	s.quad = buf
	s.quadIndices = []uint16{0, 1, 2, 3}

	core.LogInfo("testbed ready: %d bytes of resident geometry", len(buf))
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	s := g.State.(*gameState)
	s.elapsed += deltaTime

	pulse := float32(0.5 + 0.5*stdmath.Sin(s.elapsed*4))
	s.state.Color4f(pulse, 1-pulse, 0.5, 1)
	return nil
}

func (g *TestGame) Render(ctx *gl.Context, deltaTime float64) error {
	s := g.State.(*gameState)

	// Client memory with a color array.
	ctx.VertexPointer(3, gl.FLOAT, 0, s.triangle)
	ctx.ColorPointer(4, gl.UNSIGNED_BYTE, 0, s.triangleColors)
	ctx.EnableClientState(gl.VERTEX_ARRAY)
	ctx.EnableClientState(gl.COLOR_ARRAY)
	ctx.DrawArrays(gl.TRIANGLES, 0, 3)
	ctx.DisableClientState(gl.COLOR_ARRAY)

	// Interleaved positions and coordinates, current color.
	data := safeish.SliceCast[[]byte](s.interleaved)
	ctx.VertexPointer(3, gl.FLOAT, vertexStride, data)
	ctx.ClientActiveTexture(gl.TEXTURE0)
	ctx.TexCoordPointer(2, gl.FLOAT, vertexStride, data[12:])
	ctx.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	s.state.EnableTexture(0)

	// Both units sample; the second one has its own array.
	ctx.ClientActiveTexture(gl.TEXTURE1)
	ctx.TexCoordPointer(2, gl.SHORT, 0, s.secondUnit)
	ctx.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	s.state.EnableTexture(1)
	ctx.DrawArrays(gl.TRIANGLE_FAN, 0, 4)

	ctx.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	s.state.DisableTexture(1)
	ctx.ClientActiveTexture(gl.TEXTURE0)
	ctx.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	s.state.DisableTexture(0)

	// Resident vertices, only the indices are staged.
	ctx.VertexPointer(3, gl.FLOAT, 0, s.quad)
	ctx.DrawElements(gl.TRIANGLE_STRIP, len(s.quadIndices), gl.UNSIGNED_SHORT, s.quadIndices)

	return nil
}

func (g *TestGame) Shutdown() error {
	s := g.State.(*gameState)
	s.quad = nil
	return nil
}
