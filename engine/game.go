package engine

import "github.com/spaghettifunk/tilegl/engine/gl"

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnShutdown        Shutdown
}

// Initialize runs once, after the engine has created its context and heap.
type Initialize func(e *Engine) error
type Update func(deltaTime float64) error

// Render issues the draws of one frame. The engine flushes afterwards.
type Render func(ctx *gl.Context, deltaTime float64) error
type Shutdown func() error
