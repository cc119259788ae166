package gl

import "github.com/spaghettifunk/tilegl/engine/math"

// FixedFunction is the part of the fixed-function server state the draw
// path consults: the flat color used when no color array is enabled and
// the enable flag of each texture unit.
type FixedFunction interface {
	CurrentColor() math.Vec4
	TextureEnabled(unit int) bool
}

// State is a minimal FixedFunction. The zero value is not ready for use.
type State struct {
	color    math.Vec4
	textures [MAX_TEXTURE_UNITS]bool
}

// NewState returns a state with an opaque white current color and every
// texture unit disabled.
func NewState() *State {
	return &State{
		color: math.NewVec4One(),
	}
}

// Color4f sets the current color. Components are clamped to [0, 1].
func (s *State) Color4f(r, g, b, a float32) {
	s.color = math.NewVec4(r, g, b, a).Saturate()
}

func (s *State) Color4ub(r, g, b, a uint8) {
	s.Color4f(float32(r)/255, float32(g)/255, float32(b)/255, float32(a)/255)
}

func (s *State) CurrentColor() math.Vec4 {
	return s.color
}

// EnableTexture enables texturing on unit. Out of range units are ignored.
func (s *State) EnableTexture(unit int) {
	if unit >= 0 && unit < MAX_TEXTURE_UNITS {
		s.textures[unit] = true
	}
}

func (s *State) DisableTexture(unit int) {
	if unit >= 0 && unit < MAX_TEXTURE_UNITS {
		s.textures[unit] = false
	}
}

func (s *State) TextureEnabled(unit int) bool {
	return unit >= 0 && unit < MAX_TEXTURE_UNITS && s.textures[unit]
}
