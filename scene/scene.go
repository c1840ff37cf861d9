// Package scene holds the complete mutable state of the demo: the ball, what is
// drawn and how it is projected. Input handlers, the update step and the
// renderer all receive it explicitly.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gobounce/ball"
)

// Shape selects which mesh represents the ball.
type Shape int

const (
	Cube Shape = iota
	Sphere
)

func (s Shape) String() string {
	switch s {
	case Cube:
		return "cube"
	case Sphere:
		return "sphere"
	default:
		return "unknown"
	}
}

var (
	Red  = mgl32.Vec3{1, 0, 0}
	Blue = mgl32.Vec3{0, 0, 1}
)

// State is the single owned simulation and render-selection state.
type State struct {
	Ball      *ball.Ball
	Shape     Shape
	Color     mgl32.Vec3
	Wireframe bool

	Projection mgl32.Mat4
	Bounds     Bounds
}

// New returns the startup state: red cube, filled, square projection.
func New() *State {
	s := &State{
		Ball:  ball.New(),
		Shape: Cube,
		Color: Red,
	}
	s.Resize(1, 1)
	return s
}

// Update advances the simulation by dt seconds.
func (s *State) Update(dt float32) ball.Contact {
	return s.Ball.Update(dt)
}

// Reset recentres the ball. Selection state is untouched.
func (s *State) Reset() {
	s.Ball.Reset()
}

// ToggleColor swaps between red and blue.
func (s *State) ToggleColor() {
	if s.Color == Red {
		s.Color = Blue
	} else {
		s.Color = Red
	}
}

// ToggleShape swaps between the cube and the sphere.
func (s *State) ToggleShape() {
	if s.Shape == Cube {
		s.Shape = Sphere
	} else {
		s.Shape = Cube
	}
}

// ToggleWireframe flips the fill mode used for all subsequent draws.
func (s *State) ToggleWireframe() {
	s.Wireframe = !s.Wireframe
}

// Resize recomputes the projection for a framebuffer of the given size.
// It reports false and keeps the previous projection when either dimension is
// zero, which is what GLFW reports for a minimised window.
func (s *State) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	s.Bounds = OrthoBounds(width, height)
	s.Projection = s.Bounds.Matrix()
	return true
}
