package scene

import "github.com/go-gl/mathgl/mgl32"

// Bounds are the clip volume of an orthographic projection.
type Bounds struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
}

// OrthoBounds keeps the shorter framebuffer axis at [-1, 1] and stretches the
// longer one by the aspect ratio.
func OrthoBounds(width, height int) Bounds {
	aspect := float32(width) / float32(height)
	if aspect >= 1 {
		return Bounds{Left: -aspect, Right: aspect, Bottom: -1, Top: 1, Near: -1, Far: 1}
	}
	return Bounds{Left: -1, Right: 1, Bottom: -1 / aspect, Top: 1 / aspect, Near: -1, Far: 1}
}

func (b Bounds) Matrix() mgl32.Mat4 {
	return mgl32.Ortho(b.Left, b.Right, b.Bottom, b.Top, b.Near, b.Far)
}
