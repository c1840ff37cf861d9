package ball

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	Gravity       float32 = -1.0
	BounceDamping float32 = 0.8
	Radius        float32 = 0.1
	FloorY        float32 = -1.0

	// RestEpsilon is the reflected speed below which the ball is considered resting.
	RestEpsilon float32 = 0.01
)

var (
	InitialPosition = mgl32.Vec2{-0.9, 0.9}
	InitialVelocity = mgl32.Vec2{0.5, 0.0}
)

// Contact describes what happened at the floor during one Update.
type Contact struct {
	Hit bool
	// Speed is the vertical speed after the bounce, zero when the ball came to rest.
	Speed float32
}

// Ball is a single point mass falling under constant gravity onto a floor.
type Ball struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
}

// New returns a ball at its initial position and velocity.
func New() *Ball {
	b := &Ball{}
	b.Reset()
	return b
}

// Reset puts the ball back to its initial position and velocity.
func (b *Ball) Reset() {
	b.Position = InitialPosition
	b.Velocity = InitialVelocity
}

// Update advances the ball by dt seconds using semi-implicit Euler integration.
// The velocity is updated before the position. dt is not clamped.
func (b *Ball) Update(dt float32) Contact {
	b.Velocity[1] += Gravity * dt
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	if b.Position.Y()-Radius > FloorY {
		return Contact{}
	}

	b.Position[1] = FloorY + Radius
	b.Velocity[1] = -b.Velocity.Y() * BounceDamping
	if float32(math.Abs(float64(b.Velocity.Y()))) < RestEpsilon {
		b.Velocity[1] = 0
	}
	return Contact{Hit: true, Speed: b.Velocity.Y()}
}

// ModelMatrix is the translation placing a mesh centred at the origin on the ball.
func (b *Ball) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(b.Position.X(), b.Position.Y(), 0)
}
