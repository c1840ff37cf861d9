package ball

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const tolerance = 1e-6

func TestUpdateFallingAddsGravity(t *testing.T) {
	tests := []struct {
		name string
		vy   float32
		dt   float32
	}{
		{"zero dt", 0, 0},
		{"at rest", 0, 0.016},
		{"falling", -0.3, 0.016},
		{"rising", 0.4, 0.033},
		{"long frame", -0.1, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Ball{Position: mgl32.Vec2{0, 0.5}, Velocity: mgl32.Vec2{0.5, tt.vy}}
			c := b.Update(tt.dt)
			if c.Hit {
				t.Fatalf("unexpected floor contact at y=%f", b.Position.Y())
			}
			want := tt.vy + Gravity*tt.dt
			if !mgl32.FloatEqualThreshold(b.Velocity.Y(), want, tolerance) {
				t.Errorf("vy = %f, want %f", b.Velocity.Y(), want)
			}
			if b.Velocity.X() != 0.5 {
				t.Errorf("vx changed to %f", b.Velocity.X())
			}
		})
	}
}

func TestUpdatePositionUsesNewVelocity(t *testing.T) {
	b := &Ball{Position: mgl32.Vec2{0, 0}, Velocity: mgl32.Vec2{0.5, 0}}
	dt := float32(0.1)
	b.Update(dt)

	wantY := (Gravity * dt) * dt
	if !mgl32.FloatEqualThreshold(b.Position.Y(), wantY, tolerance) {
		t.Errorf("y = %f, want %f", b.Position.Y(), wantY)
	}
	if !mgl32.FloatEqualThreshold(b.Position.X(), 0.05, tolerance) {
		t.Errorf("x = %f, want 0.05", b.Position.X())
	}
}

func TestUpdateFloorBounce(t *testing.T) {
	tests := []struct {
		name   string
		y, vy  float32
		dt     float32
		atRest bool
	}{
		{"fast impact", -0.85, -2.0, 0.05, false},
		{"exactly touching", FloorY + Radius + 0.01, -0.2, 0.05, false},
		{"slow impact comes to rest", FloorY + Radius, 0, 0.005, true},
		{"already below floor", -1.5, -1.0, 0.016, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Ball{Position: mgl32.Vec2{0, tt.y}, Velocity: mgl32.Vec2{0.5, tt.vy}}
			preBounce := tt.vy + Gravity*tt.dt

			c := b.Update(tt.dt)
			if !c.Hit {
				t.Fatalf("expected floor contact, ball at y=%f", b.Position.Y())
			}
			if b.Position.Y() != FloorY+Radius {
				t.Errorf("y = %f, want %f", b.Position.Y(), FloorY+Radius)
			}

			want := -preBounce * BounceDamping
			if float32(math.Abs(float64(want))) < RestEpsilon {
				want = 0
			}
			if tt.atRest && want != 0 {
				t.Fatalf("test case expected rest but reflected speed is %f", want)
			}
			if !mgl32.FloatEqualThreshold(b.Velocity.Y(), want, tolerance) {
				t.Errorf("vy = %f, want %f", b.Velocity.Y(), want)
			}
			if c.Speed != b.Velocity.Y() {
				t.Errorf("contact speed = %f, want %f", c.Speed, b.Velocity.Y())
			}
		})
	}
}

func TestRestingBallStaysOnFloor(t *testing.T) {
	b := &Ball{Position: mgl32.Vec2{0, FloorY + Radius}}
	for i := 0; i < 100; i++ {
		b.Update(1.0 / 120)
		if b.Position.Y() < FloorY+Radius {
			t.Fatalf("step %d: ball sank to %f", i, b.Position.Y())
		}
		if b.Velocity.Y() != 0 {
			t.Fatalf("step %d: resting ball has vy %f", i, b.Velocity.Y())
		}
	}
}

func TestBallEventuallySettles(t *testing.T) {
	b := New()
	for i := 0; i < 60*60; i++ {
		b.Update(1.0 / 60)
		if b.Position.Y() < FloorY+Radius {
			t.Fatalf("step %d: ball below floor at %f", i, b.Position.Y())
		}
	}
	if b.Position.Y() > FloorY+Radius+0.01 {
		t.Errorf("ball still bouncing at y=%f after a minute", b.Position.Y())
	}
}

func TestReset(t *testing.T) {
	b := &Ball{Position: mgl32.Vec2{3, -7}, Velocity: mgl32.Vec2{-2, 9}}
	b.Reset()
	if b.Position != (mgl32.Vec2{-0.9, 0.9}) {
		t.Errorf("position = %v, want (-0.9, 0.9)", b.Position)
	}
	if b.Velocity != (mgl32.Vec2{0.5, 0}) {
		t.Errorf("velocity = %v, want (0.5, 0)", b.Velocity)
	}
}

func TestModelMatrixTranslatesOrigin(t *testing.T) {
	b := &Ball{Position: mgl32.Vec2{0.25, -0.5}}
	p := b.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if p != (mgl32.Vec4{0.25, -0.5, 0, 1}) {
		t.Errorf("origin mapped to %v", p)
	}
}
