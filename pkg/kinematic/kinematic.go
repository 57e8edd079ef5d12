package kinematic

// This package holds the vector math shared by the simulation. Every product is
// rounded to float32 before it is summed so that no platform can fuse a
// multiply-add and produce a different bit pattern.

import "math"

const (
	// Gravity is the downward acceleration applied to falling bodies, in units per second squared.
	Gravity float32 = -98
)

// Vector is a 2D vector in world units.
type Vector struct {
	X float32
	Y float32
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vector) Scale(s float32) Vector {
	return Vector{X: float32(v.X * s), Y: float32(v.Y * s)}
}

// Half returns v divided by two.
func (v Vector) Half() Vector {
	return Vector{X: v.X / 2, Y: v.Y / 2}
}

// Abs returns the component-wise absolute value of v.
func (v Vector) Abs() Vector {
	return Vector{X: abs(v.X), Y: abs(v.Y)}
}

// MaxElement returns the larger of the two components.
func (v Vector) MaxElement() float32 {
	if v.X > v.Y {
		return v.X
	}
	return v.Y
}

// IsZero reports whether both components are zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Displacement returns how far a body moving at velocity travels in time seconds.
func Displacement(velocity Vector, time float32) Vector {
	return velocity.Scale(time)
}

// FinalVelocity returns the velocity of a body after accelerating for time seconds.
func FinalVelocity(initialVelocity Vector, time float32, acceleration Vector) Vector {
	return initialVelocity.Add(acceleration.Scale(time))
}

func abs(f float32) float32 {
	return math.Float32frombits(math.Float32bits(f) &^ (1 << 31))
}
