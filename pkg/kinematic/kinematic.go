package kinematic

// This package includes the kinematic helpers used to move entities around
// the arena floor. The arena is the XZ plane; Y is height.

import (
	"math"
)

// Vector is a point or direction in arena space.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Zero is the origin of the arena.
var Zero = Vector{}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns the unit vector in the direction of v, or the zero vector.
func (v Vector) Normalized() Vector {
	m := v.Magnitude()
	if m == 0 {
		return Zero
	}
	return v.Scale(1 / m)
}

// Flat drops the height component.
func (v Vector) Flat() Vector {
	return Vector{X: v.X, Z: v.Z}
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Vector) float64 {
	return a.Sub(b).Magnitude()
}

// MoveTowards moves current towards target by at most maxDelta.
func MoveTowards(current, target Vector, maxDelta float64) Vector {
	diff := target.Sub(current)
	dist := diff.Magnitude()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(diff.Scale(maxDelta / dist))
}

// Forward returns the unit direction on the floor for a yaw in degrees.
// Yaw 0 faces +Z and yaw 90 faces +X.
func Forward(yaw float64) Vector {
	rad := yaw * math.Pi / 180
	return Vector{X: math.Sin(rad), Z: math.Cos(rad)}
}

// YawTowards returns the yaw in degrees [0, 360) that faces from -> to.
func YawTowards(from, to Vector) float64 {
	d := to.Sub(from)
	if d.X == 0 && d.Z == 0 {
		return 0
	}
	return NormalizeYaw(math.Atan2(d.X, d.Z) * 180 / math.Pi)
}

// NormalizeYaw wraps an angle in degrees into [0, 360).
func NormalizeYaw(yaw float64) float64 {
	yaw = math.Mod(yaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	return yaw
}

// RotateTowards turns current towards target by at most maxDegrees,
// taking the shorter way around.
func RotateTowards(current, target, maxDegrees float64) float64 {
	delta := math.Mod(target-current+540, 360) - 180
	if math.Abs(delta) <= maxDegrees {
		return NormalizeYaw(target)
	}
	if delta < 0 {
		return NormalizeYaw(current - maxDegrees)
	}
	return NormalizeYaw(current + maxDegrees)
}

// Displacement returns the displacement of an object given its initial velocity, time, and acceleration.
func Displacement(initialVelocity float64, time float64, acceleration float64) float64 {
	return initialVelocity*time + 0.5*acceleration*math.Pow(time, 2)
}

// FinalVelocity returns the final velocity of an object given its initial velocity, time, and acceleration.
func FinalVelocity(initialVelocity float64, time float64, acceleration float64) float64 {
	return initialVelocity + acceleration*time
}
