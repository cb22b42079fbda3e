// Package vec provides the 3D vector primitive used by the vehicle and
// flight packages.
package vec

import "math"

// Vector3 is an immutable 3D vector. All methods return new values.
type Vector3 struct {
	X, Y, Z float64
}

// New constructs a vector from components.
func New(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Zero is the zero vector.
func Zero() Vector3 {
	return Vector3{}
}

// Up is the world vertical reference direction.
func Up() Vector3 {
	return Vector3{Y: 1}
}

// Add returns the sum of two vectors.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale multiplies the vector by a scalar.
func (v Vector3) Scale(factor float64) Vector3 {
	return Vector3{
		X: v.X * factor,
		Y: v.Y * factor,
		Z: v.Z * factor,
	}
}

// Dot returns the dot product of two vectors.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the magnitude of the vector.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Unit returns a unit vector in the same direction. The unit of the
// zero vector is the zero vector.
func (v Vector3) Unit() Vector3 {
	n := v.Norm()
	if n == 0 {
		return Vector3{}
	}
	return Vector3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// FromAngle returns the unit direction at theta radians off Up within
// the X-Y plane.
func FromAngle(theta float64) Vector3 {
	return Vector3{X: math.Sin(theta), Y: math.Cos(theta)}
}

// IsZero reports whether all components are exactly zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
