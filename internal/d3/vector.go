package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector helpers not provided by gonum.

// Elem returns a vector with all components set to v.
func Elem(v float64) r3.Vec {
	return r3.Vec{X: v, Y: v, Z: v}
}

// LTEZero returns true if any vector components are <= 0.
func LTEZero(a r3.Vec) bool {
	return (a.X <= 0) || (a.Y <= 0) || (a.Z <= 0)
}

// IsFinite returns false if any component is NaN or infinite.
func IsFinite(a r3.Vec) bool {
	return !(math.IsNaN(a.X) || math.IsInf(a.X, 0) ||
		math.IsNaN(a.Y) || math.IsInf(a.Y, 0) ||
		math.IsNaN(a.Z) || math.IsInf(a.Z, 0))
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// DivElem divides a by b component wise.
func DivElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{
		X: a.X / b.X,
		Y: a.Y / b.Y,
		Z: a.Z / b.Z,
	}
}
