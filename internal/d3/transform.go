package d3

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a 3D affine transformation such as the world matrix
// a modeling tool attaches to an object. The zero value of Transform
// is the identity transform.
type Transform struct {
	// d is the linear part of the transform with the identity
	// subtracted so that Transform{} is the identity.
	d [3][3]float64
	// off is the translation applied after the linear part.
	off r3.Vec
}

// NewTransform returns a Transform from 16 values in row-major form.
// The bottom row must be 0,0,0,1 since only affine transforms
// preserve straight edges and therefore triangles.
func NewTransform(a []float64) (Transform, error) {
	if len(a) != 16 {
		return Transform{}, fmt.Errorf("transform needs 16 values, got %d", len(a))
	}
	if a[12] != 0 || a[13] != 0 || a[14] != 0 || a[15] != 1 {
		return Transform{}, errors.New("transform bottom row must be 0,0,0,1")
	}
	var t Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.d[i][j] = a[4*i+j]
		}
		t.d[i][i] -= 1
	}
	t.off = r3.Vec{X: a[3], Y: a[7], Z: a[11]}
	return t, nil
}

// ComposeTransform creates a new transform for a given translation to
// positon, scaling vector scale and quaternion rotation.
// The identity Transform is constructed with
//
//	ComposeTransform(Vec{}, Vec{1,1,1}, Rotation{})
func ComposeTransform(position, scale r3.Vec, q r3.Rotation) Transform {
	x2 := q.Imag + q.Imag
	y2 := q.Jmag + q.Jmag
	z2 := q.Kmag + q.Kmag
	xx := q.Imag * x2
	yy := q.Jmag * y2
	zz := q.Kmag * z2
	xy := q.Imag * y2
	xz := q.Imag * z2
	yz := q.Jmag * z2
	wx := q.Real * x2
	wy := q.Real * y2
	wz := q.Real * z2

	var t Transform
	t.d[0] = [3]float64{(1-(yy+zz))*scale.X - 1, (xy - wz) * scale.Y, (xz + wy) * scale.Z}
	t.d[1] = [3]float64{(xy + wz) * scale.X, (1-(xx+zz))*scale.Y - 1, (yz - wx) * scale.Z}
	t.d[2] = [3]float64{(xz - wy) * scale.X, (yz + wx) * scale.Y, (1-(xx+yy))*scale.Z - 1}
	t.off = position
	return t
}

// linear returns the 3x3 linear part of the transform.
func (t Transform) linear() [3][3]float64 {
	m := t.d
	m[0][0] += 1
	m[1][1] += 1
	m[2][2] += 1
	return m
}

// Transform applies the Transform to the argument vector
// and returns the result.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	if t == (Transform{}) {
		return v
	}
	m := t.linear()
	return r3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + t.off.X,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + t.off.Y,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + t.off.Z,
	}
}

// Mul returns the transform that applies b first and then t.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	x := t.linear()
	y := b.linear()
	var m Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.d[i][j] = x[i][0]*y[0][j] + x[i][1]*y[1][j] + x[i][2]*y[2][j]
		}
		m.d[i][i] -= 1
	}
	m.off = t.Transform(b.off)
	return m
}

// Det returns the determinant of the linear part of the Transform.
// A zero determinant collapses space onto a plane, line or point.
func (t Transform) Det() float64 {
	m := t.linear()
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// SliceCopy returns a copy of the Transform's data
// in row major storage format. It returns 16 elements.
func (t Transform) SliceCopy() []float64 {
	m := t.linear()
	return []float64{
		m[0][0], m[0][1], m[0][2], t.off.X,
		m[1][0], m[1][1], m[1][2], t.off.Y,
		m[2][0], m[2][1], m[2][2], t.off.Z,
		0, 0, 0, 1,
	}
}
