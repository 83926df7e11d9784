package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestTransformIdentity(t *testing.T) {
	identity := ComposeTransform(r3.Vec{}, Elem(1), r3.Rotation{})
	if identity != (Transform{}) {
		t.Fatalf("composed identity differs from zero value: %v", identity.SliceCopy())
	}
	fromSlice, err := NewTransform([]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if fromSlice != (Transform{}) {
		t.Fatalf("identity matrix differs from zero value: %v", fromSlice.SliceCopy())
	}
	v := r3.Vec{X: 1.5, Y: -2, Z: 3}
	if got := fromSlice.Transform(v); got != v {
		t.Errorf("identity moved %v to %v", v, got)
	}
}

func TestNewTransformRejects(t *testing.T) {
	if _, err := NewTransform(make([]float64, 12)); err == nil {
		t.Error("expected error for short slice")
	}
	projective := []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 1, 1,
	}
	if _, err := NewTransform(projective); err == nil {
		t.Error("expected error for projective transform")
	}
}

func TestComposeTransform(t *testing.T) {
	const tol = 1e-12
	q := r3.NewRotation(math.Pi/2, r3.Vec{Z: 1})
	tf := ComposeTransform(r3.Vec{X: 10}, r3.Vec{X: 2, Y: 2, Z: 2}, q)
	got := tf.Transform(r3.Vec{X: 1})
	want := r3.Vec{X: 10, Y: 2}
	if !equalWithin(got, want, tol) {
		t.Errorf("got %v, want %v", got, want)
	}
	if det := tf.Det(); math.Abs(det-8) > tol {
		t.Errorf("determinant got %g, want 8", det)
	}
}

func TestTransformMul(t *testing.T) {
	const tol = 1e-12
	scale := ComposeTransform(r3.Vec{}, r3.Vec{X: 2, Y: 3, Z: 4}, r3.Rotation{})
	move := ComposeTransform(r3.Vec{X: 1, Y: 1, Z: 1}, Elem(1), r3.Rotation{})
	v := r3.Vec{X: 1, Y: 1, Z: 1}
	// scale first, then translate.
	got := move.Mul(scale).Transform(v)
	want := r3.Vec{X: 3, Y: 4, Z: 5}
	if !equalWithin(got, want, tol) {
		t.Errorf("move*scale got %v, want %v", got, want)
	}
	got = scale.Mul(move).Transform(v)
	want = r3.Vec{X: 4, Y: 6, Z: 8}
	if !equalWithin(got, want, tol) {
		t.Errorf("scale*move got %v, want %v", got, want)
	}
	if (Transform{}).Mul(scale) != scale || scale.Mul(Transform{}) != scale {
		t.Error("identity multiplication changed transform")
	}
}

func TestTransformSliceCopy(t *testing.T) {
	a := []float64{
		0, -1, 0, 5,
		1, 0, 0, 6,
		0, 0, 1, 7,
		0, 0, 0, 1,
	}
	tf, err := NewTransform(a)
	if err != nil {
		t.Fatal(err)
	}
	got := tf.SliceCopy()
	for i := range a {
		if got[i] != a[i] {
			t.Fatalf("element %d: got %g, want %g", i, got[i], a[i])
		}
	}
}

func equalWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}
