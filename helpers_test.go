package meshsdf

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// cubeTriangles returns the 12 outward facing triangles of an axis aligned
// cube centered at center with the given half side length.
func cubeTriangles(center r3.Vec, half float64) []r3.Triangle {
	var corners [8]r3.Vec
	for i := range corners {
		corners[i] = r3.Vec{X: -half, Y: -half, Z: -half}
		if i&1 != 0 {
			corners[i].X = half
		}
		if i&2 != 0 {
			corners[i].Y = half
		}
		if i&4 != 0 {
			corners[i].Z = half
		}
		corners[i] = r3.Add(corners[i], center)
	}
	quads := [6][4]int{
		{0, 4, 6, 2}, // -X
		{1, 3, 7, 5}, // +X
		{0, 1, 5, 4}, // -Y
		{2, 6, 7, 3}, // +Y
		{0, 2, 3, 1}, // -Z
		{4, 5, 7, 6}, // +Z
	}
	tris := make([]r3.Triangle, 0, 12)
	for _, q := range quads {
		tris = append(tris,
			r3.Triangle{corners[q[0]], corners[q[1]], corners[q[2]]},
			r3.Triangle{corners[q[0]], corners[q[2]], corners[q[3]]},
		)
	}
	return tris
}

// octahedronTriangles returns the 8 faces of the octahedron |x|+|y|+|z| = r.
func octahedronTriangles(r float64) []r3.Triangle {
	px, nx := r3.Vec{X: r}, r3.Vec{X: -r}
	py, ny := r3.Vec{Y: r}, r3.Vec{Y: -r}
	pz, nz := r3.Vec{Z: r}, r3.Vec{Z: -r}
	return []r3.Triangle{
		{px, py, pz}, {py, nx, pz}, {nx, ny, pz}, {ny, px, pz},
		{py, px, nz}, {nx, py, nz}, {ny, nx, nz}, {px, ny, nz},
	}
}

// boxSDF is the exact signed distance to an axis aligned box centered at the origin.
func boxSDF(p r3.Vec, half float64) float64 {
	q := r3.Vec{X: math.Abs(p.X) - half, Y: math.Abs(p.Y) - half, Z: math.Abs(p.Z) - half}
	outside := r3.Norm(r3.Vec{X: math.Max(q.X, 0), Y: math.Max(q.Y, 0), Z: math.Max(q.Z, 0)})
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return outside + inside
}

func mustMesh(t testing.TB, tris []r3.Triangle) *Mesh {
	t.Helper()
	m, err := NewMesh(tris)
	if err != nil {
		t.Fatal(err)
	}
	return m
}
