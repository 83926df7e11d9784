package render_test

import (
	"context"
	"testing"

	"github.com/soypat/meshsdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// boxTriangles returns the 12 triangles of an axis aligned box
// spanning min to max.
func boxTriangles(min, max r3.Vec) []r3.Triangle {
	var c [8]r3.Vec
	for i := range c {
		c[i] = min
		if i&1 != 0 {
			c[i].X = max.X
		}
		if i&2 != 0 {
			c[i].Y = max.Y
		}
		if i&4 != 0 {
			c[i].Z = max.Z
		}
	}
	quads := [6][4]int{
		{0, 4, 6, 2}, {1, 3, 7, 5},
		{0, 1, 5, 4}, {2, 6, 7, 3},
		{0, 2, 3, 1}, {4, 5, 7, 6},
	}
	var tris []r3.Triangle
	for _, q := range quads {
		tris = append(tris,
			r3.Triangle{c[q[0]], c[q[1]], c[q[2]]},
			r3.Triangle{c[q[0]], c[q[2]], c[q[3]]},
		)
	}
	return tris
}

func sampleBox(t testing.TB, size int) *meshsdf.Volume {
	t.Helper()
	m, err := meshsdf.NewMesh(boxTriangles(r3.Vec{X: -1, Y: -0.5, Z: -0.25}, r3.Vec{X: 1, Y: 0.5, Z: 0.25}))
	if err != nil {
		t.Fatal(err)
	}
	vol, err := meshsdf.Sample(context.Background(), m, meshsdf.Config{GridSize: size, Padding: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	return vol
}
