// Package meshsdf samples signed distance fields of closed triangle meshes
// on regular grids.
package meshsdf

import (
	"fmt"
	"math"

	"github.com/soypat/meshsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an immutable ordered list of world space triangles.
// It is safe for concurrent use.
type Mesh struct {
	tris []r3.Triangle
	// bb is the bounding box of all triangle corners.
	bb d3.Box
}

// NewMesh copies the triangles into a new Mesh. It fails if there
// are no triangles or a coordinate is NaN or infinite. Degenerate triangles
// are accepted.
func NewMesh(triangles []r3.Triangle) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	m := &Mesh{
		tris: make([]r3.Triangle, len(triangles)),
		bb:   d3.EmptyBox(),
	}
	for i, tri := range triangles {
		for j := range tri {
			if !d3.IsFinite(tri[j]) {
				return nil, fmt.Errorf("%w: triangle %d vertex %d is %v", ErrNonFinite, i, j, tri[j])
			}
		}
		m.tris[i] = tri
		m.bb = m.bb.IncludeTriangle(tri)
	}
	return m, nil
}

// Len returns the number of triangles in the mesh.
func (m *Mesh) Len() int { return len(m.tris) }

// Triangles returns a copy of the mesh triangles in their original order.
func (m *Mesh) Triangles() []r3.Triangle {
	return append([]r3.Triangle(nil), m.tris...)
}

// Bounds returns the axis aligned bounding box of the mesh corners.
func (m *Mesh) Bounds() r3.Box {
	return r3.Box(m.bb)
}

// Transform returns a new mesh with every corner moved by t, for example
// to bring a mesh from object space into world space.
func (m *Mesh) Transform(t Transform) (*Mesh, error) {
	if t.Det() == 0 {
		return nil, ErrSingularTransform
	}
	moved := make([]r3.Triangle, len(m.tris))
	for i, tri := range m.tris {
		moved[i] = r3.Triangle{t.Transform(tri[0]), t.Transform(tri[1]), t.Transform(tri[2])}
	}
	return NewMesh(moved)
}

// Contains reports whether p is inside the mesh. See IsInside.
func (m *Mesh) Contains(p r3.Vec) bool {
	return IsInside(p, m.tris)
}

// Distance returns the unsigned distance from p to the closest triangle.
func (m *Mesh) Distance(p r3.Vec) float64 {
	return m.distance(p, false)
}

// SignedDistance returns the distance from p to the mesh surface,
// negative if p is inside the mesh.
func (m *Mesh) SignedDistance(p r3.Vec) float64 {
	return m.signedDistance(p, false)
}

func (m *Mesh) distance(p r3.Vec, legacyBC bool) float64 {
	minDist := math.Inf(1)
	for i := range m.tris {
		_, d := closestFeature(p, m.tris[i], legacyBC)
		if d < minDist {
			minDist = d
		}
	}
	return minDist
}

func (m *Mesh) signedDistance(p r3.Vec, legacyBC bool) float64 {
	d := m.distance(p, legacyBC)
	if m.Contains(p) {
		return -d
	}
	return d
}

// Transform is an affine transform applied to meshes. The zero value is
// the identity transform.
type Transform = d3.Transform

// NewTransform returns a Transform from a row-major 4x4 matrix whose
// bottom row is 0,0,0,1.
func NewTransform(rowMajor []float64) (Transform, error) {
	return d3.NewTransform(rowMajor)
}

// ComposeTransform returns the transform that scales, then rotates by q and
// finally translates to position.
func ComposeTransform(position, scale r3.Vec, q r3.Rotation) Transform {
	return d3.ComposeTransform(position, scale, q)
}
