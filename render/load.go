package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"
	"gonum.org/v1/gonum/spatial/r3"
)

// LoadMesh reads the triangles of a mesh file. The format is chosen by the
// file extension: .stl, .obj, .ply or .3ds. Polygons with more than three
// corners are split into triangle fans.
func LoadMesh(path string) ([]r3.Triangle, error) {
	var (
		mesh *fauxgl.Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return OpenSTL(path)
	case ".obj":
		mesh, err = fauxgl.LoadOBJ(path)
	case ".ply":
		mesh, err = fauxgl.LoadPLY(path)
	case ".3ds":
		mesh, err = fauxgl.Load3DS(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return fromFauxgl(mesh), nil
}

func fromFauxgl(mesh *fauxgl.Mesh) []r3.Triangle {
	tris := make([]r3.Triangle, len(mesh.Triangles))
	for i, t := range mesh.Triangles {
		tris[i] = r3.Triangle{
			fromFauxglVec(t.V1.Position),
			fromFauxglVec(t.V2.Position),
			fromFauxglVec(t.V3.Position),
		}
	}
	return tris
}

func fromFauxglVec(v fauxgl.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
