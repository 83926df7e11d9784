package render

import (
	"errors"
	"fmt"
	"os"

	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/soypat/meshsdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// volumeSDF exposes a sampled volume as an sdfx signed distance function
// by trilinear interpolation of its voxels.
type volumeSDF struct {
	vol *meshsdf.Volume
}

func (s volumeSDF) Evaluate(p sdf.V3) float64 {
	return s.vol.Interpolate(fromV3(p))
}

func (s volumeSDF) BoundingBox() sdf.Box3 {
	return sdf.Box3{Min: toV3(s.vol.Min), Max: toV3(s.vol.Max)}
}

// VolumeSDF returns an sdfx SDF3 that evaluates v by trilinear
// interpolation. It can be used with any sdfx renderer or operation.
func VolumeSDF(v *meshsdf.Volume) (sdf.SDF3, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil volume", meshsdf.ErrInvalidInput)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return volumeSDF{vol: v}, nil
}

// CreateIsosurfaceSTL extracts the zero level surface of v with marching
// cubes and writes it to an STL file at path. meshCells is the number of
// marching cubes along the longest side of the volume.
func CreateIsosurfaceSTL(path string, v *meshsdf.Volume, meshCells int) error {
	if meshCells < 2 {
		return fmt.Errorf("need at least 2 mesh cells, got %d", meshCells)
	}
	s, err := VolumeSDF(v)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	sdfxrender.ToSTL(s, meshCells, path, &sdfxrender.MarchingCubesOctree{})
	// The sdfx writer reports failures on standard output only.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("writing isosurface: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("writing isosurface: empty file")
	}
	return nil
}

func toV3(v r3.Vec) sdf.V3   { return sdf.V3{X: v.X, Y: v.Y, Z: v.Z} }
func fromV3(v sdf.V3) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
