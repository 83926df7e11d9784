package meshsdf

import (
	"fmt"
	"math"

	"github.com/soypat/meshsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Volume is a cubic grid of signed distances sampled at cell centers.
type Volume struct {
	// Size is the number of cells along each axis.
	Size int
	// Min and Max are the corners of the sampled region. They include
	// the padding added around the mesh.
	Min, Max r3.Vec
	// Data holds Size³ signed distances in x-major, then y, then z order.
	// Use Index to address it.
	Data []float64
}

// Len returns the number of voxels in the volume.
func (v *Volume) Len() int { return v.Size * v.Size * v.Size }

// Index returns the position of voxel (x, y, z) in Data.
func (v *Volume) Index(x, y, z int) int {
	return (x*v.Size+y)*v.Size + z
}

// At returns the signed distance stored for voxel (x, y, z).
func (v *Volume) At(x, y, z int) float64 {
	return v.Data[v.Index(x, y, z)]
}

// Step returns the size of a single cell.
func (v *Volume) Step() r3.Vec {
	return gridStep(d3.Box{Min: v.Min, Max: v.Max}, v.Size)
}

// Center returns the world position at which voxel (x, y, z) was sampled.
func (v *Volume) Center(x, y, z int) r3.Vec {
	return voxelCenter(v.Min, v.Step(), x, y, z)
}

// Validate checks the volume's dimensions are consistent and all values are finite.
func (v *Volume) Validate() error {
	if v.Size < 1 {
		return fmt.Errorf("%w: volume size %d", ErrGridSize, v.Size)
	}
	if len(v.Data) != v.Len() {
		return fmt.Errorf("%w: volume of size %d must hold %d values, got %d", ErrInvalidInput, v.Size, v.Len(), len(v.Data))
	}
	if !d3.IsFinite(v.Min) || !d3.IsFinite(v.Max) {
		return fmt.Errorf("%w: volume bounds %v %v", ErrNonFinite, v.Min, v.Max)
	}
	if d3.LTEZero(r3.Sub(v.Max, v.Min)) {
		return fmt.Errorf("%w: volume bounds %v %v", ErrDegenerateBounds, v.Min, v.Max)
	}
	for i, d := range v.Data {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: value %g at index %d", ErrNonFinite, d, i)
		}
	}
	return nil
}

// VolumeStats summarizes the values of a volume.
type VolumeStats struct {
	Inside      int // number of voxels with negative distance.
	MinDistance float64
	MaxDistance float64
}

// Stats returns a summary of the volume's values.
func (v *Volume) Stats() VolumeStats {
	st := VolumeStats{MinDistance: math.Inf(1), MaxDistance: math.Inf(-1)}
	for _, d := range v.Data {
		if d < 0 {
			st.Inside++
		}
		st.MinDistance = math.Min(st.MinDistance, d)
		st.MaxDistance = math.Max(st.MaxDistance, d)
	}
	return st
}

// Interpolate returns the trilinear interpolation of the sampled distances
// at p. Points beyond the outermost voxel centers take the value of the
// nearest voxel on that axis.
func (v *Volume) Interpolate(p r3.Vec) float64 {
	// Continuous voxel coordinates with voxel centers at integers.
	u := d3.DivElem(r3.Sub(p, v.Min), v.Step())
	x0, fx := lerpCell(u.X-0.5, v.Size)
	y0, fy := lerpCell(u.Y-0.5, v.Size)
	z0, fz := lerpCell(u.Z-0.5, v.Size)
	x1, y1, z1 := min(x0+1, v.Size-1), min(y0+1, v.Size-1), min(z0+1, v.Size-1)

	c00 := lerp(v.At(x0, y0, z0), v.At(x1, y0, z0), fx)
	c10 := lerp(v.At(x0, y1, z0), v.At(x1, y1, z0), fx)
	c01 := lerp(v.At(x0, y0, z1), v.At(x1, y0, z1), fx)
	c11 := lerp(v.At(x0, y1, z1), v.At(x1, y1, z1), fx)
	return lerp(lerp(c00, c10, fy), lerp(c01, c11, fy), fz)
}

// lerpCell clamps the continuous coordinate u to [0, n-1] and splits it
// into a cell index and the fraction towards the next cell.
func lerpCell(u float64, n int) (int, float64) {
	if !(u > 0) {
		return 0, 0
	}
	if u >= float64(n-1) {
		return n - 1, 0
	}
	i := math.Floor(u)
	return int(i), u - i
}

func lerp(a, b, t float64) float64 { return a + t*(b-a) }

func gridStep(bb d3.Box, size int) r3.Vec {
	n := float64(size)
	return d3.DivElem(bb.Size(), r3.Vec{X: n, Y: n, Z: n})
}

// voxelCenter returns the center of cell (x, y, z). Cells are sampled
// at their centers, never at their corners.
func voxelCenter(origin, step r3.Vec, x, y, z int) r3.Vec {
	return r3.Vec{
		X: origin.X + (float64(x)+0.5)*step.X,
		Y: origin.Y + (float64(y)+0.5)*step.Y,
		Z: origin.Z + (float64(z)+0.5)*step.Z,
	}
}
