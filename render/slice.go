package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/nfnt/resize"
	"github.com/soypat/meshsdf"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
)

// Axis selects the normal of a volume slice.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis parses "x", "y" or "z", ignoring case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Slice is a 2D cut through a volume at a fixed index along Axis.
// Its columns and rows run along the two remaining axes in x, y, z order.
// Slice implements plotter.GridXYZ.
type Slice struct {
	vol   *meshsdf.Volume
	axis  Axis
	index int
}

// NewSlice returns the slice of v normal to axis at the given cell index.
func NewSlice(v *meshsdf.Volume, axis Axis, index int) (*Slice, error) {
	if v == nil || v.Size < 1 || len(v.Data) != v.Len() {
		return nil, errors.New("invalid volume")
	}
	if axis < AxisX || axis > AxisZ {
		return nil, fmt.Errorf("invalid axis %v", axis)
	}
	if index < 0 || index >= v.Size {
		return nil, fmt.Errorf("slice index %d out of range [0, %d)", index, v.Size)
	}
	return &Slice{vol: v, axis: axis, index: index}, nil
}

// Dims returns the number of columns and rows of the slice.
func (s *Slice) Dims() (c, r int) { return s.vol.Size, s.vol.Size }

// Z returns the signed distance at column c and row r.
func (s *Slice) Z(c, r int) float64 {
	x, y, z := s.cell(c, r)
	return s.vol.At(x, y, z)
}

// X returns the world coordinate of column c.
func (s *Slice) X(c int) float64 {
	x, y, z := s.cell(c, 0)
	p := s.vol.Center(x, y, z)
	if s.axis == AxisX {
		return p.Y
	}
	return p.X
}

// Y returns the world coordinate of row r.
func (s *Slice) Y(r int) float64 {
	x, y, z := s.cell(0, r)
	p := s.vol.Center(x, y, z)
	if s.axis == AxisZ {
		return p.Y
	}
	return p.Z
}

func (s *Slice) cell(c, r int) (x, y, z int) {
	switch s.axis {
	case AxisX:
		return s.index, c, r
	case AxisY:
		return c, s.index, r
	default:
		return c, r, s.index
	}
}

// labels returns the names of the column and row axes.
func (s *Slice) labels() (string, string) {
	switch s.axis {
	case AxisX:
		return "y", "z"
	case AxisY:
		return "x", "z"
	default:
		return "x", "y"
	}
}

// maxAbs returns the largest distance magnitude in the slice, or 1 if
// the slice is all zeros.
func (s *Slice) maxAbs() float64 {
	var m float64
	n := s.vol.Size
	for c := 0; c < n; c++ {
		for r := 0; r < n; r++ {
			m = math.Max(m, math.Abs(s.Z(c, r)))
		}
	}
	if m == 0 {
		return 1
	}
	return m
}

// Image returns a grayscale rendering of the slice with one pixel per cell,
// enlarged scale times with nearest neighbour interpolation.
// Negative distances are darker than mid gray, positive ones lighter.
// Rows grow upwards.
func (s *Slice) Image(scale int) image.Image {
	n := s.vol.Size
	img := image.NewGray(image.Rect(0, 0, n, n))
	m := s.maxAbs()
	for c := 0; c < n; c++ {
		for r := 0; r < n; r++ {
			g := 127.5 * (1 + s.Z(c, r)/m)
			img.SetGray(c, n-1-r, color.Gray{Y: uint8(math.Round(g))})
		}
	}
	if scale <= 1 {
		return img
	}
	side := uint(n * scale)
	return resize.Resize(side, side, img, resize.NearestNeighbor)
}

// SliceImage is shorthand for NewSlice followed by Slice.Image.
func SliceImage(v *meshsdf.Volume, axis Axis, index, scale int) (image.Image, error) {
	s, err := NewSlice(v, axis, index)
	if err != nil {
		return nil, err
	}
	return s.Image(scale), nil
}

// PlotSlice returns a heat map of a volume slice with the surface,
// where the distance changes sign, drawn as a contour line.
func PlotSlice(v *meshsdf.Volume, axis Axis, index int) (*plot.Plot, error) {
	s, err := NewSlice(v, axis, index)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("signed distance, %s slice %d of %d", axis, index, v.Size)
	p.X.Label.Text, p.Y.Label.Text = s.labels()

	m := s.maxAbs()
	hm := plotter.NewHeatMap(s, palette.Heat(16, 1))
	// Symmetric range keeps zero at the palette center.
	hm.Min, hm.Max = -m, m
	p.Add(hm)

	st := sliceSigns(s)
	if st.neg && st.pos {
		ct := plotter.NewContour(s, []float64{0}, fixedPalette{color.Black})
		p.Add(ct)
	}
	return p, nil
}

type signs struct{ neg, pos bool }

func sliceSigns(s *Slice) (st signs) {
	n := s.vol.Size
	for c := 0; c < n; c++ {
		for r := 0; r < n; r++ {
			d := s.Z(c, r)
			st.neg = st.neg || d < 0
			st.pos = st.pos || d > 0
		}
	}
	return st
}

type fixedPalette []color.Color

func (p fixedPalette) Colors() []color.Color { return p }
