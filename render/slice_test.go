package render_test

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/meshsdf/render"
	"gonum.org/v1/plot/vg"
)

func TestParseAxis(t *testing.T) {
	for s, want := range map[string]render.Axis{"x": render.AxisX, "Y": render.AxisY, "z": render.AxisZ} {
		got, err := render.ParseAxis(s)
		if err != nil || got != want {
			t.Errorf("ParseAxis(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := render.ParseAxis("w"); err == nil {
		t.Error("expected error for unknown axis")
	}
}

func TestSliceLayout(t *testing.T) {
	vol := sampleBox(t, 5)
	for _, axis := range []render.Axis{render.AxisX, render.AxisY, render.AxisZ} {
		s, err := render.NewSlice(vol, axis, 1)
		if err != nil {
			t.Fatal(err)
		}
		c, r := s.Dims()
		if c != 5 || r != 5 {
			t.Fatalf("dims got %d,%d", c, r)
		}
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				var want float64
				switch axis {
				case render.AxisX:
					want = vol.At(1, i, j)
				case render.AxisY:
					want = vol.At(i, 1, j)
				case render.AxisZ:
					want = vol.At(i, j, 1)
				}
				if got := s.Z(i, j); got != want {
					t.Fatalf("%v slice (%d,%d): got %g, want %g", axis, i, j, got, want)
				}
			}
			if i > 0 && (s.X(i) <= s.X(i-1) || s.Y(i) <= s.Y(i-1)) {
				t.Fatalf("%v slice coordinates must increase", axis)
			}
		}
	}
	if _, err := render.NewSlice(vol, render.AxisZ, 5); err == nil {
		t.Error("expected out of range error")
	}
	if _, err := render.NewSlice(vol, render.Axis(3), 0); err == nil {
		t.Error("expected invalid axis error")
	}
}

func TestSliceImage(t *testing.T) {
	vol := sampleBox(t, 8)
	const scale = 3
	img, err := render.SliceImage(vol, render.AxisZ, 4, scale)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b != image.Rect(0, 0, 8*scale, 8*scale) {
		t.Fatalf("unexpected bounds %v", b)
	}
	// The box center is inside and darker than the outside corner.
	center := color.GrayModel.Convert(img.At(4*scale, 4*scale)).(color.Gray)
	corner := color.GrayModel.Convert(img.At(0, 0)).(color.Gray)
	if center.Y >= 128 || corner.Y <= 128 {
		t.Errorf("center gray %d should be dark and corner gray %d light", center.Y, corner.Y)
	}

	plain, err := render.SliceImage(vol, render.AxisZ, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if b := plain.Bounds(); b != image.Rect(0, 0, 8, 8) {
		t.Errorf("unscaled image bounds %v", b)
	}
}

func TestPlotSlice(t *testing.T) {
	vol := sampleBox(t, 10)
	p, err := render.PlotSlice(vol, render.AxisY, 5)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "slice.png")
	if err := p.Save(4*vg.Inch, 4*vg.Inch, path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty plot image")
	}
}
