package main

import (
	"bufio"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/meshsdf/render"
	"github.com/urfave/cli"
	"gonum.org/v1/plot/vg"
)

// SliceVolume renders one slice of the volume file given as the only argument.
func SliceVolume(ctx *cli.Context) error {
	setupLogging(ctx)
	if ctx.NArg() != 1 {
		return fmt.Errorf("slice expects a single volume file, got %d arguments", ctx.NArg())
	}
	vol, err := render.OpenJSON(ctx.Args().First())
	if err != nil {
		return err
	}
	axis, err := render.ParseAxis(ctx.String("axis"))
	if err != nil {
		return err
	}
	index := ctx.Int("index")
	if index < 0 {
		index = vol.Size / 2
	}
	out := ctx.String("out")

	if ctx.Bool("plot") {
		p, err := render.PlotSlice(vol, axis, index)
		if err != nil {
			return err
		}
		if err = p.Save(6*vg.Inch, 6*vg.Inch, out); err != nil {
			return err
		}
		logger.Noticef("wrote %s slice %d plot to %s", axis, index, out)
		return nil
	}

	if ext := strings.ToLower(filepath.Ext(out)); ext != ".png" {
		return fmt.Errorf("grayscale slices are written as png, got %q", ext)
	}
	img, err := render.SliceImage(vol, axis, index, ctx.Int("scale"))
	if err != nil {
		return err
	}
	fp, err := os.Create(out)
	if err != nil {
		return err
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	if err = png.Encode(bw, img); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	logger.Noticef("wrote %s slice %d image to %s", axis, index, out)
	return fp.Close()
}
