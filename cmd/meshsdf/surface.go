package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/soypat/meshsdf"
	"github.com/soypat/meshsdf/render"
	"github.com/urfave/cli"
)

// ExtractSurface meshes the zero level of the volume file given as the only argument.
func ExtractSurface(ctx *cli.Context) error {
	setupLogging(ctx)
	if ctx.NArg() != 1 {
		return fmt.Errorf("surface expects a single volume file, got %d arguments", ctx.NArg())
	}
	vol, err := render.OpenJSON(ctx.Args().First())
	if err != nil {
		return err
	}
	out := ctx.String("out")

	// The marching cubes renderer prints its progress to standard output.
	restore := func() {}
	if !ctx.GlobalBool("v") && !ctx.GlobalBool("vv") {
		restore = discardStdout()
	}
	err = render.CreateIsosurfaceSTL(out, vol, ctx.Int("cells"))
	restore()
	if err != nil {
		return err
	}

	tris, err := render.OpenSTL(out)
	if errors.Is(err, meshsdf.ErrEmptyMesh) {
		logger.Warningf("volume has no zero crossing, %s holds no triangles", out)
		return nil
	} else if err != nil {
		return err
	}
	logger.Noticef("wrote %d triangles to %s", len(tris), out)
	return nil
}

// discardStdout points os.Stdout at the null device until the returned
// function is called. Stdout is left untouched if the device can't be opened.
func discardStdout() (restore func()) {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return func() {}
	}
	stdout := os.Stdout
	os.Stdout = devNull
	return func() {
		os.Stdout = stdout
		devNull.Close()
	}
}
