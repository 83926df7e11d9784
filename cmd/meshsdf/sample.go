package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/soypat/meshsdf"
	"github.com/soypat/meshsdf/render"
	"github.com/urfave/cli"
	"gonum.org/v1/gonum/spatial/r3"
)

// defaultOutput is written next to the input mesh when no output is given.
const defaultOutput = "sdf_output.json"

// SampleMesh samples the mesh given as the only argument and writes the volume as JSON.
func SampleMesh(ctx *cli.Context) error {
	setupLogging(ctx)
	if ctx.NArg() != 1 {
		return fmt.Errorf("sample expects a single mesh file, got %d arguments", ctx.NArg())
	}
	meshFile := ctx.Args().First()

	tris, err := render.LoadMesh(meshFile)
	if err != nil {
		return err
	}
	mesh, err := meshsdf.NewMesh(tris)
	if err != nil {
		return fmt.Errorf("%s: %w", meshFile, err)
	}
	logger.Infof("loaded %d triangles from %s", mesh.Len(), meshFile)

	world, err := parseWorldTransform(ctx.String("translate"), ctx.String("scale"), ctx.String("rotate"), ctx.String("matrix"))
	if err != nil {
		return err
	}
	if world != (meshsdf.Transform{}) {
		logger.Debugf("world transform %v", world.SliceCopy())
		if mesh, err = mesh.Transform(world); err != nil {
			return err
		}
	}

	cfg := meshsdf.DefaultConfig()
	cfg.GridSize = ctx.Int("size")
	cfg.Padding = ctx.Float64("padding")
	cfg.Workers = ctx.Int("workers")
	cfg.LegacyEdgeBC = ctx.Bool("legacy-edge")

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if timeout := ctx.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}

	start := time.Now()
	vol, err := meshsdf.Sample(runCtx, mesh, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := ctx.String("out")
	if out == "" {
		out = filepath.Join(filepath.Dir(meshFile), defaultOutput)
	}
	if err = render.CreateJSON(out, vol, ctx.Bool("indent")); err != nil {
		return err
	}
	displayStats(mesh, vol, elapsed, out)
	return nil
}

func displayStats(mesh *meshsdf.Mesh, vol *meshsdf.Volume, elapsed time.Duration, out string) {
	st := vol.Stats()
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Triangles", "Grid", "Min", "Max", "Inside", "Distance range", "Sample time"})
	table.Append([]string{
		strconv.Itoa(mesh.Len()),
		fmt.Sprintf("%d³", vol.Size),
		formatVec(vol.Min),
		formatVec(vol.Max),
		fmt.Sprintf("%02.1f %%", 100*float64(st.Inside)/float64(vol.Len())),
		fmt.Sprintf("[%.4g, %.4g]", st.MinDistance, st.MaxDistance),
		elapsed.Round(time.Millisecond).String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "OUTPUT", out})
	table.Render()
	logger.Noticef("volume statistics\n%s", buf.String())
}

func formatVec(v r3.Vec) string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", v.X, v.Y, v.Z)
}

// parseWorldTransform builds the transform that scales, rotates and
// translates a mesh, followed by the optional row-major matrix.
// Empty arguments leave their part of the transform as the identity.
func parseWorldTransform(translate, scale, rotate, matrix string) (meshsdf.Transform, error) {
	pos := r3.Vec{}
	size := r3.Vec{X: 1, Y: 1, Z: 1}
	var rot r3.Rotation
	if translate != "" {
		v, err := parseFloats(translate, 3)
		if err != nil {
			return meshsdf.Transform{}, fmt.Errorf("translate: %w", err)
		}
		pos = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
	}
	if scale != "" {
		v, err := parseFloats(scale, 3)
		if err != nil {
			return meshsdf.Transform{}, fmt.Errorf("scale: %w", err)
		}
		size = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
	}
	if rotate != "" {
		v, err := parseFloats(rotate, 4)
		if err != nil {
			return meshsdf.Transform{}, fmt.Errorf("rotate: %w", err)
		}
		axis := r3.Vec{X: v[1], Y: v[2], Z: v[3]}
		if r3.Norm(axis) == 0 {
			return meshsdf.Transform{}, errors.New("rotate: axis must not be zero")
		}
		if v[0] != 0 {
			rot = r3.NewRotation(v[0]*math.Pi/180, axis)
		}
	}
	world := meshsdf.ComposeTransform(pos, size, rot)
	if matrix != "" {
		v, err := parseFloats(matrix, 16)
		if err != nil {
			return meshsdf.Transform{}, fmt.Errorf("matrix: %w", err)
		}
		m, err := meshsdf.NewTransform(v)
		if err != nil {
			return meshsdf.Transform{}, fmt.Errorf("matrix: %w", err)
		}
		world = m.Mul(world)
	}
	return world, nil
}

// parseFloats parses exactly n comma separated finite numbers.
func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("want %d comma separated values, got %d in %q", n, len(fields), s)
	}
	v := make([]float64, n)
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("value %q is not finite", f)
		}
		v[i] = x
	}
	return v, nil
}
