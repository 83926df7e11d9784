package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/meshsdf/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestParseFloats(t *testing.T) {
	v, err := parseFloats(" 1, -2.5 ,3e2", 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2.5, 300}, v)

	for _, bad := range []string{"1,2", "1,2,3,4", "1,a,3", "1,NaN,3", "1,inf,2"} {
		_, err := parseFloats(bad, 3)
		assert.Error(t, err, bad)
	}
}

func TestParseWorldTransform(t *testing.T) {
	identity, err := parseWorldTransform("0,0,0", "1,1,1", "", "")
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, identity.Transform(r3.Vec{X: 1, Y: 2, Z: 3}))

	tf, err := parseWorldTransform("10,0,0", "2,2,2", "90,0,0,1", "")
	require.NoError(t, err)
	got := tf.Transform(r3.Vec{X: 1})
	assert.InDelta(t, 10, got.X, 1e-12)
	assert.InDelta(t, 2, got.Y, 1e-12)
	assert.InDelta(t, 0, got.Z, 1e-12)

	// The matrix is applied last.
	tf, err = parseWorldTransform("", "2,2,2", "", "1,0,0,5, 0,1,0,0, 0,0,1,0, 0,0,0,1")
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 7}, tf.Transform(r3.Vec{X: 1}))

	for _, args := range [][4]string{
		{"1,2", "", "", ""},
		{"", "1,1", "", ""},
		{"", "", "90,0,0,0", ""},
		{"", "", "", "1,0,0,0"},
		{"", "", "", "1,0,0,0, 0,1,0,0, 0,0,1,0, 1,0,0,1"},
	} {
		_, err := parseWorldTransform(args[0], args[1], args[2], args[3])
		assert.Error(t, err, "%q", args)
	}
}

func TestSampleAndSliceCommands(t *testing.T) {
	dir := t.TempDir()
	meshFile := filepath.Join(dir, "cube.obj")
	const cube = "v -1 -1 -1\nv 1 -1 -1\nv 1 1 -1\nv -1 1 -1\nv -1 -1 1\nv 1 -1 1\nv 1 1 1\nv -1 1 1\n" +
		"f 1 4 3 2\nf 5 6 7 8\nf 1 2 6 5\nf 2 3 7 6\nf 3 4 8 7\nf 4 1 5 8\n"
	require.NoError(t, os.WriteFile(meshFile, []byte(cube), 0o644))

	app := newApp()
	err := app.Run([]string{"meshsdf", "sample", "--size", "1", "--padding", "0", "--workers", "1", meshFile})
	require.NoError(t, err)

	// Written next to the mesh by default.
	out := filepath.Join(dir, defaultOutput)
	vol, err := render.OpenJSON(out)
	require.NoError(t, err)
	require.Equal(t, 1, vol.Size)
	assert.Equal(t, -1.0, vol.Data[0])

	moved := filepath.Join(dir, "moved.json")
	err = app.Run([]string{"meshsdf", "sample", "-n", "4", "--translate", "5,0,0", "--indent", "-o", moved, meshFile})
	require.NoError(t, err)
	vol, err = render.OpenJSON(moved)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, vol.Min.X, 1e-12)
	assert.InDelta(t, 7.0, vol.Max.X, 1e-12)
	assert.Len(t, vol.Data, 64)
	assert.False(t, math.IsNaN(vol.Stats().MinDistance))

	img := filepath.Join(dir, "slice.png")
	require.NoError(t, app.Run([]string{"meshsdf", "slice", "--axis", "x", "-o", img, moved}))
	info, err := os.Stat(img)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	assert.Error(t, app.Run([]string{"meshsdf", "sample"}))
	assert.Error(t, app.Run([]string{"meshsdf", "sample", "--size", "0", meshFile}))
	assert.Error(t, app.Run([]string{"meshsdf", "slice", "--axis", "w", moved}))
	assert.Error(t, app.Run([]string{"meshsdf", "slice", "-o", filepath.Join(dir, "slice.jpg"), moved}))
}

func TestSurfaceCommand(t *testing.T) {
	dir := t.TempDir()
	meshFile := filepath.Join(dir, "tetrahedron.stl")
	require.NoError(t, render.CreateSTL(meshFile, []r3.Triangle{
		{{}, {X: 1}, {Y: 1}},
		{{}, {Z: 1}, {X: 1}},
		{{}, {Y: 1}, {Z: 1}},
		{{X: 1}, {Z: 1}, {Y: 1}},
	}))
	app := newApp()
	require.NoError(t, app.Run([]string{"meshsdf", "sample", "-n", "10", "-p", "0.3", meshFile}))

	out := filepath.Join(dir, "surface.stl")
	require.NoError(t, app.Run([]string{"meshsdf", "surface", "-c", "20", "-o", out, filepath.Join(dir, defaultOutput)}))
	tris, err := render.OpenSTL(out)
	require.NoError(t, err)
	assert.NotEmpty(t, tris)
}

func TestDiscardStdout(t *testing.T) {
	stdout := os.Stdout
	restore := discardStdout()
	require.NotSame(t, stdout, os.Stdout)
	_, err := fmt.Fprintln(os.Stdout, "marching cubes progress")
	assert.NoError(t, err)
	restore()
	assert.Same(t, stdout, os.Stdout)
}
