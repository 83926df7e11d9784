package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "meshsdf"
	app.Usage = "sample signed distance fields of closed triangle meshes"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "sample",
			Usage: "sample a mesh into a signed distance volume",
			Description: `
Load a closed triangle mesh (stl, obj, ply or 3ds), optionally move it into
world space and sample the signed distance to its surface at the center of
every cell of a size³ grid spanning the mesh bounds plus padding.

Distances are negative inside the mesh. The volume is written as JSON with
the keys size, min, max and data, data being x-major, then y, then z.`,
			ArgsUsage: "mesh_file",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "size, n",
					Value: 30,
					Usage: "number of cells along each axis",
				},
				cli.Float64Flag{
					Name:  "padding, p",
					Value: 1.0,
					Usage: "margin added around the mesh bounds",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of sampling goroutines; 0 uses all CPUs",
				},
				cli.DurationFlag{
					Name:  "timeout",
					Usage: "abort sampling after this long; 0 disables the limit",
				},
				cli.BoolFlag{
					Name:  "legacy-edge",
					Usage: "measure points closest to edge b-c against vertex c like older exporters",
				},
				cli.StringFlag{
					Name:  "translate",
					Value: "0,0,0",
					Usage: "world position of the mesh as x,y,z",
				},
				cli.StringFlag{
					Name:  "scale",
					Value: "1,1,1",
					Usage: "mesh scale as x,y,z",
				},
				cli.StringFlag{
					Name:  "rotate",
					Usage: "mesh rotation as degrees,axis_x,axis_y,axis_z",
				},
				cli.StringFlag{
					Name:  "matrix",
					Usage: "16 comma separated values of a row-major world matrix, applied after translate, scale and rotate",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output file; defaults to sdf_output.json next to the mesh",
				},
				cli.BoolFlag{
					Name:  "indent",
					Usage: "write one value per line with 4 space indentation",
				},
			},
			Action: SampleMesh,
		},
		{
			Name:  "slice",
			Usage: "render a slice of a sampled volume as an image",
			Description: `
Read a volume written by the sample command and render the cells at a fixed
index along one axis, either as a grayscale image (inside dark, outside light)
or as a heat map plot with the surface outlined.`,
			ArgsUsage: "volume.json",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "axis, a",
					Value: "z",
					Usage: "slice normal: x, y or z",
				},
				cli.IntFlag{
					Name:  "index, i",
					Value: -1,
					Usage: "cell index along the axis; negative selects the middle",
				},
				cli.BoolFlag{
					Name:  "plot",
					Usage: "draw a heat map plot instead of a grayscale image",
				},
				cli.IntFlag{
					Name:  "scale, s",
					Value: 8,
					Usage: "grayscale image pixels per cell",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "slice.png",
					Usage: "image filename; plots may also use .svg, .pdf or .eps",
				},
			},
			Action: SliceVolume,
		},
		{
			Name:  "surface",
			Usage: "extract the surface of a sampled volume as an STL mesh",
			Description: `
Read a volume written by the sample command and mesh the level where the
signed distance is zero with marching cubes. Useful to check the volume
against the mesh it was sampled from.`,
			ArgsUsage: "volume.json",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "cells, c",
					Value: 64,
					Usage: "marching cubes along the longest side of the volume",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "surface.stl",
					Usage: "STL filename",
				},
			},
			Action: ExtractSurface,
		},
	}
	return app
}
