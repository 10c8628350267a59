package main

import (
	"os"

	"github.com/shadercoder/Salty/cmd"
	"github.com/shadercoder/Salty/log"
	"github.com/shadercoder/Salty/renderer"
	"github.com/urfave/cli"
)

var logger = log.New("salty")

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "salty"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.0.1"
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
			Name:  "render",
			Usage: "render a single frame of a builtin scene",
			Description: `
Compile one of the builtin demo scenes into an optimized representation,
build a BVH tree to accelerate ray intersection tests and render the
frame with the path-tracing worker pool. Preview snapshots are written
on a fixed interval while the render runs.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene",
					Value: "salty",
					Usage: "builtin scene name",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 1280,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 720,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 16,
					Usage: "samples per sub-pixel cell",
				},
				cli.IntFlag{
					Name:  "sub-samples",
					Value: 2,
					Usage: "side of the per-pixel sub-sample grid",
				},
				cli.IntFlag{
					Name:  "num-bounces",
					Value: 16,
					Usage: "path bounce budget",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "worker count (0 = one per hardware thread)",
				},
				cli.Float64Flag{
					Name:  "max-seconds",
					Value: renderer.DefaultMaxRenderSeconds,
					Usage: "wall-clock render budget in seconds",
				},
				cli.Float64Flag{
					Name:  "snapshot-interval",
					Value: renderer.DefaultSnapshotInterval,
					Usage: "seconds between preview snapshots",
				},
				cli.IntFlag{
					Name:  "seed",
					Value: 1,
					Usage: "base seed for the sampling streams",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "img",
					Usage: "output directory for snapshots and the final frame",
				},
			},
			Action: cmd.RenderFrame,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}
