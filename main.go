package main

import (
	"os"

	"github.com/df07/go-bvh-pathtracer/cmd"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func newApp() *cli.App {
	// The default version flag claims -v, which is the verbose switch here
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-bvh-pathtracer"
	app.Usage = "render triangle scenes with a BVH-accelerated path tracer"
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
			Name:  "render",
			Usage: "render a scene to a PNG file",
			Description: `
Build the named scene, construct the intersection backend and render it
progressively. Per-pass statistics are printed once the frame completes.`,
			Flags:  cmd.RenderFlags(),
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list available scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "start the HTTP preview server",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to listen on",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
