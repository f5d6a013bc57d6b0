package cmd

import (
	"fmt"

	"github.com/df07/go-bvh-pathtracer/web/server"
	"github.com/urfave/cli"
)

// Serve starts the HTTP preview server.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	srv := server.NewServer(ctx.Int("port"))
	logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", ctx.Int("port"))
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
