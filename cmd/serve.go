package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/hbnb/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until SIGINT or SIGTERM, then shuts down gracefully.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepareStore(ctx); err != nil {
		return err
	}

	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := int(cmd.Int("port")); port > 0 {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(r.store, cfg, r.logger)
	return srv.ListenAndServe(ctx)
}
