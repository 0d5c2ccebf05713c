package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/sourcetag/internal/config"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the order webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.BaseConfigFile, "Base config file")

	return cmd
}

// run starts the server and blocks until a signal arrives or the listener
// fails, then shuts every subsystem down.
func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := NewServer(cfg)
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Wait(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown(cfg.ShutdownTimeoutDuration())
	})

	if err := g.Wait(); err != nil {
		return err
	}

	srv.infra.Logger.Info("sourcetag stopped")
	return nil
}
