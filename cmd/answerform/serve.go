package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-answerform/internal/server"
)

func newServeCmd(global *globalFlags) *cobra.Command {
	var (
		defFlags definitionFlags
		cfg      = server.Config{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the answer form over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, def, err := defFlags.host()
			if err != nil {
				return err
			}
			if cfg.Title == "" {
				cfg.Title = def.Source
			}

			srv, err := server.New(host, cfg, global.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = <-srv.Run(ctx, cfg)
			if errors.Is(err, context.Canceled) {
				global.logger.Info("stopped", zap.String("answer", host.Value()))
				return nil
			}
			return err
		},
	}
	defFlags.register(cmd, true)
	cmd.Flags().StringVar(&cfg.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cfg.Title, "title", "", "page title (default definition path)")
	return cmd
}
