package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-answerform/internal/logging"
)

type globalFlags struct {
	logMode  string
	logLevel string
	logger   *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "answerform",
		Short:         "Render, fill, serve and lint answer forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(flags.logMode, flags.logLevel)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			flags.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if flags.logger != nil {
				_ = flags.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&flags.logMode, "log-mode", "dev", "logger preset: dev or prod")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "minimum log level")

	root.AddCommand(
		newRenderCmd(flags),
		newFillCmd(flags),
		newServeCmd(flags),
		newLintCmd(flags),
	)
	return root
}
