package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-answerform/pkg/renderers/tui"
	"github.com/goliatone/go-answerform/pkg/widget"
)

func newFillCmd(global *globalFlags) *cobra.Command {
	var defFlags definitionFlags
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Answer the form in the terminal and print the stored answer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, _, err := defFlags.host()
			if err != nil {
				return err
			}

			renderer, err := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
			)
			if err != nil {
				return err
			}

			w, err := widget.New(host,
				widget.WithLogger(global.logger),
				widget.WithRenderer(renderer),
			)
			if err != nil {
				return err
			}
			// The terminal renderer drives the controls; the returned bytes are
			// the same stored answer Sync writes.
			if _, err := w.RenderedRoot(cmd.Context()); err != nil {
				return err
			}
			if err := w.Destroy(); err != nil {
				return err
			}
			global.logger.Debug("filled", zap.Int("bytes", len(host.Value())))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), host.Value())
			return err
		},
	}
	defFlags.register(cmd, true)
	return cmd
}
