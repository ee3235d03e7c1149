package main

import (
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-answerform/pkg/renderers/vanilla"
	"github.com/goliatone/go-answerform/pkg/widget"
)

func newRenderCmd(global *globalFlags) *cobra.Command {
	var (
		defFlags  definitionFlags
		output    string
		id        string
		themeName string
		variant   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the answer form as HTML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, def, err := defFlags.host()
			if err != nil {
				return err
			}

			renderer, err := vanilla.New()
			if err != nil {
				return err
			}

			var cfg *theme.RendererConfig
			if themeName != "" {
				cfg = &theme.RendererConfig{Theme: themeName, Variant: variant}
			}

			w, err := widget.New(host,
				widget.WithID(id),
				widget.WithLogger(global.logger),
				widget.WithRenderer(renderer),
				widget.WithTheme(cfg),
			)
			if err != nil {
				return err
			}
			html, err := w.RenderedRoot(cmd.Context())
			if err != nil {
				return err
			}
			global.logger.Debug("rendered", zap.Stringer("definition", def), zap.Int("bytes", len(html)))

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			return nil
		},
	}
	defFlags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&id, "id", "", "root container id (default generated)")
	cmd.Flags().StringVar(&themeName, "theme", "", "theme name exposed as data-theme")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant")
	return cmd
}
