package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-answerform/pkg/lint"
)

func newLintCmd(_ *globalFlags) *cobra.Command {
	var (
		defFlags definitionFlags
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check definition fragments and the stored answer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := defFlags.load()
			if err != nil {
				return err
			}
			report, err := lint.Definition(def.Fragments, def.Answer)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				for _, issue := range report.Issues {
					fmt.Fprintln(out, issue.String())
				}
			}
			if !report.OK() {
				return fmt.Errorf("%s: %d issue(s)", def.Source, len(report.Issues))
			}
			return nil
		},
	}
	defFlags.register(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
