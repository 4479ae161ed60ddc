package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivoronin/knobcompat/internal/knobs"
	"github.com/ivoronin/knobcompat/internal/output"
)

func newMigrateCmd(a *app) *cobra.Command {
	var (
		migrateJSON   bool
		migrateStrict bool
		migrateOut    string
	)

	cmd := &cobra.Command{
		Use:   "migrate <params-file>",
		Short: "Migrate a saved plugin parameter set",
		Long: `Rewrite the parameter names and choice values of a saved parameter set
(YAML or JSON) and report every change. With -o the migrated set is written out.`,
		Args: cobra.ExactArgs(1),
		Example: `  knobcompat migrate shuffle.yaml
  knobcompat migrate -o shuffle.new.yaml shuffle.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rw, err := a.rewriter()
			if err != nil {
				return err
			}

			path := args[0]
			data, err := os.ReadFile(path) //nolint:gosec // G304: path is user-supplied by design
			if err != nil {
				return fmt.Errorf("failed to read parameter set: %w", err)
			}
			state, err := knobs.Decode(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			report, err := knobs.Migrate(rw, state)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			a.log.Info().Str("file", path).Int("changes", len(report.Changes)).Msg("parameter set migrated")

			if migrateOut != "" {
				var buf bytes.Buffer
				if err := knobs.Encode(&buf, state); err != nil {
					return err
				}
				if err := os.WriteFile(migrateOut, buf.Bytes(), 0o644); err != nil { //nolint:gosec // G306: output is a project file, not a secret
					return fmt.Errorf("failed to write parameter set: %w", err)
				}
			}

			if err := a.print(&output.MigrationReport{File: path, Report: report}, migrateJSON); err != nil {
				return err
			}
			if migrateStrict && !report.Changed() {
				return errNoRewrite
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&migrateJSON, "json", "j", false, "Output in JSON format")
	cmd.Flags().BoolVar(&migrateStrict, "strict", false, "Exit with code 1 when nothing is rewritten")
	cmd.Flags().StringVarP(&migrateOut, "output", "o", "", "Write the migrated parameter set to this file")
	return cmd
}
