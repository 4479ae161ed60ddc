package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivoronin/knobcompat/internal/compat"
	"github.com/ivoronin/knobcompat/internal/output"
	"github.com/ivoronin/knobcompat/internal/rules"
)

func newCheckCmd(a *app) *cobra.Command {
	var checkJSON bool

	cmd := &cobra.Command{
		Use:   "check <rules-file>",
		Short: "Validate a rules file",
		Long:  `Parse and validate a rules file, reporting every problem found.`,
		Args:  cobra.ExactArgs(1),
		Example: `  knobcompat check rules.yaml
  knobcompat check -j rules.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path) //nolint:gosec // G304: path is user-supplied by design
			if err != nil {
				return fmt.Errorf("failed to open rules file: %w", err)
			}
			defer func() { _ = f.Close() }()

			names, options, err := rules.Parse(f)
			if err == nil {
				_, err = compat.NewRewriter(names, options, compat.WithLogger(a.log))
			}
			res := output.NewCheckResult(path, names.Len(), options.Len(), err)
			if perr := a.print(res, checkJSON); perr != nil {
				return perr
			}
			if err != nil {
				return fmt.Errorf("rules file %q is invalid", path)
			}
			a.log.Info().Str("file", path).Int("names", names.Len()).Int("options", options.Len()).Msg("rules file is valid")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&checkJSON, "json", "j", false, "Output in JSON format")
	return cmd
}
