package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivoronin/knobcompat/internal/compat"
	"github.com/ivoronin/knobcompat/internal/output"
	"github.com/ivoronin/knobcompat/internal/version"
)

func newListCmd(a *app) *cobra.Command {
	var (
		listJSON bool
		listHost string
	)

	cmd := &cobra.Command{
		Use:       "list [names|options]",
		Short:     "List rules in evaluation order",
		Long:      `Display the name and option rules. With --host, only rules active for that host version are shown.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(compat.KindName), string(compat.KindOption)},
		Example: `  knobcompat list
  knobcompat list options --host 2.0.0
  knobcompat list -j names`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rw, err := a.rewriter()
			if err != nil {
				return err
			}

			tables := []compat.Table{rw.Names(), rw.Options()}
			if len(args) == 1 {
				if args[0] == string(compat.KindName) {
					tables = tables[:1]
				} else {
					tables = tables[1:]
				}
			}

			var host *compat.Version
			if cmd.Flags().Changed("host") {
				v, err := version.Parse(listHost)
				if err != nil {
					return fmt.Errorf("invalid host: %w", err)
				}
				host = &v
			}

			list := &output.RuleList{}
			for _, t := range tables {
				var idx []int
				if host != nil {
					idx = t.Active(*host)
				}
				list.Entries = append(list.Entries, output.RuleEntries(t, idx)...)
			}
			return a.print(list, listJSON)
		},
	}
	cmd.Flags().BoolVarP(&listJSON, "json", "j", false, "Output in JSON format")
	cmd.Flags().StringVar(&listHost, "host", "", "Only show rules active for this host version")
	return cmd
}
