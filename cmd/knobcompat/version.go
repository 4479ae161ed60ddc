package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivoronin/knobcompat/internal/rules"
)

func newVersionCmd(a *app) *cobra.Command {
	var versionJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version and built-in rule counts",
		Long:  `Display the knobcompat version and the size of the built-in rule tables.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := rules.Builtin()
			if versionJSON {
				info := struct {
					Version string `json:"version"`
					Names   int    `json:"builtin_names"`
					Options int    `json:"builtin_options"`
				}{
					Version: Version,
					Names:   b.Names().Len(),
					Options: b.Options().Len(),
				}
				out, err := json.Marshal(info)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, string(out))
				return err
			}
			_, err := fmt.Fprintf(a.stdout, "knobcompat %s (%d name rules, %d option rules)\n", Version, b.Names().Len(), b.Options().Len())
			return err
		},
	}
	cmd.Flags().BoolVarP(&versionJSON, "json", "j", false, "Output in JSON format")
	return cmd
}
