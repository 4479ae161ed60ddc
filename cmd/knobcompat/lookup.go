package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivoronin/knobcompat/internal/compat"
	"github.com/ivoronin/knobcompat/internal/knobs"
	"github.com/ivoronin/knobcompat/internal/output"
)

// lookupFlags are shared by the name and option commands.
type lookupFlags struct {
	plugin        string
	pluginVersion string
	host          string
	json          bool
	strict        bool
}

func (f *lookupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.plugin, "plugin", "", "Plugin identifier (e.g., net.sf.openfx.ShufflePlugin)")
	cmd.Flags().StringVar(&f.pluginVersion, "plugin-version", "", "Plugin version as major.minor (default unknown)")
	cmd.Flags().StringVar(&f.host, "host", "", "Host version that saved the project (default unknown)")
	cmd.Flags().BoolVarP(&f.json, "json", "j", false, "Output in JSON format")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit with code 1 when nothing is rewritten")
}

func (f *lookupFlags) query() (compat.Query, error) {
	s := knobs.State{Plugin: f.plugin, PluginVersion: f.pluginVersion, Host: f.host}
	q, err := s.Query()
	if err != nil {
		return compat.Query{}, fmt.Errorf("invalid %w", err)
	}
	return q, nil
}

func (f *lookupFlags) result(kind string, q compat.Query) *output.RewriteResult {
	return &output.RewriteResult{
		Kind:          kind,
		Plugin:        f.plugin,
		PluginVersion: q.Plugin.String(),
		Host:          q.Host.String(),
	}
}

func newNameCmd(a *app) *cobra.Command {
	var flags lookupFlags

	cmd := &cobra.Command{
		Use:   "name <param>",
		Short: "Rewrite a legacy parameter name",
		Args:  cobra.ExactArgs(1),
		Example: `  knobcompat name --plugin net.sf.openfx.GradePlugin --host 2.1.0 r
  knobcompat name -j --plugin fr.inria.built-in.Roto doRed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rw, err := a.rewriter()
			if err != nil {
				return err
			}
			q, err := flags.query()
			if err != nil {
				return err
			}

			name := args[0]
			res := flags.result("name", q)
			res.Input = name
			res.Rewritten = rw.ParameterName(q, &name)
			res.Output = name
			return finish(a, res, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func newOptionCmd(a *app) *cobra.Command {
	var (
		flags lookupFlags
		param string
	)

	cmd := &cobra.Command{
		Use:   "option --param <param> <option>",
		Short: "Rewrite a legacy choice option",
		Args:  cobra.ExactArgs(1),
		Example: `  knobcompat option --param outputChannels --host 2.0.0 RGBA
  knobcompat option --plugin net.sf.openfx.ShufflePlugin --plugin-version 2.0 --param outputR A.r`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rw, err := a.rewriter()
			if err != nil {
				return err
			}
			q, err := flags.query()
			if err != nil {
				return err
			}

			option := args[0]
			res := flags.result("option", q)
			res.Param = param
			res.Input = option
			res.Rewritten = rw.ChoiceOption(q, param, &option)
			res.Output = option
			return finish(a, res, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&param, "param", "", "Name of the choice parameter as stored")
	_ = cmd.MarkFlagRequired("param")
	return cmd
}

func finish(a *app, res *output.RewriteResult, flags lookupFlags) error {
	if err := a.print(res, flags.json); err != nil {
		return err
	}
	if flags.strict && !res.Rewritten {
		return errNoRewrite
	}
	return nil
}
