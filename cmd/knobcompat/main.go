package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ivoronin/knobcompat/internal/compat"
	"github.com/ivoronin/knobcompat/internal/logging"
	"github.com/ivoronin/knobcompat/internal/output"
	"github.com/ivoronin/knobcompat/internal/rules"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Exit codes.
const (
	ExitSuccess    = 0
	ExitNoRewrite  = 1
	ExitInputError = 2
)

// errNoRewrite is returned under --strict when nothing was rewritten. The
// result has already been printed, so it is not reported as an error.
var errNoRewrite = errors.New("nothing rewritten")

// app holds state shared by all subcommands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	rulesFile string
	logLevel  string
	logFormat string

	log zerolog.Logger
	rw  *compat.Rewriter
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "knobcompat",
		Short: "Rewrite legacy plugin parameter names and choice options",
		Long: `Translate parameter names and choice values saved by older host releases
or plugin versions into the identifiers current code expects.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.rulesFile, "rules", "", "Rules file to use instead of the built-in rules")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", logging.DefaultLevel, "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", string(logging.FormatConsole), "Log format (console, json)")

	root.AddCommand(newNameCmd(a))
	root.AddCommand(newOptionCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newMigrateCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}

func (a *app) setupLogging() error {
	log, err := logging.New(a.stderr, a.logLevel, logging.Format(a.logFormat))
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// rewriter loads the rules on first use: the --rules file if given,
// otherwise the built-in rules.
func (a *app) rewriter() (*compat.Rewriter, error) {
	if a.rw != nil {
		return a.rw, nil
	}

	var (
		rw  *compat.Rewriter
		err error
	)
	source := "builtin"
	if a.rulesFile != "" {
		source = a.rulesFile
		rw, err = rules.LoadFile(a.rulesFile, compat.WithLogger(a.log))
	} else {
		rw, err = rules.LoadBuiltin(compat.WithLogger(a.log))
	}
	if err != nil {
		return nil, err
	}

	a.log.Debug().
		Str("source", source).
		Int("names", rw.Names().Len()).
		Int("options", rw.Options().Len()).
		Msg("rules loaded")
	a.rw = rw
	return rw, nil
}

// print writes f to stdout in the requested format.
func (a *app) print(f output.Formatter, jsonOutput bool) error {
	result, err := output.FormatOutput(f, output.FormatFor(jsonOutput))
	if err != nil {
		return err
	}
	if result == "" {
		return nil
	}
	_, err = fmt.Fprintln(a.stdout, result)
	return err
}

func execute(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, log: zerolog.Nop()}
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errNoRewrite):
		return ExitNoRewrite
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInputError
	}
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
