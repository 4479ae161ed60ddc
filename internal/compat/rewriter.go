// Package compat rewrites legacy parameter names and choice options stored by
// older host releases or older plugin versions into their current form.
package compat

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Rewriter evaluates the name and option tables. It owns private copies of
// its tables, so it is immutable and safe for concurrent use.
type Rewriter struct {
	names   Table
	options Table
	log     zerolog.Logger
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithLogger makes the rewriter log every applied filter at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Rewriter) { r.log = l }
}

// NewRewriter validates both tables and returns a rewriter over copies of
// them. Later changes to the caller's tables do not affect the rewriter.
func NewRewriter(names, options Table, opts ...Option) (*Rewriter, error) {
	if names.Kind != KindName {
		return nil, fmt.Errorf("name table has kind %q", names.Kind)
	}
	if options.Kind != KindOption {
		return nil, fmt.Errorf("option table has kind %q", options.Kind)
	}
	if err := names.Validate(); err != nil {
		return nil, fmt.Errorf("invalid name table: %w", err)
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid option table: %w", err)
	}

	r := &Rewriter{names: names.Clone(), options: options.Clone(), log: zerolog.Nop()}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Names returns a copy of the parameter-name table.
func (r *Rewriter) Names() Table { return r.names.Clone() }

// Options returns a copy of the choice-option table.
func (r *Rewriter) Options() Table { return r.options.Clone() }

// ParameterName replaces *name with the first applicable filter's
// replacement. It reports whether a replacement happened.
func (r *Rewriter) ParameterName(q Query, name *string) bool {
	for i := range r.names.Filters {
		f := &r.names.Filters[i]
		if !f.Matches(*name, q) {
			continue
		}
		mustHaveReplacement(KindName, i, f)
		r.log.Debug().
			Str("table", string(KindName)).
			Int("index", i).
			Str("plugin", q.PluginID).
			Str("from", *name).
			Str("replacement", f.Replacement).
			Msg("parameter name rewritten")
		*name = f.Replacement
		return true
	}
	return false
}

// ChoiceOption replaces *option when a filter matches param and one of its
// option matchers accepts *option. Filters whose parameter matches but whose
// options do not are skipped and scanning continues.
func (r *Rewriter) ChoiceOption(q Query, param string, option *string) bool {
	for i := range r.options.Filters {
		f := &r.options.Filters[i]
		if !f.Matches(param, q) || !f.MatchOption(*option) {
			continue
		}
		mustHaveReplacement(KindOption, i, f)
		r.log.Debug().
			Str("table", string(KindOption)).
			Int("index", i).
			Str("plugin", q.PluginID).
			Str("param", param).
			Str("from", *option).
			Str("replacement", f.Replacement).
			Msg("choice option rewritten")
		*option = f.Replacement
		return true
	}
	return false
}

// mustHaveReplacement panics on a filter without replacement. Validated
// tables never contain one.
func mustHaveReplacement(kind Kind, i int, f *Filter) {
	if f.Replacement == "" {
		panic(fmt.Sprintf("compat: %s[%d] has an empty replacement", kind, i))
	}
}
