package compat

import (
	"errors"
	"fmt"
)

// Kind distinguishes parameter-name tables from choice-option tables.
type Kind string

const (
	KindName   Kind = "names"
	KindOption Kind = "options"
)

// Table is an ordered list of filters. Order is significant: lookups stop at
// the first filter that applies.
type Table struct {
	Kind    Kind
	Filters []Filter
}

// Len returns the number of filters.
func (t Table) Len() int { return len(t.Filters) }

// Clone returns a deep copy of t sharing no slices with it.
func (t Table) Clone() Table {
	c := Table{Kind: t.Kind}
	if t.Filters == nil {
		return c
	}
	c.Filters = make([]Filter, len(t.Filters))
	for i, f := range t.Filters {
		c.Filters[i] = f.clone()
	}
	return c
}

func (f Filter) clone() Filter {
	f.Options = append([]Matcher(nil), f.Options...)
	if f.Names != nil {
		names := make([]NameMatch, len(f.Names))
		for i, nm := range f.Names {
			nm.Plugins = append([]PluginMatch(nil), nm.Plugins...)
			names[i] = nm
		}
		f.Names = names
	}
	return f
}

// Active returns the indexes of filters whose host range admits host. The
// result is never nil.
func (t Table) Active(host Version) []int {
	idx := []int{}
	for i := range t.Filters {
		if t.Filters[i].Host.Contains(host) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Validate checks every filter and returns all problems found.
func (t Table) Validate() error {
	if t.Kind != KindName && t.Kind != KindOption {
		return fmt.Errorf("unknown table kind %q", t.Kind)
	}
	var errs []error
	for i := range t.Filters {
		for _, err := range t.validateFilter(&t.Filters[i]) {
			if err != nil {
				errs = append(errs, fmt.Errorf("%s[%d]: %w", t.Kind, i, err))
			}
		}
	}
	return errors.Join(errs...)
}

// validateFilter returns the problems of one filter; nil entries are ignored.
func (t Table) validateFilter(f *Filter) []error {
	var errs []error
	if f.Replacement == "" {
		errs = append(errs, errors.New("empty replacement"))
	}
	switch t.Kind {
	case KindName:
		if len(f.Options) > 0 {
			errs = append(errs, errors.New("name filter declares options"))
		}
	case KindOption:
		if len(f.Options) == 0 {
			errs = append(errs, errors.New("option filter declares no options"))
		}
	}
	errs = append(errs, validateRange("host", f.Host))
	for j, nm := range f.Names {
		errs = append(errs, validateMatcher(fmt.Sprintf("params[%d]", j), nm.Matcher))
		for k, pm := range nm.Plugins {
			where := fmt.Sprintf("params[%d].plugins[%d]", j, k)
			errs = append(errs, validateMatcher(where, pm.Matcher))
			errs = append(errs, validateRange(where, pm.Versions))
			if pm.Versions.Min.Revision != Any || pm.Versions.Max.Revision != Any {
				errs = append(errs, fmt.Errorf("%s: plugin versions carry no revision", where))
			}
		}
	}
	for j, m := range f.Options {
		errs = append(errs, validateMatcher(fmt.Sprintf("options[%d]", j), m))
	}
	return errs
}

func validateMatcher(where string, m Matcher) error {
	if !m.Predicate.Valid() {
		return fmt.Errorf("%s: unknown predicate %d", where, int(m.Predicate))
	}
	if m.Pattern == "" {
		return fmt.Errorf("%s: empty pattern", where)
	}
	return nil
}

func validateRange(where string, r Range) error {
	if err := r.Min.Validate(); err != nil {
		return fmt.Errorf("%s min: %w", where, err)
	}
	if err := r.Max.Validate(); err != nil {
		return fmt.Errorf("%s max: %w", where, err)
	}
	return nil
}
