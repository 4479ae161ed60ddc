package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivoronin/knobcompat/internal/compat"
)

// ruleFile is the YAML document holding both tables.
type ruleFile struct {
	Names   []ruleEntry `yaml:"names"`
	Options []ruleEntry `yaml:"options"`
}

// ruleEntry is one filter. Options is only allowed in the options table.
type ruleEntry struct {
	Replace string       `yaml:"replace"`
	Host    string       `yaml:"host,omitempty"`
	Params  []paramEntry `yaml:"params,omitempty"`
	Options []string     `yaml:"options,omitempty"`
}

// paramEntry matches a parameter name, optionally scoped to plugins.
type paramEntry struct {
	Match   string   `yaml:"match"`
	Plugins []string `yaml:"plugins,omitempty"`
}

// Parse decodes a rules document into its name and option tables. Entry
// order in the document is preserved. The tables are not validated; use Load
// to obtain a validated rewriter.
func Parse(r io.Reader) (names, options compat.Table, err error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc ruleFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return compat.Table{}, compat.Table{}, fmt.Errorf("empty rules document")
		}
		return compat.Table{}, compat.Table{}, fmt.Errorf("decode rules: %w", err)
	}

	names, err = convertTable(compat.KindName, doc.Names)
	if err != nil {
		return compat.Table{}, compat.Table{}, err
	}
	options, err = convertTable(compat.KindOption, doc.Options)
	if err != nil {
		return compat.Table{}, compat.Table{}, err
	}
	return names, options, nil
}

// Load parses and validates a rules document.
func Load(r io.Reader, opts ...compat.Option) (*compat.Rewriter, error) {
	names, options, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return compat.NewRewriter(names, options, opts...)
}

// LoadFile loads a rules document from path.
func LoadFile(path string, opts ...compat.Option) (*compat.Rewriter, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is user-supplied by design
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %q: %w", path, err)
	}
	rw, err := Load(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("rules file %q: %w", path, err)
	}
	return rw, nil
}

func convertTable(kind compat.Kind, entries []ruleEntry) (compat.Table, error) {
	t := compat.Table{Kind: kind, Filters: make([]compat.Filter, 0, len(entries))}
	for i, e := range entries {
		f, err := convertEntry(e)
		if err != nil {
			return compat.Table{}, fmt.Errorf("%s[%d]: %w", kind, i, err)
		}
		t.Filters = append(t.Filters, f)
	}
	return t, nil
}

// convertEntry converts one YAML entry into a Filter.
func convertEntry(e ruleEntry) (compat.Filter, error) {
	host, err := ParseRange(e.Host)
	if err != nil {
		return compat.Filter{}, fmt.Errorf("host: %w", err)
	}

	f := compat.Filter{Replacement: e.Replace, Host: host}

	for j, p := range e.Params {
		m, err := ParseMatcher(p.Match)
		if err != nil {
			return compat.Filter{}, fmt.Errorf("params[%d]: %w", j, err)
		}
		nm := compat.NameMatch{Matcher: m}
		for k, expr := range p.Plugins {
			pm, err := ParsePluginMatch(expr)
			if err != nil {
				return compat.Filter{}, fmt.Errorf("params[%d].plugins[%d]: %w", j, k, err)
			}
			nm.Plugins = append(nm.Plugins, pm)
		}
		f.Names = append(f.Names, nm)
	}

	for j, expr := range e.Options {
		m, err := ParseMatcher(expr)
		if err != nil {
			return compat.Filter{}, fmt.Errorf("options[%d]: %w", j, err)
		}
		f.Options = append(f.Options, m)
	}
	return f, nil
}
