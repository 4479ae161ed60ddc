// Package knobs migrates a stored plugin parameter set so that it loads in
// the current host: parameter names and choice values written by older host
// releases or plugin versions are rewritten to their current form.
package knobs

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ivoronin/knobcompat/internal/compat"
	"github.com/ivoronin/knobcompat/internal/version"
)

// Param is one stored parameter. Value is kept verbatim; only choice values
// are subject to option rewriting.
type Param struct {
	Name   string `yaml:"name" json:"name"`
	Value  string `yaml:"value,omitempty" json:"value,omitempty"`
	Choice bool   `yaml:"choice,omitempty" json:"choice,omitempty"`
}

// State is the parameter set of one plugin instance as saved in a project.
type State struct {
	Plugin        string  `yaml:"plugin" json:"plugin"`
	PluginVersion string  `yaml:"pluginVersion,omitempty" json:"pluginVersion,omitempty"`
	Host          string  `yaml:"host,omitempty" json:"host,omitempty"`
	Params        []Param `yaml:"params" json:"params"`
}

// Decode reads a parameter set in YAML or JSON form.
func Decode(r io.Reader) (*State, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s State
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty parameter set")
		}
		return nil, fmt.Errorf("decode parameter set: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode writes s as YAML.
func Encode(w io.Writer, s *State) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode parameter set: %w", err)
	}
	return enc.Close()
}

// Validate checks that the plugin and every parameter are named and that the
// version strings parse.
func (s *State) Validate() error {
	if s.Plugin == "" {
		return errors.New("parameter set has no plugin")
	}
	for i, p := range s.Params {
		if p.Name == "" {
			return fmt.Errorf("params[%d]: empty name", i)
		}
	}
	_, err := s.Query()
	return err
}

// Query builds the lookup query for s. Missing versions are unknown.
func (s *State) Query() (compat.Query, error) {
	pv, err := version.ParsePlugin(s.PluginVersion)
	if err != nil {
		return compat.Query{}, fmt.Errorf("pluginVersion: %w", err)
	}
	hv, err := version.Parse(s.Host)
	if err != nil {
		return compat.Query{}, fmt.Errorf("host: %w", err)
	}
	return compat.Query{PluginID: s.Plugin, Plugin: pv, Host: hv}, nil
}
