package compat

import (
	"fmt"
	"strings"
)

// Matcher pairs a pattern with the predicate used to compare against it.
type Matcher struct {
	Pattern   string
	Predicate Predicate
}

// Match applies the predicate to subject.
func (m Matcher) Match(subject string) bool {
	return m.Predicate.Match(subject, m.Pattern)
}

func (m Matcher) String() string {
	if m.Pattern == "" || strings.ContainsAny(m.Pattern, " \t\"") || strings.ContainsAny(m.Pattern[:1], "<>=^$~") {
		return fmt.Sprintf("%s %q", m.Predicate, m.Pattern)
	}
	return m.Predicate.String() + " " + m.Pattern
}

// PluginMatch restricts a NameMatch to plugins whose identifier matches and
// whose version lies in Versions. Plugin bounds only use major and minor.
type PluginMatch struct {
	Matcher
	Versions Range
}

func (p PluginMatch) String() string {
	if p.Versions.Min.IsUnbounded() && p.Versions.Max.IsUnbounded() {
		return p.Matcher.String()
	}
	return p.Matcher.String() + " " + p.Versions.String()
}

// NameMatch matches a parameter name, optionally only for some plugins.
// An empty Plugins list applies to every plugin.
type NameMatch struct {
	Matcher
	Plugins []PluginMatch
}

// Query carries the lookup context for one rewrite call.
type Query struct {
	PluginID string
	Plugin   Version
	Host     Version
}

// NewQuery builds a Query from the raw integers used by project loaders,
// where -1 means the field is not known.
func NewQuery(pluginID string, pluginMajor, pluginMinor, hostMajor, hostMinor, hostRevision int) Query {
	return Query{
		PluginID: pluginID,
		Plugin:   Version{Major: pluginMajor, Minor: pluginMinor, Revision: Unknown},
		Host:     Version{Major: hostMajor, Minor: hostMinor, Revision: hostRevision},
	}
}

// Filter is one rewrite rule. The first NameMatch that applies selects the
// filter; option filters additionally require one of Options to match.
type Filter struct {
	Replacement string
	Names       []NameMatch
	Options     []Matcher
	Host        Range
}

// Matches reports whether the filter applies to name under q.
//
// A plugin identifier that matches while the plugin version falls outside
// the declared range rejects the whole filter; later name rules are not tried.
func (f *Filter) Matches(name string, q Query) bool {
	if !f.Host.Contains(q.Host) {
		return false
	}
	if len(f.Names) == 0 {
		return true
	}
	for _, nm := range f.Names {
		if len(nm.Plugins) > 0 {
			pm, ok := firstPlugin(nm.Plugins, q.PluginID)
			if !ok {
				continue
			}
			if !pm.Versions.Contains(q.Plugin) {
				return false
			}
		}
		if nm.Match(name) {
			return true
		}
	}
	return false
}

// MatchOption returns whether any option matcher accepts option.
func (f *Filter) MatchOption(option string) bool {
	for _, m := range f.Options {
		if m.Match(option) {
			return true
		}
	}
	return false
}

func firstPlugin(plugins []PluginMatch, pluginID string) (PluginMatch, bool) {
	for _, p := range plugins {
		if p.Match(pluginID) {
			return p, true
		}
	}
	return PluginMatch{}, false
}
