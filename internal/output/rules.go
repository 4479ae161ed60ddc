package output

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ivoronin/knobcompat/internal/compat"
)

// RuleEntry is one filter of a rule table.
type RuleEntry struct {
	Table       string   `json:"table"`
	Index       int      `json:"index"`
	Replacement string   `json:"replacement"`
	Host        string   `json:"host"`
	Params      []string `json:"params"`
	Options     []string `json:"options,omitempty"`
}

// RuleList implements Formatter for rule table listings. Entries keep table
// order, which is also evaluation order.
type RuleList struct {
	Entries []RuleEntry
}

// RuleEntries converts the filters of t at the given indexes. A nil indexes
// slice selects every filter.
func RuleEntries(t compat.Table, indexes []int) []RuleEntry {
	if indexes == nil {
		indexes = make([]int, t.Len())
		for i := range indexes {
			indexes[i] = i
		}
	}

	entries := make([]RuleEntry, 0, len(indexes))
	for _, i := range indexes {
		f := t.Filters[i]
		e := RuleEntry{
			Table:       string(t.Kind),
			Index:       i,
			Replacement: f.Replacement,
			Host:        f.Host.String(),
			Params:      make([]string, 0, len(f.Names)),
		}
		for _, nm := range f.Names {
			e.Params = append(e.Params, formatNameMatch(nm))
		}
		for _, m := range f.Options {
			e.Options = append(e.Options, m.String())
		}
		entries = append(entries, e)
	}
	return entries
}

// formatNameMatch renders "== outputR (~= net.sf.openfx.ShufflePlugin >=2)".
func formatNameMatch(nm compat.NameMatch) string {
	if len(nm.Plugins) == 0 {
		return nm.Matcher.String()
	}
	plugins := make([]string, len(nm.Plugins))
	for i, p := range nm.Plugins {
		plugins[i] = p.String()
	}
	return nm.Matcher.String() + " (" + strings.Join(plugins, " | ") + ")"
}

// FormatText returns one row per filter.
// Header: TABLE, INDEX, REPLACEMENT, HOST, PARAMS, OPTIONS
func (l *RuleList) FormatText() string {
	if len(l.Entries) == 0 {
		return ""
	}

	tw := NewTableWriter()
	tw.Header("TABLE", "INDEX", "REPLACEMENT", "HOST", "PARAMS", "OPTIONS")
	for _, e := range l.Entries {
		tw.Row(e.Table, strconv.Itoa(e.Index), e.Replacement, e.Host,
			orDash(strings.Join(e.Params, ", ")), orDash(strings.Join(e.Options, ", ")))
	}
	return tw.String()
}

// FormatJSON returns a JSON array of entries.
func (l *RuleList) FormatJSON() ([]byte, error) {
	if len(l.Entries) == 0 {
		return []byte("[]"), nil
	}
	return json.MarshalIndent(l.Entries, "", "  ")
}
