package output

import (
	"encoding/json"
)

// RewriteResult implements Formatter for a single name or option lookup.
type RewriteResult struct {
	Kind          string `json:"kind"`
	Plugin        string `json:"plugin"`
	PluginVersion string `json:"plugin_version"`
	Host          string `json:"host"`
	Param         string `json:"param,omitempty"`
	Input         string `json:"input"`
	Output        string `json:"output"`
	Rewritten     bool   `json:"rewritten"`
}

// FormatText prints the resulting value alone so it can be used in scripts.
func (r *RewriteResult) FormatText() string {
	return r.Output
}

// FormatJSON returns the lookup and its outcome.
func (r *RewriteResult) FormatJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
