package output

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CheckResult implements Formatter for rule file checks.
type CheckResult struct {
	File    string   `json:"file"`
	Valid   bool     `json:"valid"`
	Names   int      `json:"names"`
	Options int      `json:"options"`
	Errors  []string `json:"errors,omitempty"`
}

// NewCheckResult builds a result from the outcome of loading file. err may
// hold several joined validation errors; each becomes its own entry.
func NewCheckResult(file string, names, options int, err error) *CheckResult {
	c := &CheckResult{File: file, Valid: err == nil, Names: names, Options: options}
	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				c.Errors = append(c.Errors, line)
			}
		}
	}
	return c
}

// FormatText returns a one-row table followed by any errors.
// Header: FILE, NAMES, OPTIONS, STATUS
func (c *CheckResult) FormatText() string {
	status := "PASS"
	names, options := strconv.Itoa(c.Names), strconv.Itoa(c.Options)
	if !c.Valid {
		status = "FAIL"
		names, options = "-", "-"
	}

	tw := NewTableWriter()
	tw.Header("FILE", "NAMES", "OPTIONS", "STATUS")
	tw.Row(c.File, names, options, status)

	out := tw.String()
	for _, e := range c.Errors {
		out += "\n  " + e
	}
	return out
}

// FormatJSON returns the result as a JSON object.
func (c *CheckResult) FormatJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
