package output

import (
	"encoding/json"
	"fmt"

	"github.com/ivoronin/knobcompat/internal/knobs"
)

// MigrationReport implements Formatter for parameter set migrations.
type MigrationReport struct {
	File   string
	Report knobs.Report
}

// FormatText returns a table of changes, or a one-line summary when nothing
// changed.
// Header: KIND, PARAM, FROM, TO
func (m *MigrationReport) FormatText() string {
	if !m.Report.Changed() {
		return fmt.Sprintf("%s: no changes (%d params)", m.File, m.Report.Params)
	}

	tw := NewTableWriter()
	tw.Header("KIND", "PARAM", "FROM", "TO")
	for _, c := range m.Report.Changes {
		tw.Row(string(c.Kind), c.Param, orDash(c.From), c.To)
	}
	return tw.String()
}

// FormatJSON returns the report with the file it was produced from.
func (m *MigrationReport) FormatJSON() ([]byte, error) {
	return json.MarshalIndent(jsonMigration{File: m.File, Report: m.Report}, "", "  ")
}

type jsonMigration struct {
	File string `json:"file"`
	knobs.Report
}
