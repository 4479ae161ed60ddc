package output

import (
	"bytes"
	"strings"
	"text/tabwriter"
)

// TableWriter writes space-aligned columns with a header row.
type TableWriter struct {
	buf     bytes.Buffer
	w       *tabwriter.Writer
	hasData bool
}

// NewTableWriter returns a writer padding columns with three spaces.
func NewTableWriter() *TableWriter {
	t := &TableWriter{}
	t.w = tabwriter.NewWriter(&t.buf, 0, 0, 3, ' ', 0)
	return t
}

// Header writes the column names.
func (t *TableWriter) Header(columns ...string) {
	t.write(columns)
}

// Row writes one data row.
func (t *TableWriter) Row(values ...string) {
	t.write(values)
}

func (t *TableWriter) write(cells []string) {
	t.hasData = true
	_, _ = t.w.Write([]byte(strings.Join(cells, "\t") + "\n"))
}

// String flushes and returns the table without a trailing newline, or an
// empty string when nothing was written.
func (t *TableWriter) String() string {
	if !t.hasData {
		return ""
	}
	_ = t.w.Flush()
	return strings.TrimSuffix(t.buf.String(), "\n")
}
