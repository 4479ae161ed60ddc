package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivoronin/knobcompat/internal/compat"
)

const sampleRules = `
names:
  - replace: ProcessR
    host: '<=2.2.99'
    params:
      - match: '== r'
        plugins: &bundled ['^= fr.inria.', '^= net.sf.openfx.']
      - match: '== doRed'
        plugins: *bundled
options:
  - replace: ColorPlane
    host: '>=1 <=2.2.99'
    params: &planes
      - match: '== outputChannels'
      - match: '$= channels'
    options: ['~= RGBA', '~= "Color RGBA"']
  - replace: 8u
    params: *planes
    options: ['~= 8i']
`

func TestParseSample(t *testing.T) {
	names, options, err := Parse(strings.NewReader(sampleRules))
	require.NoError(t, err)

	assert.Equal(t, compat.KindName, names.Kind)
	require.Len(t, names.Filters, 1)
	f := names.Filters[0]
	assert.Equal(t, "ProcessR", f.Replacement)
	assert.Equal(t, compat.Range{Min: compat.Unbounded, Max: compat.Bound{Major: 2, Minor: 2, Revision: 99}}, f.Host)
	require.Len(t, f.Names, 2)
	assert.Equal(t, compat.Matcher{Pattern: "doRed", Predicate: compat.Exact}, f.Names[1].Matcher)
	require.Len(t, f.Names[1].Plugins, 2, "aliased plugin list should be expanded")
	assert.Equal(t, "net.sf.openfx.", f.Names[1].Plugins[1].Pattern)
	assert.Equal(t, compat.AnyRange, f.Names[1].Plugins[1].Versions)

	assert.Equal(t, compat.KindOption, options.Kind)
	require.Len(t, options.Filters, 2)
	assert.Equal(t, "ColorPlane", options.Filters[0].Replacement)
	assert.Equal(t, compat.Bound{Major: 1, Minor: compat.Any, Revision: compat.Any}, options.Filters[0].Host.Min)
	assert.Equal(t, []compat.Matcher{
		{Pattern: "RGBA", Predicate: compat.ExactFold},
		{Pattern: "Color RGBA", Predicate: compat.ExactFold},
	}, options.Filters[0].Options)
	assert.Equal(t, compat.AnyRange, options.Filters[1].Host)
	assert.Equal(t, options.Filters[0].Names, options.Filters[1].Names)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty document", "", "empty rules document"},
		{"not yaml", "names: [", "decode rules"},
		{"unknown field", "names:\n  - replace: x\n    hots: '<=1'\n", "hots"},
		{"bad host", "names:\n  - replace: x\n    host: '=>1'\n", "names[0]: host"},
		{"bad param", "names:\n  - replace: x\n    params:\n      - match: 'r'\n", "names[0]: params[0]"},
		{"bad plugin", "names:\n  - replace: x\n    params:\n      - match: '== r'\n        plugins: ['== p >=1.2.3']\n", "names[0]: params[0].plugins[0]"},
		{"bad option", "options:\n  - replace: x\n    options: ['RGBA']\n", "options[0]: options[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadValidates(t *testing.T) {
	_, err := Load(strings.NewReader("names:\n  - params:\n      - match: '== r'\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty replacement")

	_, err = Load(strings.NewReader("options:\n  - replace: x\n    params:\n      - match: '== p'\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "option filter declares no options")

	rw, err := Load(strings.NewReader(sampleRules))
	require.NoError(t, err)
	assert.Equal(t, 1, rw.Names().Len())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRules), 0o600))

	rw, err := LoadFile(path)
	require.NoError(t, err)

	opt := "rgba"
	assert.True(t, rw.ChoiceOption(compat.NewQuery("x", -1, -1, 2, 0, 0), "outputChannels", &opt))
	assert.Equal(t, "ColorPlane", opt)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rules file")
}
