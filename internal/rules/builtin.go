// Package rules loads compatibility rule tables from their YAML form and
// provides the built-in tables shipped with the tool.
package rules

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/ivoronin/knobcompat/internal/compat"
)

//go:embed data/builtin.yaml
var builtinData []byte

// builtin is built once from the embedded rules and never modified.
var builtin *compat.Rewriter

func init() {
	rw, err := LoadBuiltin()
	if err != nil {
		panic(fmt.Sprintf("failed to load built-in rules: %v", err))
	}
	builtin = rw
}

// Builtin returns the rewriter over the embedded rule tables.
func Builtin() *compat.Rewriter {
	return builtin
}

// LoadBuiltin parses the embedded rules again, applying opts to the new
// rewriter. Use it to get a built-in rewriter with a logger attached.
func LoadBuiltin(opts ...compat.Option) (*compat.Rewriter, error) {
	return Load(bytes.NewReader(builtinData), opts...)
}

// BuiltinSource returns a copy of the embedded rules document.
func BuiltinSource() []byte {
	return bytes.Clone(builtinData)
}

// RewriteParameterName rewrites name with the built-in tables. Version
// arguments of -1 are treated as unknown.
func RewriteParameterName(pluginID string, pluginMajor, pluginMinor, hostMajor, hostMinor, hostRevision int, name *string) bool {
	q := compat.NewQuery(pluginID, pluginMajor, pluginMinor, hostMajor, hostMinor, hostRevision)
	return builtin.ParameterName(q, name)
}

// RewriteChoiceOption rewrites option of parameter paramName with the
// built-in tables. Version arguments of -1 are treated as unknown.
func RewriteChoiceOption(pluginID string, pluginMajor, pluginMinor, hostMajor, hostMinor, hostRevision int, paramName string, option *string) bool {
	q := compat.NewQuery(pluginID, pluginMajor, pluginMinor, hostMajor, hostMinor, hostRevision)
	return builtin.ChoiceOption(q, paramName, option)
}
