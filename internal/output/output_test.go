package output

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ivoronin/knobcompat/internal/compat"
	"github.com/ivoronin/knobcompat/internal/knobs"
)

func testTable() compat.Table {
	return compat.Table{Kind: compat.KindOption, Filters: []compat.Filter{
		{
			Replacement: "NatronColorPlane.R",
			Host:        compat.Range{Min: compat.Unbounded, Max: compat.Bound{Major: 2, Minor: 2, Revision: 99}},
			Names: []compat.NameMatch{
				{Matcher: compat.Matcher{Pattern: "maskChannel", Predicate: compat.Prefix}},
				{Matcher: compat.Matcher{Pattern: "outputR", Predicate: compat.Exact}, Plugins: []compat.PluginMatch{{
					Matcher:  compat.Matcher{Pattern: "net.sf.openfx.ShufflePlugin", Predicate: compat.ExactFold},
					Versions: compat.Range{Min: compat.Bound{Major: 2, Minor: compat.Any, Revision: compat.Any}, Max: compat.Unbounded},
				}}},
			},
			Options: []compat.Matcher{{Pattern: "RGBA.R", Predicate: compat.ExactFold}, {Pattern: "red", Predicate: compat.ExactFold}},
		},
		{
			Replacement: "8u",
			Host:        compat.AnyRange,
			Names:       []compat.NameMatch{{Matcher: compat.Matcher{Pattern: "bitDepth", Predicate: compat.Exact}}},
			Options:     []compat.Matcher{{Pattern: "8i", Predicate: compat.ExactFold}},
		},
	}}
}

func TestRuleEntries(t *testing.T) {
	all := RuleEntries(testTable(), nil)
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}

	e := all[0]
	if e.Table != "options" || e.Index != 0 || e.Replacement != "NatronColorPlane.R" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Host != "<=2.2.99" {
		t.Errorf("host = %q, want <=2.2.99", e.Host)
	}
	wantParam := "== outputR (~= net.sf.openfx.ShufflePlugin >=2)"
	if len(e.Params) != 2 || e.Params[1] != wantParam {
		t.Errorf("params = %q, want second %q", e.Params, wantParam)
	}
	if len(e.Options) != 2 || e.Options[0] != "~= RGBA.R" {
		t.Errorf("options = %q", e.Options)
	}

	some := RuleEntries(testTable(), []int{1})
	if len(some) != 1 || some[0].Index != 1 || some[0].Host != "*" {
		t.Errorf("selected entries = %+v", some)
	}

	if got := RuleEntries(testTable(), []int{}); len(got) != 0 {
		t.Errorf("empty selection returned %d entries", len(got))
	}
}

func TestRuleList_Format(t *testing.T) {
	list := &RuleList{Entries: RuleEntries(testTable(), nil)}

	text := list.FormatText()
	for _, want := range []string{"TABLE", "INDEX", "REPLACEMENT", "HOST", "PARAMS", "OPTIONS", "NatronColorPlane.R", "^= maskChannel", "~= 8i"} {
		if !strings.Contains(text, want) {
			t.Errorf("text should contain %q, got:\n%s", want, text)
		}
	}

	data, err := list.FormatJSON()
	if err != nil {
		t.Fatal(err)
	}
	var parsed []map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed[1]["replacement"] != "8u" || parsed[1]["table"] != "options" {
		t.Errorf("unexpected JSON entry %v", parsed[1])
	}

	empty := &RuleList{}
	if empty.FormatText() != "" {
		t.Error("empty list should render no text")
	}
	if data, _ := empty.FormatJSON(); string(data) != "[]" {
		t.Errorf("empty list JSON = %s, want []", data)
	}
}

func TestRewriteResult(t *testing.T) {
	r := &RewriteResult{Kind: "option", Plugin: "p", PluginVersion: "unknown", Host: "2.0.0", Param: "outputChannels", Input: "RGBA", Output: "NatronColorPlane", Rewritten: true}

	if got := r.FormatText(); got != "NatronColorPlane" {
		t.Errorf("FormatText() = %q", got)
	}

	out, err := FormatOutput(r, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"rewritten": true`, `"plugin_version": "unknown"`, `"param": "outputChannels"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON should contain %s, got:\n%s", want, out)
		}
	}

	name := &RewriteResult{Kind: "name", Input: "x", Output: "x"}
	out, _ = FormatOutput(name, FormatJSON)
	if strings.Contains(out, `"param"`) {
		t.Errorf("name lookups should omit param, got:\n%s", out)
	}
}

func TestMigrationReport(t *testing.T) {
	m := &MigrationReport{File: "shuffle.yaml", Report: knobs.Report{
		Plugin: "net.sf.openfx.ShufflePlugin",
		Host:   "2.1.0",
		Params: 3,
		Changes: []knobs.Change{
			{Kind: knobs.ChangeOption, Param: "outputR", From: "A.r", To: "A.NatronColorPlane.R"},
			{Kind: knobs.ChangeName, Param: "r", From: "r", To: "NatronOfxParamProcessR"},
		},
	}}

	text := m.FormatText()
	for _, want := range []string{"KIND", "PARAM", "option", "A.NatronColorPlane.R", "NatronOfxParamProcessR"} {
		if !strings.Contains(text, want) {
			t.Errorf("text should contain %q, got:\n%s", want, text)
		}
	}

	data, err := m.FormatJSON()
	if err != nil {
		t.Fatal(err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed["file"] != "shuffle.yaml" || parsed["plugin"] != "net.sf.openfx.ShufflePlugin" {
		t.Errorf("unexpected JSON %v", parsed)
	}
	if changes, ok := parsed["changes"].([]interface{}); !ok || len(changes) != 2 {
		t.Errorf("changes = %v", parsed["changes"])
	}

	none := &MigrationReport{File: "x.yaml", Report: knobs.Report{Params: 4}}
	if got := none.FormatText(); got != "x.yaml: no changes (4 params)" {
		t.Errorf("FormatText() = %q", got)
	}
}

func TestCheckResult(t *testing.T) {
	ok := NewCheckResult("rules.yaml", 4, 20, nil)
	text := ok.FormatText()
	if !strings.Contains(text, "PASS") || !strings.Contains(text, "20") {
		t.Errorf("unexpected text:\n%s", text)
	}

	bad := NewCheckResult("rules.yaml", 0, 0, errors.Join(
		errors.New("names[0]: empty replacement"),
		errors.New("names[2]: params[0]: empty pattern"),
	))
	if bad.Valid || len(bad.Errors) != 2 {
		t.Fatalf("unexpected result %+v", bad)
	}
	text = bad.FormatText()
	if !strings.Contains(text, "FAIL") || !strings.Contains(text, "  names[2]: params[0]: empty pattern") {
		t.Errorf("unexpected text:\n%s", text)
	}

	out, err := FormatOutput(bad, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"valid": false`) || !strings.Contains(out, `"errors"`) {
		t.Errorf("unexpected JSON:\n%s", out)
	}
}

func TestFormatFor(t *testing.T) {
	if FormatFor(true) != FormatJSON || FormatFor(false) != FormatText {
		t.Error("FormatFor mapped flags incorrectly")
	}
}
