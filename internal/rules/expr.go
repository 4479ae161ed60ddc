package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ivoronin/knobcompat/internal/compat"
)

// AST types for Participle grammar

// matchExpr is a single match: operator, literal, optional version bounds.
type matchExpr struct {
	Operator string       `parser:"@Operator"`
	Pattern  string       `parser:"( @String | @Word )"`
	Bounds   []*boundExpr `parser:"@@*"`
}

// rangeExpr is a space-separated list of version bounds.
type rangeExpr struct {
	Bounds []*boundExpr `parser:"@@+"`
}

// boundExpr is ">=V" or "<=V".
type boundExpr struct {
	Operator string `parser:"@Operator"`
	Version  string `parser:"@Word"`
}

// Words may not start with an operator character, so "<=2" always lexes as
// an operator followed by a version.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Operator", Pattern: `\^=|\$=|==|~=|>=|<=`},
	{Name: "Word", Pattern: `[^\s"<>=^$~][^\s"]*`},
})

var (
	matchParser = participle.MustBuild[matchExpr](
		participle.Lexer(exprLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace"),
	)
	rangeParser = participle.MustBuild[rangeExpr](
		participle.Lexer(exprLexer),
		participle.Elide("Whitespace"),
	)
)

// boundRe matches 1 to 3 dot-separated non-negative integers.
var boundRe = regexp.MustCompile(`^\d+(\.\d+){0,2}$`)

const (
	opMin = ">="
	opMax = "<="
)

// ParseMatcher parses a match without version bounds, e.g. "== outputChannels".
func ParseMatcher(expr string) (compat.Matcher, error) {
	ast, err := parseMatchExpr(expr)
	if err != nil {
		return compat.Matcher{}, err
	}
	if len(ast.Bounds) > 0 {
		return compat.Matcher{}, fmt.Errorf("invalid match %q: version bounds are only allowed on plugins", expr)
	}
	return convertMatcher(ast)
}

// ParsePluginMatch parses a plugin match with optional major.minor bounds,
// e.g. "== net.sf.openfx.ShufflePlugin >=2".
func ParsePluginMatch(expr string) (compat.PluginMatch, error) {
	ast, err := parseMatchExpr(expr)
	if err != nil {
		return compat.PluginMatch{}, err
	}
	m, err := convertMatcher(ast)
	if err != nil {
		return compat.PluginMatch{}, err
	}
	r, err := convertBounds(ast.Bounds, 2)
	if err != nil {
		return compat.PluginMatch{}, fmt.Errorf("invalid plugin match %q: %w", expr, err)
	}
	return compat.PluginMatch{Matcher: m, Versions: r}, nil
}

// ParseRange parses host version bounds like "<=2.2.99" or ">=2 <=2.2.99".
// An empty expression is unbounded.
func ParseRange(expr string) (compat.Range, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return compat.AnyRange, nil
	}
	ast, err := rangeParser.ParseString("", expr)
	if err != nil {
		return compat.Range{}, fmt.Errorf("invalid range %q: %w", expr, err)
	}
	r, err := convertBounds(ast.Bounds, 3)
	if err != nil {
		return compat.Range{}, fmt.Errorf("invalid range %q: %w", expr, err)
	}
	return r, nil
}

func parseMatchExpr(expr string) (*matchExpr, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty match expression")
	}
	ast, err := matchParser.ParseString("", expr)
	if err != nil {
		return nil, fmt.Errorf("invalid match %q: %w", expr, err)
	}
	return ast, nil
}

// convertMatcher converts AST match to domain Matcher
func convertMatcher(ast *matchExpr) (compat.Matcher, error) {
	p, err := compat.ParsePredicate(ast.Operator)
	if err != nil {
		return compat.Matcher{}, err
	}
	if ast.Pattern == "" {
		return compat.Matcher{}, fmt.Errorf("empty pattern after %s", ast.Operator)
	}
	return compat.Matcher{Pattern: ast.Pattern, Predicate: p}, nil
}

// convertBounds folds bound expressions into a Range. Each side may appear once.
func convertBounds(bounds []*boundExpr, maxFields int) (compat.Range, error) {
	r := compat.AnyRange
	var seenMin, seenMax bool
	for _, b := range bounds {
		v, err := parseBound(b.Version, maxFields)
		if err != nil {
			return compat.Range{}, err
		}
		switch b.Operator {
		case opMin:
			if seenMin {
				return compat.Range{}, fmt.Errorf("duplicate %s bound", opMin)
			}
			seenMin = true
			r.Min = v
		case opMax:
			if seenMax {
				return compat.Range{}, fmt.Errorf("duplicate %s bound", opMax)
			}
			seenMax = true
			r.Max = v
		default:
			return compat.Range{}, fmt.Errorf("operator %q is not a version bound", b.Operator)
		}
	}
	return r, nil
}

// parseBound converts "2", "2.2" or "2.2.99" into a Bound; missing fields are Any.
func parseBound(s string, maxFields int) (compat.Bound, error) {
	if !boundRe.MatchString(s) {
		return compat.Bound{}, fmt.Errorf("invalid version %q", s)
	}
	parts := strings.Split(s, ".")
	if len(parts) > maxFields {
		return compat.Bound{}, fmt.Errorf("version %q has more than %d fields", s, maxFields)
	}
	fields := [3]int{compat.Any, compat.Any, compat.Any}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return compat.Bound{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
		fields[i] = n
	}
	return compat.Bound{Major: fields[0], Minor: fields[1], Revision: fields[2]}, nil
}
