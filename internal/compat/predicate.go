package compat

import (
	"fmt"
	"strings"
)

// Predicate selects how a subject string is compared to a rule pattern.
type Predicate int

const (
	Prefix    Predicate = iota // subject starts with pattern
	Suffix                     // subject ends with pattern
	Exact                      // byte-for-byte equality
	ExactFold                  // equality ignoring ASCII case
)

// predicateOperators maps each predicate to its rule-language operator.
var predicateOperators = map[Predicate]string{
	Prefix:    "^=",
	Suffix:    "$=",
	Exact:     "==",
	ExactFold: "~=",
}

// Match reports whether subject satisfies the predicate against pattern.
// Unknown predicates never match.
func (p Predicate) Match(subject, pattern string) bool {
	switch p {
	case Prefix:
		return strings.HasPrefix(subject, pattern)
	case Suffix:
		return strings.HasSuffix(subject, pattern)
	case Exact:
		return subject == pattern
	case ExactFold:
		return equalFoldASCII(subject, pattern)
	default:
		return false
	}
}

// Valid reports whether p is one of the four known predicates.
func (p Predicate) Valid() bool {
	_, ok := predicateOperators[p]
	return ok
}

// String returns the rule-language operator for p.
func (p Predicate) String() string {
	if op, ok := predicateOperators[p]; ok {
		return op
	}
	return fmt.Sprintf("Predicate(%d)", int(p))
}

// ParsePredicate returns the predicate spelled by op.
func ParsePredicate(op string) (Predicate, error) {
	for p, s := range predicateOperators {
		if s == op {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown match operator %q", op)
}

// equalFoldASCII compares a and b folding only ASCII letters, so the result does
// not depend on Unicode case tables.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
