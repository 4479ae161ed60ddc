package compat

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Any marks a bound field that does not constrain the candidate.
	Any = -1
	// Unknown marks a candidate version field that was not supplied.
	Unknown = -1
)

// Version is a candidate host or plugin version. A Major of Unknown disables
// every version check against it.
type Version struct {
	Major, Minor, Revision int
}

// UnknownVersion is the candidate used when no version is available.
var UnknownVersion = Version{Unknown, Unknown, Unknown}

// Known reports whether the version takes part in bound checks.
func (v Version) Known() bool { return v.Major != Unknown }

func (v Version) String() string {
	if !v.Known() {
		return "unknown"
	}
	return joinFields(v.Major, v.Minor, v.Revision)
}

// Bound is an inclusive lower or upper limit on a three-part version.
// Fields set to Any leave the remaining comparison open.
type Bound struct {
	Major, Minor, Revision int
}

// Unbounded is the bound that admits every version.
var Unbounded = Bound{Any, Any, Any}

// IsUnbounded reports whether b constrains nothing.
func (b Bound) IsUnbounded() bool { return b.Major == Any }

// AdmitsAbove reports whether v satisfies b used as a minimum.
func (b Bound) AdmitsAbove(v Version) bool {
	if !v.Known() || b.Major == Any {
		return true
	}
	if v.Major != b.Major || b.Minor == Any {
		return v.Major >= b.Major
	}
	if v.Minor != b.Minor || b.Revision == Any {
		return v.Minor >= b.Minor
	}
	return v.Revision >= b.Revision
}

// AdmitsBelow reports whether v satisfies b used as a maximum.
func (b Bound) AdmitsBelow(v Version) bool {
	if !v.Known() || b.Major == Any {
		return true
	}
	if v.Major != b.Major || b.Minor == Any {
		return v.Major <= b.Major
	}
	if v.Minor != b.Minor || b.Revision == Any {
		return v.Minor <= b.Minor
	}
	return v.Revision <= b.Revision
}

// Validate rejects bounds whose finer fields are set below an open field.
func (b Bound) Validate() error {
	if b.Major < Any || b.Minor < Any || b.Revision < Any {
		return fmt.Errorf("bound %s has a negative field", b)
	}
	if b.Major == Any && (b.Minor != Any || b.Revision != Any) {
		return fmt.Errorf("bound %s sets minor or revision without major", b)
	}
	if b.Minor == Any && b.Revision != Any {
		return fmt.Errorf("bound %s sets revision without minor", b)
	}
	return nil
}

// String renders the set fields joined by dots, or "*" when unbounded.
func (b Bound) String() string {
	if b.Major == Any && b.Minor == Any && b.Revision == Any {
		return "*"
	}
	return joinFields(b.Major, b.Minor, b.Revision)
}

// Range is a pair of inclusive bounds. The zero Range pins every field to 0;
// use AnyRange for no constraint.
type Range struct {
	Min, Max Bound
}

// AnyRange admits every version.
var AnyRange = Range{Min: Unbounded, Max: Unbounded}

// Contains reports whether v lies within both bounds.
func (r Range) Contains(v Version) bool {
	return r.Min.AdmitsAbove(v) && r.Max.AdmitsBelow(v)
}

// String renders the range in the rule-language form, e.g. ">=2 <=2.2.99".
func (r Range) String() string {
	var parts []string
	if !r.Min.IsUnbounded() {
		parts = append(parts, ">="+r.Min.String())
	}
	if !r.Max.IsUnbounded() {
		parts = append(parts, "<="+r.Max.String())
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

// joinFields renders the leading non-negative fields; a -1 stops the output.
func joinFields(fields ...int) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f < 0 {
			break
		}
		parts = append(parts, strconv.Itoa(f))
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, ".")
}
