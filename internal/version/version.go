// Package version parses host and plugin version strings into candidate
// versions for rule matching.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ivoronin/knobcompat/internal/compat"
)

// Unknown is the special version string for a version that was not recorded.
// An empty string means the same.
const Unknown = "unknown"

// Parse parses a host version such as "2.1.0", "2.1" or "v2". Missing minor
// and patch fields are zero, as semver fills them.
func Parse(s string) (compat.Version, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Unknown) {
		return compat.UnknownVersion, nil
	}

	v, err := semver.NewVersion(s)
	if err != nil {
		return compat.Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return fromSemver(v)
}

// ParsePlugin parses a plugin version. Plugins only carry major.minor, so a
// patch component is rejected.
func ParsePlugin(s string) (compat.Version, error) {
	v, err := Parse(s)
	if err != nil || !v.Known() {
		return v, err
	}
	if v.Revision != 0 {
		return compat.Version{}, fmt.Errorf("invalid plugin version %q: plugins have no patch version", s)
	}
	v.Revision = compat.Unknown
	return v, nil
}

func fromSemver(v *semver.Version) (compat.Version, error) {
	if v.Prerelease() != "" {
		return compat.Version{}, fmt.Errorf("invalid version %q: pre-release versions are not supported", v.Original())
	}
	const maxField = uint64(1<<31 - 1)
	if v.Major() > maxField || v.Minor() > maxField || v.Patch() > maxField {
		return compat.Version{}, fmt.Errorf("invalid version %q: field out of range", v.Original())
	}
	return compat.Version{
		Major:    int(v.Major()),
		Minor:    int(v.Minor()),
		Revision: int(v.Patch()),
	}, nil
}
