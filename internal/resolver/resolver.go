// Package resolver matches semantic-version constraints against a set of
// supported versions.
package resolver

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/thoreinstein/platdetect/internal/errors"
)

// AnyVersion is the constraint substituted for an empty constraint.
const AnyVersion = "*"

// UnsupportedVersionError reports that no supported version satisfies a constraint.
// It matches errors.ErrUnsupportedVersion.
type UnsupportedVersionError struct {
	// Platform is the ecosystem the constraint was resolved for. It is empty
	// when the resolver is called directly.
	Platform string

	// Constraint is the constraint exactly as the caller supplied it.
	Constraint string

	// Supported is the full list the constraint was matched against.
	Supported []string
}

func (e *UnsupportedVersionError) Error() string {
	var b strings.Builder
	if e.Platform != "" {
		b.WriteString(e.Platform)
		b.WriteString(" ")
	}
	b.WriteString("version '")
	b.WriteString(e.Constraint)
	b.WriteString("' is not supported")
	if len(e.Supported) == 0 {
		b.WriteString(" (no versions available)")
	} else {
		b.WriteString(". Supported versions are: ")
		b.WriteString(strings.Join(e.Supported, ", "))
	}
	return b.String()
}

// Is makes the error match errors.ErrUnsupportedVersion.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == errors.ErrUnsupportedVersion
}

// Resolve returns the greatest entry of supported that satisfies constraint.
//
// The constraint grammar is that of github.com/Masterminds/semver/v3: exact
// versions, partial versions ("14", "3.8") acting as wildcard suffixes,
// comparison operators, caret and tilde ranges, hyphen ranges and "||"
// alternatives. An empty constraint means any version. The returned string is
// the supported entry itself, not a normalized form.
//
// Resolve never substitutes a default; an empty or unmatched set yields an
// *UnsupportedVersionError. A constraint that does not parse is treated the
// same way since nothing can satisfy it.
func Resolve(constraint string, supported []string) (string, error) {
	expr := strings.TrimSpace(constraint)
	if expr == "" {
		expr = AnyVersion
	}

	unsupported := &UnsupportedVersionError{
		Constraint: constraint,
		Supported:  append([]string(nil), supported...),
	}

	c, err := semver.NewConstraint(expr)
	if err != nil {
		return "", unsupported
	}

	var (
		best    *semver.Version
		bestRaw string
	)
	for _, raw := range supported {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if !c.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = raw
		}
	}

	if best == nil {
		return "", unsupported
	}
	return bestRaw, nil
}

// Valid reports whether constraint parses as a version constraint.
func Valid(constraint string) bool {
	expr := strings.TrimSpace(constraint)
	if expr == "" {
		return false
	}
	_, err := semver.NewConstraint(expr)
	return err == nil
}

// Sort returns the entries of versions that parse as semantic versions in
// ascending order. Unparsable entries are dropped and duplicates collapse.
func Sort(versions []string) []string {
	type entry struct {
		raw string
		v   *semver.Version
	}

	seen := make(map[string]struct{}, len(versions))
	entries := make([]entry, 0, len(versions))
	for _, raw := range versions {
		raw = strings.TrimSpace(raw)
		if _, dup := seen[raw]; dup {
			continue
		}
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		seen[raw] = struct{}{}
		entries = append(entries, entry{raw: raw, v: v})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].v.LessThan(entries[j].v)
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.raw
	}
	return out
}

// IsStrict reports whether name is a complete MAJOR.MINOR.PATCH version with
// optional pre-release and build metadata.
func IsStrict(name string) bool {
	_, err := semver.StrictNewVersion(name)
	return err == nil
}

// IsVersion reports whether s parses as a semantic version, allowing a
// leading "v" and missing minor or patch components.
func IsVersion(s string) bool {
	_, err := semver.NewVersion(strings.TrimSpace(s))
	return err == nil
}
