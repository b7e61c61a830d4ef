package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParsedVersion is a version string interpreted under semantic version
// precedence. The raw spelling is kept for display; comparisons use the
// parsed form, so "1.0" and "1.0.0" are equal.
type ParsedVersion struct {
	raw    string
	parsed *semver.Version
}

// ParseVersion interprets raw as a version. Missing minor and patch
// components count as zero, numeric components compare as integers and
// pre-release identifiers lexically. A leading "v" and surrounding
// whitespace are tolerated. Failures name the offending string.
func ParseVersion(raw string) (ParsedVersion, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ParsedVersion{}, &ParseError{Value: raw}
	}

	// The parser accepts a lowercase "v" prefix on its own.
	parsed, err := semver.NewVersion(strings.TrimPrefix(trimmed, "V"))
	if err != nil {
		return ParsedVersion{}, &ParseError{Value: trimmed, Err: err}
	}

	return ParsedVersion{raw: trimmed, parsed: parsed}, nil
}

// Compare returns -1, 0 or 1 when it is less than, equal to, or greater
// than other.
func (it ParsedVersion) Compare(other ParsedVersion) int {
	return it.parsed.Compare(other.parsed)
}

// LessThan reports whether it orders strictly before other.
func (it ParsedVersion) LessThan(other ParsedVersion) bool {
	return it.Compare(other) < 0
}

// Equal reports whether both versions occupy the same point in the order,
// regardless of spelling.
func (it ParsedVersion) Equal(other ParsedVersion) bool {
	return it.Compare(other) == 0
}

// String returns the version as it was written, trimmed.
func (it ParsedVersion) String() string { return it.raw }

// Latest returns the greatest parseable candidate under version precedence,
// in its original spelling. Candidates that do not parse are ignored; ok is
// false when none of them parse.
func Latest(candidates []string) (string, bool) {
	var best ParsedVersion
	found := false
	for _, candidate := range candidates {
		version, err := ParseVersion(candidate)
		if err != nil {
			continue
		}
		if !found || best.LessThan(version) {
			best = version
			found = true
		}
	}
	if !found {
		return "", false
	}
	return best.String(), true
}
