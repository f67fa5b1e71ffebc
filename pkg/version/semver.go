package version

import (
	"github.com/Masterminds/semver/v3"
)

var (
	parsedVersion  *semver.Version
	parseAttempted bool
)

// resetParsedVersion clears the cached parsed version for testing.
func resetParsedVersion() {
	parsedVersion = nil
	parseAttempted = false
}

// Parsed returns the semantic version, or nil for builds like "dev". The
// result is cached after the first call.
func Parsed() *semver.Version {
	if parsedVersion != nil || parseAttempted {
		return parsedVersion
	}
	parseAttempted = true

	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	parsedVersion = v
	return parsedVersion
}

// IsPrerelease reports whether the version carries a pre-release suffix.
func IsPrerelease() bool {
	v := Parsed()
	return v != nil && v.Prerelease() != ""
}

// IsDevBuild reports whether the version is not valid semver.
func IsDevBuild() bool {
	return Parsed() == nil
}

// Satisfies reports whether the running version meets constraint, such as
// ">= 0.4". Dev builds satisfy every constraint; a malformed constraint is
// an error.
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, err
	}
	v := Parsed()
	if v == nil {
		return true, nil
	}
	return c.Check(v), nil
}
