// Package version reports the pagekit build version.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Set at build time with -ldflags "-X github.com/rshade/pagekit/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Injected by the linker.
var (
	version   = "0.0.0-dev"
	gitCommit = ""
)

// GetVersion returns the build version.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from, or "".
func GetGitCommit() string {
	return gitCommit
}

// String returns the version with the commit appended when known.
func String() string {
	if gitCommit == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, gitCommit)
}

// Parse validates v as a semantic version.
func Parse(v string) (*semver.Version, error) {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", v, err)
	}
	return sv, nil
}

// IsRelease reports whether the build version is a release, not a prerelease
// or development build.
func IsRelease() bool {
	return IsReleaseVersion(version)
}

// IsReleaseVersion reports whether v parses and has no prerelease part.
func IsReleaseVersion(v string) bool {
	sv, err := Parse(v)
	return err == nil && sv.Prerelease() == ""
}

// Satisfies reports whether the build version meets constraint, e.g. ">= 0.2.0".
func Satisfies(constraint string) (bool, error) {
	return Check(version, constraint)
}

// ParseConstraint validates a version constraint such as ">= 0.2.0, < 1.0.0".
func ParseConstraint(constraint string) (*semver.Constraints, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}
	return c, nil
}

// Check reports whether v meets constraint.
func Check(v, constraint string) (bool, error) {
	c, err := ParseConstraint(constraint)
	if err != nil {
		return false, err
	}
	sv, err := Parse(v)
	if err != nil {
		return false, err
	}
	return c.Check(sv), nil
}
