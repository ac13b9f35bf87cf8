// Package framework compares .NET Framework target versions such as "3.5",
// "4.0" or "4.7.2".
package framework

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Default is the target framework assumed when none is configured.
const Default = "4.8"

// Version thresholds that change parser behavior.
const (
	// V40 switches the tag grammar to the current variant.
	V40 = "4.0"

	// V45 adds HTML5 server tags and the generic input control.
	V45 = "4.5"
)

// Canonical converts a framework version into semver form ("v4.5").
// Accepted inputs: "4.5", "v4.5", "4.7.2".
func Canonical(version string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(version))
	v = strings.TrimPrefix(v, "v")
	if v == "" {
		return "", false
	}

	v = "v" + v
	if !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return "", false
	}
	return v, true
}

// Valid reports whether version is a recognizable framework version.
func Valid(version string) bool {
	_, ok := Canonical(version)
	return ok
}

// AtLeast reports whether version >= minimum. Unrecognized versions are
// treated as Default.
func AtLeast(version, minimum string) bool {
	v, ok := Canonical(version)
	if !ok {
		v, _ = Canonical(Default)
	}
	m, ok := Canonical(minimum)
	if !ok {
		return false
	}
	return semver.Compare(v, m) >= 0
}
