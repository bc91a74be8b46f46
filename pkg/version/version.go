// Package version exposes build metadata set with -ldflags.
package version

import "runtime/debug"

// Build metadata, overridden at link time:
//
//	-X github.com/rshade/baghouse/pkg/version.version=v1.2.3
//
//nolint:gochecknoglobals // Link-time variables.
var (
	version   = ""
	gitCommit = ""
	buildDate = ""
)

// devVersion is reported when no version was linked in and the module has none.
const devVersion = "0.0.0-dev"

// GetVersion returns the linked version, the module version from build info,
// or devVersion.
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}

// GetGitCommit returns the linked commit hash, or "unknown".
func GetGitCommit() string {
	if gitCommit == "" {
		return "unknown"
	}
	return gitCommit
}

// GetBuildDate returns the linked build date, or "unknown".
func GetBuildDate() string {
	if buildDate == "" {
		return "unknown"
	}
	return buildDate
}
