// Package version holds the changelint version information.
// It has no dependencies and can be imported from any package.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// String returns the one-line build summary printed by "changelint version".
func String() string {
	return fmt.Sprintf("changelint %s (commit %s, built %s, %s/%s)",
		Version, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
}
