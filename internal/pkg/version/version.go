// Package version carries the build identity injected at link time.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version (injected via ldflags).
	Version = "dev"

	// GitCommit is the git commit hash (injected via ldflags).
	GitCommit = "unknown"

	// BuildDate is the build date (injected via ldflags).
	BuildDate = "unknown"
)

// Full returns a detailed version string with build info.
func Full() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s %s/%s)",
		Version, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
