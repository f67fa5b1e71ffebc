// Package version provides build version information.
package version

import (
	"fmt"
	"runtime"
)

// These are set via ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Name is the program name used in version strings and user agents.
const Name = "themebuddy"

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// Info returns a one-line description of the build.
func Info() string {
	return fmt.Sprintf("%s %s (%s) built on %s with %s", Name, Version, shortCommit(), BuildDate, runtime.Version())
}

// Short returns just the version number.
func Short() string {
	return Version
}

// UserAgent identifies outbound HTTP requests, e.g. "themebuddy/1.2.0 (linux/amd64)".
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s/%s)", Name, Version, runtime.GOOS, runtime.GOARCH)
}
