// Package version holds the jget build identity shown by --version.
package version

// Overridden with -ldflags "-X github.com/jacoelho/jsmn/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
