// Package buildinfo holds version metadata stamped into the autogaap binary.
package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/cleared-dev/autogaap/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the metadata for --version and the server's health check.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
