// Package buildinfo holds version metadata stamped in at build time.
package buildinfo

// Set via -ldflags at release build time; the defaults identify a
// from-source developer build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
