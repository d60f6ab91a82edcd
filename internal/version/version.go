// Package version holds build metadata. Release builds set it with
//
//	-ldflags "-X github.com/arthur-debert/xdgmime/internal/version.Version=v1.0.0"
//
// and likewise for Commit and Date.
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
