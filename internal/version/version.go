// Package version holds build metadata, overridable at link time:
//
//	go build -ldflags "-X .../internal/version.Commit=$(git rev-parse --short HEAD)"
package version

var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)
