// Package version holds build metadata injected with -ldflags.
package version

// Set at build time:
//
//	go build -ldflags "-X github.com/mandalnilabja/tokencost/internal/version.Version=v1.2.0"
var (
	Version = "dev"
	Commit  = "none"
)
