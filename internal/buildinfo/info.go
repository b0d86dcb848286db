// Package buildinfo exposes release metadata injected at link time:
//
//	go build -ldflags "-X github.com/taxdesk-dev/taxdesk/internal/buildinfo.Version=v1.2.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
