// Package buildinfo holds the release stamped into the binary.
//
// The variables are set with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/planforge/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/planforge/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/planforge/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information reported by the health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// CacheScope names the cache namespace of this build: the version for
// releases, or "dev-" and the short commit otherwise. Cached layouts and
// drawings never cross builds.
func CacheScope() string {
	if Version != "dev" {
		return Version
	}
	commit := Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return "dev-" + commit
}
