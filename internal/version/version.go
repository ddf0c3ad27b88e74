// Package version carries build identification for the binmap tools.
package version

import "runtime/debug"

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
)

// String resolves version information, falling back to module build
// info for source builds.
func String() string {
	v := Version
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			v = info.Main.Version
		} else {
			v = "devel"
		}
	}
	if Commit == "" {
		return v
	}
	commit := Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return v + " (" + commit + ")"
}
