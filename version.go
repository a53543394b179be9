package audiocodec

import (
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the audiocodec library.
const Version = "0.1.0"

// VersionInfo describes the build of the running binary.
type VersionInfo struct {
	Version   string
	GitCommit string // vcs.revision, or -X ...gitCommit
	BuildTime string // vcs.time, or -X ...buildTime
	Modified  bool   // Built from a dirty working tree
	GoVersion string
}

// Set via -ldflags; empty values fall back to the embedded build info.
var (
	gitCommit string
	buildTime string
)

// GetVersionInfo returns the library version plus the VCS stamp embedded by
// the go command, or the values set with -ldflags:
//
//	go build -ldflags="-X github.com/simonhull/audiocodec.gitCommit=$(git rev-parse HEAD)"
//
// Missing fields are "unknown".
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}
	if info.BuildTime == "" {
		info.BuildTime = "unknown"
	}

	return info
}
