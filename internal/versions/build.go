package versions

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

const unknown = "unknown"

// Build metadata, overridden with -ldflags at release time.
var (
	Version   = "dev"
	Commit    = unknown
	BuildDate = unknown
)

// BuildInfo describes the running plugmanager binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo returns the build metadata of the current binary.
func GetBuildInfo() BuildInfo {
	return buildInfo(Version, Commit, BuildDate, debug.ReadBuildInfo)
}

func buildInfo(version, commit, date string, read func() (*debug.BuildInfo, bool)) BuildInfo {
	if version == "dev" && read != nil {
		if info, ok := read(); ok {
			for _, s := range info.Settings {
				switch {
				case s.Key == "vcs.revision" && commit == unknown:
					commit = s.Value
				case s.Key == "vcs.time" && date == unknown:
					date = s.Value
				}
			}
		}
	}

	if t, err := time.Parse(time.RFC3339, date); err == nil {
		date = t.UTC().Format("2006-01-02 15:04:05 MST")
	}

	if version == "dev" && commit != unknown {
		version = fmt.Sprintf("dev-%.8s", commit)
	}

	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
