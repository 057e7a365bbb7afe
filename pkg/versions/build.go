package versions

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/mod/semver"
)

const unknownStr = "unknown"

// Build information, set at build time through -ldflags -X.
var (
	BuildVersion = "dev"
	Commit       = unknownStr
	BuildDate    = unknownStr
)

// VersionInfo describes the uplink binary.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersionInfo returns the build information of the running binary.
// Development builds report "build-<short commit>".
func GetVersionInfo() VersionInfo {
	version := BuildVersion
	if version == "dev" {
		if Commit == unknownStr {
			version = "build-" + unknownStr
		} else {
			commit := Commit
			if len(commit) > 8 {
				commit = commit[:8]
			}
			version = "build-" + commit
		}
	} else if semver.IsValid(version) {
		version = semver.Canonical(version)
	}

	buildDate := BuildDate
	if t, err := time.Parse(time.RFC3339, BuildDate); err == nil {
		buildDate = t.UTC().Format("2006-01-02 15:04:05 UTC")
	}

	return VersionInfo{
		Version:   version,
		Commit:    Commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
