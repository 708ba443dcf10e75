package app

import (
	"fmt"
	"runtime/debug"
)

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X github.com/tejashwikalptaru/govis/internal/app.Version=v0.3.0" ./cmd
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// GetVersionInfo returns the ldflags values, falling back to the module build info
// (go install, VCS stamping) for anything left at its default.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}

	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = build.GoVersion
	if info.Version == "dev" && build.Main.Version != "" && build.Main.Version != "(devel)" {
		info.Version = build.Main.Version
	}
	for _, s := range build.Settings {
		switch {
		case s.Key == "vcs.revision" && info.GitCommit == "unknown":
			info.GitCommit = shortRevision(s.Value)
		case s.Key == "vcs.time" && info.BuildTime == "unknown":
			info.BuildTime = s.Value
		}
	}
	return info
}

// FullString returns a detailed version string for logging and --version.
func (v VersionInfo) FullString() string {
	s := fmt.Sprintf("GoVis %s (commit: %s, built: %s)", v.Version, v.GitCommit, v.BuildTime)
	if v.GoVersion != "" {
		s += " " + v.GoVersion
	}
	return s
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
