// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Details is the version information as a value, for --json output.
type Details struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildTime string `json:"build_time"`
	Go        string `json:"go"`
	Platform  string `json:"platform"`
}

var stamp = sync.OnceValue(func() Details {
	details := Details{
		Version:   Version,
		Commit:    GitCommit,
		Dirty:     GitDirty == "true",
		BuildTime: BuildTime,
		Go:        runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if details.Commit != "unknown" {
		return details
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return details
	}
	applyBuildSettings(&details, info.Settings)
	return details
})

// applyBuildSettings fills in VCS fields from the toolchain's build
// stamp.
func applyBuildSettings(details *Details, settings []debug.BuildSetting) {
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			details.Commit = setting.Value
			if len(details.Commit) > 12 {
				details.Commit = details.Commit[:12]
			}
		case "vcs.modified":
			details.Dirty = setting.Value == "true"
		case "vcs.time":
			details.BuildTime = setting.Value
		}
	}
}

// Get returns the version details of the running binary.
func Get() Details {
	return stamp()
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	details := Get()
	dirty := ""
	if details.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", details.Version, details.Commit, dirty, details.BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	details := Get()
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s", Info(), details.Go, details.Platform)
}

// Short returns just the version number.
func Short() string {
	return Version
}
