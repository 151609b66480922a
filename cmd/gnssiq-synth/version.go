package main

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// Set at build time via `-ldflags "-X 'main.Version=X'"`.
var Version string

func getBuildSettingOrDefault(bi *debug.BuildInfo, key, defaultValue string) string {
	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}
	return defaultValue
}

func printVersion(verbose bool) {
	buildInfo, _ := debug.ReadBuildInfo()

	buildTime := getBuildSettingOrDefault(buildInfo, "vcs.time", "UNKNOWN")
	buildCommit := getBuildSettingOrDefault(buildInfo, "vcs.revision", "UNKNOWN")
	dirtyStr := getBuildSettingOrDefault(buildInfo, "vcs.modified", "false")
	if dirty, err := strconv.ParseBool(dirtyStr); err == nil && dirty {
		buildCommit += "-DIRTY"
	}

	version := Version
	if version == "" {
		version = "!UNKNOWN!"
	}

	fmt.Printf("gnssiq-synth - Version %s (revision %s, built at %s)\n", version, buildCommit, buildTime)
	if verbose {
		fmt.Printf("\nBuildInfo: %+v\n", buildInfo)
	}
}
