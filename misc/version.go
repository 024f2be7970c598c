// Package misc has code used by everything else which does not fit anywhere
// else.
package misc

import (
	"runtime/debug"
)

const appName = "stylec"

// GetAppName returns application name to be used in various messages and names.
func GetAppName() string {
	return appName
}

// GetVersion returns program version from build info.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns vcs revision program was built from.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
