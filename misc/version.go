// Package misc keeps build identity helpers in one place so every other
// package can report the same name and version.
package misc

import "runtime/debug"

const appName = "cssel"

// GetAppName returns program name to be used in logs, reports and file names.
func GetAppName() string {
	return appName
}

// GetVersion returns module version recorded by the toolchain.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns vcs revision recorded by the toolchain, shortened to the
// usual 7 characters.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 7 {
				return s.Value[:7]
			}
			return s.Value
		}
	}
	return "unknown"
}
