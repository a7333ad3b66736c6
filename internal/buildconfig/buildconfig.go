package buildconfig

import "runtime/debug"

// Set with -ldflags "-X github.com/Harshitk-cp/semprove/internal/buildconfig.version=..."
var (
	version = "dev"
	commit  = ""
)

func Version() string {
	return version
}

// Commit is the injected commit, or the VCS revision stamped by the Go
// toolchain when none was injected.
func Commit() string {
	if commit != "" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}

// String is the one-line form printed by the version command.
func String() string {
	return "semprove " + Version() + " (" + Commit() + ")"
}
