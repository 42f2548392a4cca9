package utils

import (
	"runtime/debug"
	"strings"
)

// version is set by GoReleaser during builds.
var version string

// GetVersion returns the running version, falling back to Go build info
// when no ldflags version was injected. Any leading "v" is stripped.
func GetVersion() string {
	v := version
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			v = info.Main.Version
		} else {
			v = "unknown"
		}
	}
	return strings.TrimPrefix(v, "v")
}
