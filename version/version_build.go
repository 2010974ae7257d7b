package version

import (
	"runtime/debug"
)

const modulePath = "github.com/curtisnewbie/timesplit"

func init() {
	if ver := ReadBuildVersion(); ver != "" {
		Version = ver
	}
}

// Read the module version from build info, returns empty string if it's unknown, e.g., in a dev build.
func ReadBuildVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	if buildInfo.Main.Path == modulePath && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	for _, dep := range buildInfo.Deps {
		if dep.Path == modulePath {
			return dep.Version
		}
	}
	return ""
}
