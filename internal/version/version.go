package version

import (
	"fmt"
	"runtime"
)

// These values are overridden at build time via -ldflags "-X ...".
var (
	Version      = "dev"
	GitCommit    = "unknown"
	GitTreeState = "unknown" // clean|dirty|unknown
	BuildDate    = "unknown" // RFC3339 UTC preferred
)

// SchemaVersion is the config schema revision this binary validates against.
const SchemaVersion = "1.0.0"

type Info struct {
	Version       string
	SchemaVersion string
	GitCommit     string
	GitTreeState  string
	BuildDate     string
	GoVersion     string
	Platform      string
}

func Get() Info {
	return Info{
		Version:       Version,
		SchemaVersion: SchemaVersion,
		GitCommit:     GitCommit,
		GitTreeState:  GitTreeState,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		Platform:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
