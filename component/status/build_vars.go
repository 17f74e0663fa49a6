package status

import (
	"fmt"
	"runtime"
	"strings"
)

const ServiceName = "cds-hooks-ice"

// Set through -ldflags "-X github.com/nuts-foundation/cds-hooks-ice/component/status.GitVersion=..." at build time.
var (
	// GitCommit is the hash of the commit the binary was built on
	GitCommit = "0"
	// GitVersion is the version tag the commit is on
	GitVersion string
	// GitBranch is the branch the binary was built from
	GitBranch = "development"
)

// Version returns the version tag, or the branch for untagged builds.
func Version() string {
	if GitVersion != "" && GitVersion != "undefined" {
		return GitVersion
	}
	return GitBranch
}

func OSArch() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}

// BuildInfo renders the build information served on /status/info, one "key: value" line per item.
func BuildInfo() string {
	items := [][2]string{
		{"Service", ServiceName},
		{"Git version", Version()},
		{"Git commit", GitCommit},
		{"Go version", runtime.Version()},
		{"OS/Arch", OSArch()},
	}
	b := strings.Builder{}
	for _, item := range items {
		b.WriteString(item[0])
		b.WriteString(": ")
		b.WriteString(item[1])
		b.WriteString("\n")
	}
	return b.String()
}
