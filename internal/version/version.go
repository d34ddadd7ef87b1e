// Package version reports the tripgrid build stamped in through -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set at build time with -ldflags "-X github.com/example/tripgrid/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get collects the build stamp and runtime details. Unstamped fields are left empty.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: known(GitCommit),
		BuildDate: known(BuildDate),
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders "tripgrid <version> (<commit>, built <date>)" with unknown parts omitted.
func (i Info) String() string {
	var extra []string
	if i.GitCommit != "" {
		extra = append(extra, i.GitCommit)
	}
	if i.BuildDate != "" {
		extra = append(extra, "built "+i.BuildDate)
	}
	if len(extra) == 0 {
		return "tripgrid " + i.Version
	}
	return fmt.Sprintf("tripgrid %s (%s)", i.Version, strings.Join(extra, ", "))
}

func known(v string) string {
	if v == "unknown" {
		return ""
	}
	return v
}
