package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// Version information for the orbit CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the JSON form of the build metadata.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Current collects the build metadata.
func Current() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Colored renders Version with each numeric component in its own color.
// Versions that are not major.minor.patch are returned unchanged.
func Colored(v string, enabled bool) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	colors := []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor}
	out := make([]string, len(parts))
	for i, p := range parts {
		c := *colors[i]
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		out[i] = c.Sprint(p)
	}
	return strings.Join(out, ".") + suffix
}

// Pretty is the human-readable multi-line version report.
func Pretty(info Info, colorOn bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "orbit %s\n", Colored(info.Version, colorOn))
	if info.GitCommit != "" {
		fmt.Fprintf(&b, "commit: %s\n", info.GitCommit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(&b, "built:  %s\n", info.BuildDate)
	}
	fmt.Fprintf(&b, "go:     %s %s\n", info.GoVersion, info.Platform)
	return b.String()
}
