package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestCurrentReflectsOverrides(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	// simulating build-time ldflags
	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" || info.GitCommit != "abc123def456" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Fatalf("info = %+v", info)
	}
	if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Fatalf("runtime fields missing: %+v", info)
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		if got := Colored(tt.in, false); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Colored("1.2.3", true); !strings.Contains(got, "\x1b[") {
		t.Errorf("expected color escapes, got %q", got)
	}
	if got := Colored("nightly", true); got != "nightly" {
		t.Errorf("non-semver version must be left alone, got %q", got)
	}
}

func TestPrettyOmitsEmptyFields(t *testing.T) {
	out := Pretty(Info{Version: "1.0.0", GoVersion: "go1.25", Platform: "linux/amd64"}, false)
	if strings.Contains(out, "commit:") || strings.Contains(out, "built:") {
		t.Fatalf("unexpected fields:\n%s", out)
	}
	if !strings.HasPrefix(out, "orbit 1.0.0\n") {
		t.Fatalf("out:\n%s", out)
	}
}
