package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"orbit/internal/buildpipeline"
)

func newTestModel(files ...string) *progressModel {
	return NewProgressModel("build", files, []string{"read", "scan", "import", "export"}, nil).(*progressModel)
}

func TestApplyEventTracksPhases(t *testing.T) {
	m := newTestModel("a.orb", "b.orb")

	m.applyEvent(buildpipeline.Event{File: "a.orb", Phase: "scan", Status: buildpipeline.StatusWorking})
	if m.items[0].status != "scan" || m.items[0].step != 1 {
		t.Fatalf("item = %+v", m.items[0])
	}
	m.applyEvent(buildpipeline.Event{File: "a.orb", Phase: "scan", Status: buildpipeline.StatusDone})
	if m.items[0].step != 2 || m.items[0].final {
		t.Fatalf("phase done must only advance: %+v", m.items[0])
	}
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v", got)
	}

	m.applyEvent(buildpipeline.Event{File: "a.orb", Status: buildpipeline.StatusDone, Elapsed: 3 * time.Millisecond})
	m.applyEvent(buildpipeline.Event{File: "b.orb", Status: buildpipeline.StatusError, Err: errors.New("x")})
	if !m.items[0].final || !m.items[1].final || m.finished() != 2 {
		t.Fatalf("items = %+v", m.items)
	}
	if m.percent() != 1 {
		t.Fatalf("percent = %v", m.percent())
	}

	// late events for finished files are ignored
	m.applyEvent(buildpipeline.Event{File: "a.orb", Phase: "read", Status: buildpipeline.StatusWorking})
	if m.items[0].status != "done" {
		t.Fatalf("status changed after final: %s", m.items[0].status)
	}
}

func TestApplyEventUnknownFile(t *testing.T) {
	m := newTestModel("a.orb")
	if cmd := m.applyEvent(buildpipeline.Event{File: "zzz", Status: buildpipeline.StatusDone}); cmd != nil {
		t.Fatalf("unknown file should be ignored")
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newTestModel("a.orb", "b.orb")
	m.applyEvent(buildpipeline.Event{File: "b.orb", Status: buildpipeline.StatusError})
	v := m.View()
	if !strings.Contains(v, "a.orb") || !strings.Contains(v, "b.orb") || !strings.Contains(v, "(1/2)") {
		t.Fatalf("view:\n%s", v)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Fatalf("got %q", got)
	}
}
