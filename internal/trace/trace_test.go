package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestRingSnapshotIsChronological(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopePhase, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	Point(r, ScopePhase, "phase", "", 0)
	Point(r, ScopeFile, "file", "", 0)
	Point(r, ScopeNode, "node", "", 0)
	if n := len(r.Snapshot()); n != 1 {
		t.Fatalf("stored %d events, want 1", n)
	}
}

func TestErrorLevelRingKeepsPhases(t *testing.T) {
	r := NewRingTracer(16, LevelError)
	sp := Begin(r, ScopePhase, "read", 0)
	sp.End("ok")
	Point(r, ScopeFile, "file", "", 0)
	if n := len(r.Snapshot()); n != 2 {
		t.Fatalf("stored %d events, want 2", n)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	sp := Begin(st, ScopeChain, "read->scan", 0)
	sp.WithExtra("file", "main.orb").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2: %q", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Kind != "end" || ev.Name != "read->scan" || ev.Extra["file"] != "main.orb" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer not found in context")
	}
	if ring, ok := RingOf(NewMultiTracer(LevelDebug, Nop, r)); !ok || ring != r {
		t.Fatalf("RingOf did not find ring")
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil || l.String() != s {
			t.Errorf("ParseLevel(%q) = %v, %v", s, l, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}
