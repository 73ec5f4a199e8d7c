package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStartStopWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	p, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	sum := 0
	for i := range 10000 {
		sum += i
	}
	_ = sum
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, path := range []string{cfg.Mem, cfg.Trace} {
		st, err := os.Stat(path)
		if err != nil || st.Size() == 0 {
			t.Fatalf("%s: %v", path, err)
		}
	}
}

func TestStartBadPath(t *testing.T) {
	_, err := Start(Config{Trace: filepath.Join(t.TempDir(), "missing", "trace.out")})
	if err == nil {
		t.Fatalf("expected error for unwritable path")
	}
}

func TestEnabled(t *testing.T) {
	if (Config{}).Enabled() || !(Config{Mem: "m"}).Enabled() {
		t.Fatalf("Enabled is wrong")
	}
}
