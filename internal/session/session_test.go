package session

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestEmitAllIsLIFO(t *testing.T) {
	s := New(nil)
	s.Warn("scan", "w1")
	s.Warn("scan", "w2")
	s.Warn("scan", "w3")

	var buf bytes.Buffer
	if err := s.EmitAll(&buf); err != nil {
		t.Fatalf("EmitAll: %v", err)
	}
	if got, want := buf.String(), "w3\nw2\nw1\n"; got != want {
		t.Fatalf("EmitAll = %q, want %q", got, want)
	}
}

func TestEmitAllDoesNotClear(t *testing.T) {
	s := New(nil)
	s.Warn("", "only")

	var first, second bytes.Buffer
	_ = s.EmitAll(&first)
	_ = s.EmitAll(&second)
	if first.String() != second.String() || second.String() != "only\n" {
		t.Fatalf("second emission = %q, want %q", second.String(), first.String())
	}
	if len(s.Warnings()) != 1 {
		t.Fatalf("warnings were cleared")
	}
}

func TestAddModulePathIsIdempotent(t *testing.T) {
	s := New(nil)
	s.AddModulePath("lib")
	s.AddModulePath("lib")
	if got := s.ModulePaths(); len(got) != 1 {
		t.Fatalf("module paths = %v, want one entry", got)
	}

	s = New(nil, "c", "a", "c", "b")
	s.AddModulePath("a")
	s.AddModulePath("d")
	want := []string{"c", "a", "b", "d"}
	got := s.ModulePaths()
	if len(got) != len(want) {
		t.Fatalf("module paths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("module paths = %v, want %v", got, want)
		}
	}
}

func TestAnnotationsForFiltersInOrder(t *testing.T) {
	s := New(nil)
	a1 := Pragma{Name: "main", Target: "export"}
	a2 := Pragma{Name: "fmt", Target: "import"}
	a3 := Pragma{Name: "helper", Target: "export", Args: []string{"weak"}}
	s.AddAnnotation(a1)
	s.AddAnnotation(a2)
	s.AddAnnotation(a3)

	got := s.AnnotationsFor("export")
	if len(got) != 2 || !got[0].Equal(a1) || !got[1].Equal(a3) {
		t.Fatalf("AnnotationsFor(export) = %v", got)
	}
	if got := s.AnnotationsFor("codegen"); len(got) != 0 {
		t.Fatalf("AnnotationsFor(codegen) = %v, want empty", got)
	}
	if !s.HasAnnotation(Pragma{Name: "fmt", Target: "import"}) {
		t.Fatalf("HasAnnotation should match by value")
	}
	if s.HasAnnotation(Pragma{Name: "helper", Target: "export"}) {
		t.Fatalf("HasAnnotation must compare args too")
	}
}

func TestFindModule(t *testing.T) {
	work := t.TempDir()
	libA := t.TempDir()
	libB := t.TempDir()

	mustMkdir(t, filepath.Join(libA, "net"))
	mustMkdir(t, filepath.Join(libB, "net"))
	mustMkdir(t, filepath.Join(libB, "fmt"))
	mustWrite(t, filepath.Join(libA, "fmt"), "not a module")
	mustMkdir(t, filepath.Join(work, "local"))

	s := New(nil, libA, libB)
	s.SetWorkDir(work)

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"local", filepath.Join(work, "local"), true},
		{"net", filepath.Join(libA, "net"), true},
		{"fmt", filepath.Join(libB, "fmt"), true},
		{"missing", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := s.FindModule(tt.name)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("FindModule(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFindModuleRejectsPathLikeNames(t *testing.T) {
	root := t.TempDir()
	work := filepath.Join(root, "work")
	mustMkdir(t, filepath.Join(work, "local", "nested"))
	mustMkdir(t, filepath.Join(root, "outside"))

	s := New(nil)
	s.SetWorkDir(work)

	for _, name := range []string{".", "..", "../work", "../outside", "/", "local/nested", "local/", `local\nested`, "/local"} {
		if got, ok := s.FindModule(name); ok {
			t.Errorf("FindModule(%q) = %q, want not found", name, got)
		}
	}
	if _, ok := s.FindModule("local"); !ok {
		t.Fatalf("FindModule(local) should still resolve")
	}
}

func TestHasAnnotationNil(t *testing.T) {
	s := New(nil)
	s.AddAnnotation(nil)
	s.AddAnnotation(Pragma{Name: "main", Target: "export"})
	if s.HasAnnotation(nil) {
		t.Fatalf("HasAnnotation(nil) = true")
	}
	if n := len(s.Annotations()); n != 1 {
		t.Fatalf("annotations = %d, want 1", n)
	}
}

func TestFindModuleRejectsBareFile(t *testing.T) {
	work := t.TempDir()
	mustWrite(t, filepath.Join(work, "solo"), "x")
	s := New(nil)
	s.SetWorkDir(work)
	if got, ok := s.FindModule("solo"); ok {
		t.Fatalf("FindModule(solo) = %q, want not found", got)
	}
}

func TestConcurrentWarnings(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Warn("p", "w")
		}()
	}
	wg.Wait()
	if n := len(s.Warnings()); n != 32 {
		t.Fatalf("warnings = %d, want 32", n)
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
