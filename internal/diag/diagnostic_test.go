package diag

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestProblemKeepsSolutionOrder(t *testing.T) {
	d := Problem(ModNotFound, "module util not found", "add a module path", "check spelling")
	if d.Kind() != KindProblem {
		t.Fatalf("kind = %v, want problem", d.Kind())
	}
	got := d.Solutions()
	want := []string{"add a module path", "check spelling"}
	if len(got) != len(want) {
		t.Fatalf("solutions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("solutions[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProblemWithoutSolutions(t *testing.T) {
	d := Problem(ModNotFound, "nothing to suggest")
	if d.Solutions() == nil || len(d.Solutions()) != 0 {
		t.Fatalf("expected empty non-nil solutions, got %#v", d.Solutions())
	}
}

func TestSolutionsAreCopied(t *testing.T) {
	in := []string{"a", "b"}
	d := Problem(ModNotFound, "msg", in...)
	in[0] = "mutated"
	out := d.Solutions()
	out[1] = "mutated"
	if s := d.Solutions(); s[0] != "a" || s[1] != "b" {
		t.Fatalf("diagnostic was mutated through a slice: %v", s)
	}
}

func TestWithPathReturnsCopy(t *testing.T) {
	base := NotFound(IOFileNotFound, "a.orb", "missing")
	moved := base.WithPath("b.orb")
	if base.Path() != "a.orb" || moved.Path() != "b.orb" {
		t.Fatalf("paths = %q, %q", base.Path(), moved.Path())
	}
}

func TestWrapPassesDiagnosticsThrough(t *testing.T) {
	d := DecodeFailure(IODecodeFailure, "x", "bad bytes")
	wrapped := fmt.Errorf("read: %w", d)
	if got := Wrap(wrapped); got != d {
		t.Fatalf("Wrap returned %p, want the original %p", got, d)
	}
}

func TestWrapForeignErrorIsFatal(t *testing.T) {
	got := Wrap(fs.ErrPermission)
	if got.Kind() != KindFatal || got.Code() != InternalForeignErr {
		t.Fatalf("got kind=%v code=%v", got.Kind(), got.Code())
	}
	if !errors.Is(got, fs.ErrPermission) {
		t.Fatalf("cause lost")
	}
	if Wrap(nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{IOFileNotFound, "IO4001"},
		{PragmaMalformed, "PRG2001"},
		{ModNotFound, "MOD5001"},
		{ASTUnhandledNode, "AST7001"},
		{InternalError, "ICE9000"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
