package diagfmt

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"

	"orbit/internal/diag"
	"orbit/internal/session"
)

func TestPrettyProblemListsSolutions(t *testing.T) {
	d := diag.Problem(diag.ModNotFound, `could not find module "m"`, "add a module path", "create the module").
		WithPath("src/a.orb")
	var buf bytes.Buffer
	if err := PrettyOne(&buf, d, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`src/a.orb: error[` + diag.ModNotFound.ID() + `]: could not find module "m"`,
		"  help:",
		"    1. add a module path",
		"    2. create the module",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyKinds(t *testing.T) {
	tests := []struct {
		name string
		d    *diag.Diagnostic
		want string
	}{
		{"fatal", diag.Fatal(diag.InternalError, "boom"), "fatal[" + diag.InternalError.ID() + "]: boom\n"},
		{"plain", diag.Plain("just text"), "just text\n"},
		{"plain with path", diag.Plain("just a note").WithPath("x.orb"), "just a note\n"},
		{"plain with cause", diag.Plain("note").WithCause(errors.New("why")), "note\n  caused by: why\n"},
		{"not found", diag.NotFound(diag.IOFileNotFound, "x.orb", "could not find source file at x.orb"),
			"x.orb: error[" + diag.IOFileNotFound.ID() + "]: could not find source file at x.orb\n"},
		{"cause", diag.Fatal(diag.InternalForeignErr, "wrapped").WithCause(errors.New("disk on fire")),
			"fatal[" + diag.InternalForeignErr.ID() + "]: wrapped\n  caused by: disk on fire\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := PrettyOne(&buf, tt.d, PrettyOpts{}); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Fatalf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrettyHideSolutions(t *testing.T) {
	var buf bytes.Buffer
	d := diag.Problem(diag.ASTDivByZero, "division by zero", "fix it")
	if err := PrettyOne(&buf, d, PrettyOpts{HideSolutions: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "help:") {
		t.Fatalf("solutions printed: %q", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyOne(&buf, diag.Fatal(diag.InternalError, "boom"), PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestPrettyWidth(t *testing.T) {
	var buf bytes.Buffer
	d := diag.Plain(strings.Repeat("x", 100))
	if err := PrettyOne(&buf, d, PrettyOpts{Width: 20}); err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSuffix(buf.String(), "\n")
	if !strings.HasSuffix(line, "…") || len([]rune(line)) != 20 {
		t.Fatalf("line = %q (%d runes)", line, len([]rune(line)))
	}
}

func TestWriteColoredKeepsRunesWhole(t *testing.T) {
	c := color.New(color.FgRed)
	c.EnableColor()
	tests := []struct {
		name  string
		line  string
		spans []span
	}{
		{"end inside ellipsis", "ab…", []span{{0, 3, c}}},
		{"start inside ellipsis", "ab…cd", []span{{3, 5, c}}},
		{"span past end", "é", []span{{0, 1, c}, {1, 10, c}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeColored(&buf, tt.line, tt.spans); err != nil {
				t.Fatal(err)
			}
			if !utf8.Valid(buf.Bytes()) {
				t.Fatalf("invalid UTF-8: %q", buf.String())
			}
		})
	}
}

func TestPrettyClippedColorIsValidUTF8(t *testing.T) {
	var buf bytes.Buffer
	d := diag.Fatal(diag.InternalError, "boom").WithPath("very/long/path/to/some/file.orb")
	for width := uint8(1); width < 40; width++ {
		buf.Reset()
		if err := PrettyOne(&buf, d, PrettyOpts{Color: true, Width: width, PathMode: PathModeAbsolute}); err != nil {
			t.Fatal(err)
		}
		if !utf8.Valid(buf.Bytes()) {
			t.Fatalf("width %d: invalid UTF-8: %q", width, buf.String())
		}
	}
}

func TestPrettyWarnings(t *testing.T) {
	sess := session.New(nil)
	sess.Warn("scan", "first")
	sess.Warn("import", "second")
	var buf bytes.Buffer
	if err := PrettyWarnings(&buf, "a.orb", sess.WarningsLIFO(), PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "a.orb: warning(import): second\na.orb: warning(scan): first\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}

func TestPrettyBagOrder(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Plain("b").WithPath("b.orb"))
	bag.Add(diag.Plain("a").WithPath("a.orb"))
	bag.Sort()
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a.orb: error: a\nb.orb: error: b\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestFormatPath(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "src", "a.orb")
	tests := []struct {
		mode PathMode
		in   string
		want string
	}{
		{PathModeAuto, inside, filepath.Join("src", "a.orb")},
		{PathModeAuto, "/elsewhere/x.orb", "/elsewhere/x.orb"},
		{PathModeRelative, inside, filepath.Join("src", "a.orb")},
		{PathModeBasename, inside, "a.orb"},
		{PathModeAbsolute, inside, inside},
	}
	for _, tt := range tests {
		if got := formatPath(tt.in, tt.mode, base); got != tt.want {
			t.Errorf("formatPath(%q, %d) = %q, want %q", tt.in, tt.mode, got, tt.want)
		}
	}
}
