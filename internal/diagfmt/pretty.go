// Package diagfmt renders diagnostics and warnings for people (Pretty) and
// for tools (JSON).
package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"orbit/internal/diag"
	"orbit/internal/session"
)

type palette struct {
	fatal, err, warn, help, path, num *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		fatal: color.New(color.FgMagenta, color.Bold),
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		help:  color.New(color.FgCyan, color.Bold),
		path:  color.New(color.Bold),
		num:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.fatal, p.err, p.warn, p.help, p.path, p.num} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty prints every diagnostic in bag, in bag order. Call bag.Sort first
// for a stable report.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	for _, d := range bag.Items() {
		if err := PrettyOne(w, d, opts); err != nil {
			return err
		}
	}
	return nil
}

// PrettyOne prints a single diagnostic:
//
//	<path>: error[MOD5001]: could not find module "x"
//	  help:
//	    1. add the directory ...
func PrettyOne(w io.Writer, d *diag.Diagnostic, opts PrettyOpts) error {
	if d == nil {
		return nil
	}
	pal := newPalette(opts.Color)

	if d.Kind() == diag.KindPlain {
		if _, err := fmt.Fprintln(w, clip(d.Message(), opts.Width)); err != nil {
			return err
		}
		return writeCause(w, d, opts)
	}

	label, c := "error", pal.err
	if d.Kind().IsFatal() {
		label, c = "fatal", pal.fatal
	}
	if d.Code() != diag.UnknownCode {
		label += "[" + d.Code().ID() + "]"
	}

	var prefix string
	if p := formatPath(d.Path(), opts.PathMode, opts.BaseDir); p != "" {
		prefix = p + ": "
	}
	head := clip(prefix+label+": "+d.Message(), opts.Width)
	if err := writeColored(w, head, []span{{0, len(prefix), pal.path}, {len(prefix), len(prefix) + len(label), c}}); err != nil {
		return err
	}

	if err := writeCause(w, d, opts); err != nil {
		return err
	}

	sols := d.Solutions()
	if d.Kind() != diag.KindProblem || opts.HideSolutions || len(sols) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "  "+pal.help.Sprint("help:")); err != nil {
		return err
	}
	for i, s := range sols {
		num := strconv.Itoa(i+1) + "."
		line := clip("    "+num+" "+s, opts.Width)
		if err := writeColored(w, line, []span{{4, 4 + len(num), pal.num}}); err != nil {
			return err
		}
	}
	return nil
}

func writeCause(w io.Writer, d *diag.Diagnostic, opts PrettyOpts) error {
	cause := d.Unwrap()
	if cause == nil {
		return nil
	}
	_, err := fmt.Fprintln(w, clip("  caused by: "+cause.Error(), opts.Width))
	return err
}

// PrettyWarnings prints ws in the order given. Pass Session.WarningsLIFO to
// get the most recent warning first.
func PrettyWarnings(w io.Writer, path string, ws []session.Warning, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	var prefix string
	if p := formatPath(path, opts.PathMode, opts.BaseDir); p != "" {
		prefix = p + ": "
	}
	for _, warn := range ws {
		label := "warning"
		if warn.Phase != "" {
			label += "(" + warn.Phase + ")"
		}
		line := clip(prefix+label+": "+warn.Message, opts.Width)
		if err := writeColored(w, line, []span{{0, len(prefix), pal.path}, {len(prefix), len(prefix) + len(label), pal.warn}}); err != nil {
			return err
		}
	}
	return nil
}

// span colors line[start:end]; spans must be ordered and disjoint.
type span struct {
	start, end int
	c          *color.Color
}

// writeColored prints line with the given byte ranges colored. Ranges cut
// off by clipping are colored up to the end of the line; a range boundary
// that falls inside a multi-byte rune moves back to the rune start.
func writeColored(w io.Writer, line string, spans []span) error {
	pos := 0
	out := make([]byte, 0, len(line)+32)
	for _, s := range spans {
		start, end := runeFloor(line, max(s.start, pos)), runeFloor(line, s.end)
		if start >= end {
			continue
		}
		out = append(out, line[pos:start]...)
		out = append(out, s.c.Sprint(line[start:end])...)
		pos = end
	}
	out = append(out, line[pos:]...)
	out = append(out, '\n')
	_, err := w.Write(out)
	return err
}

func runeFloor(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
