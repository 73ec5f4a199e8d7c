package diagfmt

import (
	"encoding/json"
	"io"

	"orbit/internal/diag"
	"orbit/internal/session"
)

// DiagnosticJSON is the JSON form of a diagnostic.
type DiagnosticJSON struct {
	Kind      string   `json:"kind"`
	Code      string   `json:"code,omitempty"`
	Title     string   `json:"title,omitempty"`
	Message   string   `json:"message"`
	Path      string   `json:"path,omitempty"`
	Solutions []string `json:"solutions,omitempty"`
	Cause     string   `json:"cause,omitempty"`
}

// WarningJSON is the JSON form of a session warning.
type WarningJSON struct {
	Path    string `json:"path,omitempty"`
	Phase   string `json:"phase,omitempty"`
	Message string `json:"message"`
}

// DiagnosticsOutput is the root of JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Warnings    []WarningJSON    `json:"warnings"`
	Count       int              `json:"count"`
}

// FileWarnings groups the warnings of one file.
type FileWarnings struct {
	Path     string
	Warnings []session.Warning
}

// MakeDiagnostic converts d.
func MakeDiagnostic(d *diag.Diagnostic, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Kind:      d.Kind().String(),
		Message:   d.Message(),
		Path:      formatPath(d.Path(), opts.PathMode, opts.BaseDir),
		Solutions: d.Solutions(),
	}
	if d.Code() != diag.UnknownCode {
		out.Code = d.Code().ID()
		out.Title = d.Code().Title()
	}
	if cause := d.Unwrap(); cause != nil {
		out.Cause = cause.Error()
	}
	return out
}

// BuildDiagnosticsOutput assembles the JSON document without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, warnings []FileWarnings, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0),
		Warnings:    make([]WarningJSON, 0),
	}
	if bag != nil {
		items := bag.Items()
		n := len(items)
		if opts.Max > 0 && opts.Max < n {
			n = opts.Max
		}
		for _, d := range items[:n] {
			out.Diagnostics = append(out.Diagnostics, MakeDiagnostic(d, opts))
		}
	}
	for _, fw := range warnings {
		path := formatPath(fw.Path, opts.PathMode, opts.BaseDir)
		for _, w := range fw.Warnings {
			out.Warnings = append(out.Warnings, WarningJSON{Path: path, Phase: w.Phase, Message: w.Message})
		}
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes diagnostics and warnings as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, warnings []FileWarnings, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, warnings, opts))
}
