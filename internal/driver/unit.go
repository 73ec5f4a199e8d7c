package driver

import (
	"context"

	"orbit/internal/session"
	"orbit/internal/source"
)

// Phase identifiers of the reference pipeline. Pragma targets name these.
const (
	PhaseRead   = "read"
	PhaseScan   = "scan"
	PhaseImport = "import"
	PhaseExport = "export"
)

// SourceExt is the extension CollectSources looks for in directories.
const SourceExt = ".orb"

// Unit is what the pipeline builds for one source file.
type Unit struct {
	Path    string
	Digest  source.Digest
	Source  string
	Pragmas []session.Pragma
	Imports []Import
	Exports []Export
	// Cached is set when the scan result was replayed from the disk cache.
	Cached bool
}

// Import is a resolved `#pragma import <module>`.
type Import struct {
	Module string
	Dir    string
}

// Export is a `#pragma export <name>` with its mangled symbol.
type Export struct {
	Name   string
	Symbol string
}

type fileKey struct{}

// WithFile records the path of the file being compiled on ctx.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, fileKey{}, path)
}

// FileFrom returns the path recorded by WithFile.
func FileFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	p, _ := ctx.Value(fileKey{}).(string)
	return p
}
