// Package session holds the mutable state shared by all phases of one
// compilation run: warnings, module search paths, the calling convention and
// phase-targeted annotations.
//
// A Session is passed by pointer into every phase constructor. Phases may
// append to it but never replace it. All methods are safe for concurrent use;
// the driver nevertheless gives each parallel run its own Session.
package session

import (
	"bufio"
	"io"
	"os"
	"slices"
	"sync"
)

// Warning is advisory output that does not abort a phase.
type Warning struct {
	Phase   string // identifier of the phase that pushed it, may be empty
	Message string
}

// Session is the context object of one compilation run.
type Session struct {
	mu          sync.Mutex
	warnings    []Warning
	modulePaths []string
	convention  Convention
	annotations []Annotation
	workDir     string // пусто: os.Getwd() на момент запроса
}

// New creates a Session with the hosting driver's calling convention and
// initial module search paths. A nil convention selects PlainConvention.
// Duplicate paths are dropped the same way AddModulePath drops them.
func New(conv Convention, modulePaths ...string) *Session {
	if conv == nil {
		conv = PlainConvention{}
	}
	s := &Session{
		warnings:    make([]Warning, 0, 8),
		modulePaths: make([]string, 0, len(modulePaths)),
		convention:  conv,
	}
	for _, p := range modulePaths {
		s.addModulePathLocked(p)
	}
	return s
}

// PushWarning appends w. It never fails.
func (s *Session) PushWarning(w Warning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = append(s.warnings, w)
}

// Warn is PushWarning for a bare message.
func (s *Session) Warn(phase, msg string) {
	s.PushWarning(Warning{Phase: phase, Message: msg})
}

// Warnings returns a copy of the warnings in push order.
func (s *Session) Warnings() []Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.warnings)
}

// WarningsLIFO returns a copy of the warnings, most recent first.
func (s *Session) WarningsLIFO() []Warning {
	out := s.Warnings()
	slices.Reverse(out)
	return out
}

// EmitAll writes every warning message to w, one per line, most recently
// pushed first. The stored warnings are left in place, so a second call
// prints the same lines again.
func (s *Session) EmitAll(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, warn := range s.WarningsLIFO() {
		if _, err := bw.WriteString(warn.Message); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Convention returns the calling convention supplied at construction.
func (s *Session) Convention() Convention {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convention
}

// Mangle applies the session's calling convention to ident.
func (s *Session) Mangle(ident string) string {
	return s.Convention().Mangle(ident)
}

// SetWorkDir sets the directory FindModule searches before module paths.
func (s *Session) SetWorkDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workDir = dir
}

// WorkDir returns the directory FindModule searches first.
func (s *Session) WorkDir() string {
	s.mu.Lock()
	dir := s.workDir
	s.mu.Unlock()
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	return dir
}
