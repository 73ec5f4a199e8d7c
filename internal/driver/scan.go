package driver

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"

	"orbit/internal/diag"
	"orbit/internal/phase"
	"orbit/internal/session"
	"orbit/internal/source"
	"orbit/internal/trace"
)

const pragmaPrefix = "#pragma"

// Scanner is the phase that turns source text into a Unit by collecting its
// pragma lines. Each pragma is pushed to the session as an annotation for
// the phase it targets; problems with pragma lines are warnings, not errors.
type Scanner struct {
	phase.Base
	cache   *DiskCache
	targets []string
}

// NewScanner creates a scanner. cache may be nil.
func NewScanner(sess *session.Session, id string, cache *DiskCache) *Scanner {
	return &Scanner{
		Base:    phase.NewBase(sess, id),
		cache:   cache,
		targets: []string{PhaseImport, PhaseExport},
	}
}

// WithTargets replaces the set of phase identifiers pragmas may target
// without a warning.
func (s *Scanner) WithTargets(targets ...string) *Scanner {
	s.targets = slices.Clone(targets)
	return s
}

func (s *Scanner) Execute(ctx context.Context, src string) (*Unit, error) {
	unit := &Unit{
		Path:   FileFrom(ctx),
		Digest: source.DigestOf([]byte(src)),
		Source: src,
	}
	tracer := trace.FromContext(ctx)

	if s.replay(ctx, unit) {
		trace.Point(tracer, trace.ScopeFile, "cache-hit", unit.Digest.String(), trace.ParentSpan(ctx))
		return unit, nil
	}

	var warnings []string
	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), len(src)+1)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if !isPragmaLine(text) {
			continue
		}
		p, ok := parsePragma(text)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: line %d: malformed pragma %q, expected `#pragma <target> <name> [args]`",
				diag.PragmaMalformed.ID(), line, text))
			continue
		}
		if s.Session().HasAnnotation(p) {
			warnings = append(warnings, fmt.Sprintf("%s: line %d: duplicate pragma %q ignored",
				diag.PragmaDuplicate.ID(), line, p.String()))
			continue
		}
		if !slices.Contains(s.targets, p.Target) {
			warnings = append(warnings, fmt.Sprintf("%s: line %d: pragma %q targets unknown phase %q",
				diag.PragmaNoTarget.ID(), line, p.Name, p.Target))
		}
		s.Session().AddAnnotation(p)
		unit.Pragmas = append(unit.Pragmas, p)
	}
	if err := sc.Err(); err != nil {
		return nil, diag.DecodeFailure(diag.IODecodeFailure, unit.Path, "could not scan source: "+err.Error()).WithCause(err)
	}
	for _, w := range warnings {
		s.Session().Warn(s.ID(), w)
	}
	trace.Point(tracer, trace.ScopeFile, "pragmas", fmt.Sprintf("%d pragmas, %d warnings", len(unit.Pragmas), len(warnings)), trace.ParentSpan(ctx))

	s.store(unit, warnings)
	return unit, nil
}

// replay restores a previous scan of identical content from the cache.
func (s *Scanner) replay(ctx context.Context, unit *Unit) bool {
	if s.cache == nil {
		return false
	}
	var payload ScanPayload
	ok, err := s.cache.Get(unit.Digest, &payload)
	if err != nil {
		s.Session().Warn(s.ID(), fmt.Sprintf("%s: cache entry %s unreadable, rescanning: %v",
			diag.IOCacheCorrupted.ID(), unit.Digest, err))
		return false
	}
	if !ok || payload.Schema != scanCacheSchema || !slices.Equal(payload.Targets, s.sortedTargets()) {
		return false
	}
	for _, cp := range payload.Pragmas {
		p := cp.pragma()
		s.Session().AddAnnotation(p)
		unit.Pragmas = append(unit.Pragmas, p)
	}
	for _, w := range payload.Warnings {
		s.Session().Warn(s.ID(), w)
	}
	unit.Cached = true
	trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-replay",
		fmt.Sprintf("%d pragmas", len(unit.Pragmas)), trace.ParentSpan(ctx))
	return true
}

func (s *Scanner) store(unit *Unit, warnings []string) {
	if s.cache == nil {
		return
	}
	payload := &ScanPayload{
		Schema:   scanCacheSchema,
		Targets:  s.sortedTargets(),
		Warnings: warnings,
	}
	for _, p := range unit.Pragmas {
		payload.Pragmas = append(payload.Pragmas, cachedPragma{Name: p.Name, Target: p.Target, Args: p.Args})
	}
	if err := s.cache.Put(unit.Digest, payload); err != nil {
		s.Session().Warn(s.ID(), fmt.Sprintf("could not write scan cache: %v", err))
	}
}

func (s *Scanner) sortedTargets() []string {
	targets := slices.Clone(s.targets)
	slices.Sort(targets)
	return slices.Compact(targets)
}

func isPragmaLine(text string) bool {
	if !strings.HasPrefix(text, pragmaPrefix) {
		return false
	}
	rest := text[len(pragmaPrefix):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// parsePragma splits `#pragma <target> <name> [args...]`.
func parsePragma(text string) (session.Pragma, bool) {
	fields := strings.Fields(text)
	if len(fields) < 3 || fields[0] != pragmaPrefix {
		return session.Pragma{}, false
	}
	p := session.Pragma{Target: fields[1], Name: fields[2]}
	if len(fields) > 3 {
		p.Args = slices.Clone(fields[3:])
	}
	return p, true
}
