package source

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"orbit/internal/diag"
	"orbit/internal/phase"
	"orbit/internal/session"
	"orbit/internal/trace"
)

// Resolver is the leaf phase that turns a path into source text. The whole
// file is read at once and must be valid UTF-8; the bytes are returned as is.
type Resolver struct {
	phase.Base
}

// NewResolver binds a Resolver to sess.
func NewResolver(sess *session.Session, id string) *Resolver {
	return &Resolver{Base: phase.NewBase(sess, id)}
}

// Execute reads path. Anything that prevents reading the file (missing, a
// directory, no permission) is reported as NotFound with the OS error as
// cause; undecodable bytes are reported as DecodeFailure.
func (r *Resolver) Execute(ctx context.Context, path string) (string, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return "", diag.NotFound(diag.IOFileNotFound, path,
			fmt.Sprintf("could not find source file at %s", path)).WithCause(err)
	}
	if !utf8.Valid(content) {
		off := firstInvalid(content)
		return "", diag.DecodeFailure(diag.IODecodeFailure, path,
			fmt.Sprintf("could not decode source file %s: invalid UTF-8 at byte %d", path, off))
	}
	trace.Point(trace.FromContext(ctx), trace.ScopeFile, "file:"+path,
		fmt.Sprintf("%d bytes", len(content)), trace.ParentSpan(ctx))
	return string(content), nil
}

func firstInvalid(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
