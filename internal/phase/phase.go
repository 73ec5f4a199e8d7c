// Package phase composes compilation stages into pipelines.
//
// A Phase turns an input of type I into an output of type O, or fails with a
// *diag.Diagnostic. Every phase is bound to exactly one Session and one
// identifier for its whole lifetime. Chain glues two phases whose types line
// up into a new Phase, so pipelines are built by nesting chains:
//
//	read := source.NewResolver(sess, "read")
//	scan := driver.NewScanner(sess, "scan", nil)
//	p := phase.NewChain(read, scan) // "read->scan"
//
// A type mismatch between the two halves of a chain does not compile.
package phase

import (
	"context"

	"orbit/internal/session"
)

// Phase is a typed unit of work.
type Phase[I, O any] interface {
	// ID returns the identifier the phase was constructed with.
	ID() string
	// Session returns the session the phase is bound to.
	Session() *session.Session
	// Execute transforms in. A non-nil error is a *diag.Diagnostic.
	Execute(ctx context.Context, in I) (O, error)
}

// Constructor is the shape every phase implementation exposes to the driver.
type Constructor[I, O any] func(sess *session.Session, id string) Phase[I, O]

// Base carries the session and identifier. Embed it in concrete phases.
type Base struct {
	id   string
	sess *session.Session
}

// NewBase binds a phase to sess under id. A nil session or an empty id is a
// wiring bug and panics.
func NewBase(sess *session.Session, id string) Base {
	if sess == nil {
		panic("phase: nil session for phase " + id)
	}
	if id == "" {
		panic("phase: empty phase identifier")
	}
	return Base{id: id, sess: sess}
}

func (b Base) ID() string                { return b.id }
func (b Base) Session() *session.Session { return b.sess }
