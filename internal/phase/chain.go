package phase

import (
	"context"

	"orbit/internal/session"
)

// Separator joins constituent identifiers in a chain identifier.
const Separator = "->"

// Chain runs In and then Out. It is itself a Phase[I, O].
type Chain[I, M, O any] struct {
	id  string
	in  Phase[I, M]
	out Phase[M, O]
}

// NewChain composes in and out. Both must be bound to the same Session;
// anything else is a wiring bug and panics.
func NewChain[I, M, O any](in Phase[I, M], out Phase[M, O]) *Chain[I, M, O] {
	if in == nil || out == nil {
		panic("phase: nil phase in chain")
	}
	if in.Session() != out.Session() {
		panic("phase: chain " + in.ID() + Separator + out.ID() + " spans two sessions")
	}
	return &Chain[I, M, O]{
		id:  in.ID() + Separator + out.ID(),
		in:  in,
		out: out,
	}
}

func (c *Chain[I, M, O]) ID() string                { return c.id }
func (c *Chain[I, M, O]) Session() *session.Session { return c.in.Session() }
func (c *Chain[I, M, O]) Input() Phase[I, M]        { return c.in }
func (c *Chain[I, M, O]) Output() Phase[M, O]       { return c.out }

// Execute runs In to completion, then Out on its result. If In fails, Out
// never runs and In's error is returned as is.
func (c *Chain[I, M, O]) Execute(ctx context.Context, in I) (O, error) {
	mid, err := c.in.Execute(ctx, in)
	if err != nil {
		var zero O
		return zero, err
	}
	return c.out.Execute(ctx, mid)
}
