package phase

import (
	"context"

	"orbit/internal/session"
)

// Func adapts an ordinary function into a Phase.
type Func[I, O any] struct {
	Base
	fn func(ctx context.Context, sess *session.Session, in I) (O, error)
}

// NewFunc binds fn to sess under id.
func NewFunc[I, O any](sess *session.Session, id string, fn func(ctx context.Context, sess *session.Session, in I) (O, error)) *Func[I, O] {
	if fn == nil {
		panic("phase: nil func for phase " + id)
	}
	return &Func[I, O]{Base: NewBase(sess, id), fn: fn}
}

func (f *Func[I, O]) Execute(ctx context.Context, in I) (O, error) {
	return f.fn(ctx, f.sess, in)
}
