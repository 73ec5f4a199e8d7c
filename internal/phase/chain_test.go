package phase

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"orbit/internal/diag"
	"orbit/internal/session"
)

type atoi struct {
	Base
	calls int
}

func (p *atoi) Execute(_ context.Context, in string) (int, error) {
	p.calls++
	n, err := strconv.Atoi(in)
	if err != nil {
		return 0, diag.Problem(diag.UnknownCode, "not a number: "+in, "use digits only")
	}
	return n, nil
}

type itoa struct {
	Base
	calls int
}

func (p *itoa) Execute(_ context.Context, in int) (string, error) {
	p.calls++
	return strconv.Itoa(in), nil
}

func newPair(sess *session.Session) (*atoi, *itoa) {
	return &atoi{Base: NewBase(sess, "atoi")}, &itoa{Base: NewBase(sess, "itoa")}
}

func TestSinglePhase(t *testing.T) {
	a, _ := newPair(session.New(nil))
	got, err := a.Execute(context.Background(), "123")
	if err != nil || got != 123 {
		t.Fatalf("Execute = %d, %v", got, err)
	}
}

func TestChainComposes(t *testing.T) {
	sess := session.New(nil)
	a, b := newPair(sess)
	c := NewChain[string, int, string](a, b)

	got, err := c.Execute(context.Background(), "123")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	mid, _ := a.Execute(context.Background(), "123")
	want, _ := b.Execute(context.Background(), mid)
	if got != want || got != "123" {
		t.Fatalf("chain = %q, direct = %q", got, want)
	}
}

func TestChainShortCircuits(t *testing.T) {
	a, b := newPair(session.New(nil))
	c := NewChain[string, int, string](a, b)

	_, direct := a.Execute(context.Background(), "x")
	_, err := c.Execute(context.Background(), "x")
	if err == nil {
		t.Fatalf("expected failure")
	}
	if b.calls != 0 {
		t.Fatalf("second phase ran %d times", b.calls)
	}
	d, ok := diag.As(err)
	if !ok || d.Kind() != diag.KindProblem || d.Message() != direct.Error() {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestChainReturnsFirstErrorUnchanged(t *testing.T) {
	sess := session.New(nil)
	want := diag.Fatal(diag.InternalError, "boom")
	fail := NewFunc(sess, "fail", func(context.Context, *session.Session, string) (int, error) {
		return 0, want
	})
	_, b := newPair(sess)
	_, err := NewChain[string, int, string](fail, b).Execute(context.Background(), "")
	if err != error(want) {
		t.Fatalf("got %v (%T), want the exact diagnostic", err, err)
	}
}

func TestChainIdentifier(t *testing.T) {
	sess := session.New(nil)
	a, b := newPair(sess)
	c := NewChain[string, int, string](a, b)
	if c.ID() != "atoi->itoa" {
		t.Fatalf("ID = %q", c.ID())
	}
	a2 := &atoi{Base: NewBase(sess, "again")}
	nested := NewChain[string, int, int](NewChain[string, string, int](c, a2), NewFunc(sess, "double",
		func(_ context.Context, _ *session.Session, n int) (int, error) { return n * 2, nil }))
	if nested.ID() != "atoi->itoa->again->double" {
		t.Fatalf("nested ID = %q", nested.ID())
	}
	got, err := nested.Execute(context.Background(), "21")
	if err != nil || got != 42 {
		t.Fatalf("nested = %d, %v", got, err)
	}
}

func TestChainOrdersSessionWrites(t *testing.T) {
	sess := session.New(nil)
	var seenByB int
	first := NewFunc(sess, "first", func(_ context.Context, s *session.Session, in string) (string, error) {
		s.Warn("first", "from first")
		return in, nil
	})
	second := NewFunc(sess, "second", func(_ context.Context, s *session.Session, in string) (string, error) {
		seenByB = len(s.Warnings())
		s.Warn("second", "from second")
		return in, nil
	})
	if _, err := NewChain[string, string, string](first, second).Execute(context.Background(), ""); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if seenByB != 1 {
		t.Fatalf("second phase saw %d warnings, want 1", seenByB)
	}
	ws := sess.Warnings()
	if len(ws) != 2 || ws[0].Phase != "first" || ws[1].Phase != "second" {
		t.Fatalf("warnings = %+v", ws)
	}
}

func TestChainRejectsMixedSessions(t *testing.T) {
	a, _ := newPair(session.New(nil))
	_, b := newPair(session.New(nil))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewChain[string, int, string](a, b)
}

func TestNewBaseRejectsNilSession(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewBase(nil, "x")
}

func TestConstructorShape(t *testing.T) {
	var ctor Constructor[string, int] = func(sess *session.Session, id string) Phase[string, int] {
		return &atoi{Base: NewBase(sess, id)}
	}
	sess := session.New(nil)
	p := ctor(sess, "parse-int")
	if p.ID() != "parse-int" || p.Session() != sess {
		t.Fatalf("constructed phase not bound correctly")
	}
	if _, err := p.Execute(context.Background(), "nope"); !errors.As(err, new(*diag.Diagnostic)) {
		t.Fatalf("expected diagnostic, got %v", err)
	}
}
