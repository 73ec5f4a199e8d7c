package diag

import (
	"errors"
	"fmt"
	"slices"
)

// Diagnostic is an immutable failure value. The zero value is not useful;
// build one with Fatal, Problem, Plain, NotFound or DecodeFailure.
type Diagnostic struct {
	kind      Kind
	code      Code
	message   string
	solutions []string
	path      string
	cause     error
}

func newDiagnostic(kind Kind, code Code, msg string) *Diagnostic {
	return &Diagnostic{kind: kind, code: code, message: msg}
}

// Fatal reports an internal failure that must stop the whole run.
func Fatal(code Code, msg string) *Diagnostic {
	return newDiagnostic(KindFatal, code, msg)
}

// Fatalf is Fatal with a format string.
func Fatalf(code Code, format string, args ...any) *Diagnostic {
	return newDiagnostic(KindFatal, code, fmt.Sprintf(format, args...))
}

// Problem reports a user-level error. Solutions keep the order given; none at
// all is fine.
func Problem(code Code, msg string, solutions ...string) *Diagnostic {
	d := newDiagnostic(KindProblem, code, msg)
	d.solutions = slices.Clone(solutions)
	if d.solutions == nil {
		d.solutions = []string{}
	}
	return d
}

// Plain reports a generic message.
func Plain(msg string) *Diagnostic {
	return newDiagnostic(KindPlain, UnknownCode, msg)
}

// NotFound reports a file or module that could not be located.
func NotFound(code Code, path, msg string) *Diagnostic {
	d := newDiagnostic(KindNotFound, code, msg)
	d.path = path
	return d
}

// DecodeFailure reports content that is not valid text.
func DecodeFailure(code Code, path, msg string) *Diagnostic {
	d := newDiagnostic(KindDecodeFailure, code, msg)
	d.path = path
	return d
}

// WithPath returns a copy of d with the subject path set.
func (d *Diagnostic) WithPath(path string) *Diagnostic {
	if d == nil {
		return nil
	}
	cp := *d
	cp.path = path
	return &cp
}

// WithCause returns a copy of d that wraps err.
func (d *Diagnostic) WithCause(err error) *Diagnostic {
	if d == nil {
		return nil
	}
	cp := *d
	cp.cause = err
	return &cp
}

func (d *Diagnostic) Kind() Kind      { return d.kind }
func (d *Diagnostic) Code() Code      { return d.code }
func (d *Diagnostic) Message() string { return d.message }
func (d *Diagnostic) Path() string    { return d.path }

// Solutions returns a copy of the suggested fixes in their original order.
func (d *Diagnostic) Solutions() []string {
	return slices.Clone(d.solutions)
}

// Error implements error. Only the message is returned; prefixes and colors
// are the job of the renderer.
func (d *Diagnostic) Error() string { return d.message }

func (d *Diagnostic) Unwrap() error { return d.cause }

// As extracts a *Diagnostic from an error chain.
func As(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) && d != nil {
		return d, true
	}
	return nil, false
}

// Wrap converts an arbitrary error into a Diagnostic. Diagnostics pass
// through untouched; anything else becomes Fatal.
func Wrap(err error) *Diagnostic {
	if err == nil {
		return nil
	}
	if d, ok := As(err); ok {
		return d
	}
	return Fatal(InternalForeignErr, err.Error()).WithCause(err)
}
