package diag

// Kind classifies a diagnostic.
type Kind uint8

const (
	// KindPlain is a generic message with no special handling.
	KindPlain Kind = iota
	// KindProblem is a user source-level error carrying suggested solutions.
	KindProblem
	// KindNotFound reports that a file or module could not be located.
	KindNotFound
	// KindDecodeFailure reports bytes that are not valid text.
	KindDecodeFailure
	// KindFatal is the internal/compiler-bug class: stop, do not recover.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindProblem:
		return "problem"
	case KindNotFound:
		return "not-found"
	case KindDecodeFailure:
		return "decode-failure"
	case KindFatal:
		return "fatal"
	}
	return "unknown"
}

// IsFatal reports whether the kind must abort everything.
func (k Kind) IsFatal() bool { return k == KindFatal }
