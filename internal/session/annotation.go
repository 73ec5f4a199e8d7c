package session

import (
	"slices"
	"strings"
)

// Annotation is metadata produced by one phase for another. Only the phase
// whose identifier equals TargetPhase consumes it.
type Annotation interface {
	ID() string
	TargetPhase() string
	Equal(other Annotation) bool
}

// Pragma is the annotation produced by a `#pragma <target> <name> [args]`
// source line.
type Pragma struct {
	Name   string
	Target string
	Args   []string
}

func (p Pragma) ID() string          { return p.Name }
func (p Pragma) TargetPhase() string { return p.Target }

// Equal compares name, target and arguments.
func (p Pragma) Equal(other Annotation) bool {
	o, ok := other.(Pragma)
	if !ok {
		return false
	}
	return p.Name == o.Name && p.Target == o.Target && slices.Equal(p.Args, o.Args)
}

func (p Pragma) String() string {
	var b strings.Builder
	b.WriteString("#pragma ")
	b.WriteString(p.Target)
	b.WriteByte(' ')
	b.WriteString(p.Name)
	for _, a := range p.Args {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	return b.String()
}

// AddAnnotation appends a.
func (s *Session) AddAnnotation(a Annotation) {
	if a == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.annotations = append(s.annotations, a)
}

// AnnotationsFor returns the annotations whose target is phaseID, in the order
// they were added. The result is empty when nothing matches.
func (s *Session) AnnotationsFor(phaseID string) []Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Annotation, 0)
	for _, a := range s.annotations {
		if a.TargetPhase() == phaseID {
			out = append(out, a)
		}
	}
	return out
}

// Annotations returns every annotation in push order.
func (s *Session) Annotations() []Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.annotations)
}

// HasAnnotation reports whether an annotation Equal to a was already added.
func (s *Session) HasAnnotation(a Annotation) bool {
	if a == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.annotations, a.Equal)
}
