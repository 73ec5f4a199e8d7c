package session

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Convention is a calling-convention / name-mangling policy.
type Convention interface {
	Name() string
	Mangle(ident string) string
}

// PlainConvention keeps identifiers as they are (C linkage).
type PlainConvention struct{}

func (PlainConvention) Name() string               { return "c" }
func (PlainConvention) Mangle(ident string) string { return ident }

// OrbitConvention produces length-prefixed symbols:
//
//	main            -> _O4mainE
//	math.vec::dot   -> _O4math3vec3dotE
//
// Identifiers are NFC-normalised first so that canonically equivalent
// spellings mangle to the same symbol. Lengths count bytes.
type OrbitConvention struct{}

func (OrbitConvention) Name() string { return "orbit" }

func (OrbitConvention) Mangle(ident string) string {
	ident = norm.NFC.String(ident)
	segs := splitQualified(ident)
	var b strings.Builder
	b.Grow(len(ident) + 4 + 2*len(segs))
	b.WriteString("_O")
	for _, seg := range segs {
		b.WriteString(strconv.Itoa(len(seg)))
		b.WriteString(seg)
	}
	b.WriteByte('E')
	return b.String()
}

func splitQualified(ident string) []string {
	ident = strings.ReplaceAll(ident, "::", ".")
	parts := strings.Split(ident, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var conventions = map[string]Convention{
	PlainConvention{}.Name(): PlainConvention{},
	OrbitConvention{}.Name(): OrbitConvention{},
}

// LookupConvention returns the built-in convention registered under name.
func LookupConvention(name string) (Convention, bool) {
	c, ok := conventions[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ConventionNames lists the built-in conventions, sorted.
func ConventionNames() []string {
	names := make([]string, 0, len(conventions))
	for n := range conventions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
