package entry

import (
	"strings"
	"unicode"
)

type pseudoKind uint8

const (
	pseudoNone pseudoKind = iota
	pseudoDelimited
	pseudoList
	pseudoFunc
)

// PseudoSpec is an option type for the pseudo-element configuration of entry
// collection. It is one of
//
//	None
//	| Delimited "before,after"
//	| List ["before", "after"]
//	| PerElement func(E) []string
//
// The zero value is None.
type PseudoSpec[E comparable] struct {
	delimited string
	list      []string
	perElem   func(E) []string
	kind      pseudoKind
}

// NoPseudo creates a pseudo spec which does not expand any pseudo-elements.
func NoPseudo[E comparable]() PseudoSpec[E] {
	return PseudoSpec[E]{}
}

// PseudoString creates a pseudo spec from a list of names delimited by
// commas or whitespace, e.g. "before, after" or "::before ::marker".
func PseudoString[E comparable](names string) PseudoSpec[E] {
	return PseudoSpec[E]{kind: pseudoDelimited, delimited: names}
}

// PseudoList creates a pseudo spec from an explicit list of names.
func PseudoList[E comparable](names ...string) PseudoSpec[E] {
	return PseudoSpec[E]{kind: pseudoList, list: append([]string(nil), names...)}
}

// PseudoFunc creates a pseudo spec which computes the pseudo-element names per
// element. A nil function is equivalent to NoPseudo.
func PseudoFunc[E comparable](f func(el E) []string) PseudoSpec[E] {
	if f == nil {
		return NoPseudo[E]()
	}
	return PseudoSpec[E]{kind: pseudoFunc, perElem: f}
}

// IsNone is true if spec will never produce pseudo-element entries.
func (spec PseudoSpec[E]) IsNone() bool {
	return spec.kind == pseudoNone
}

// Resolve returns the normalized pseudo-element selectors for an element.
// Names are stripped of leading colons and prefixed with "::". Empty names are
// dropped, the order of names is kept.
func (spec PseudoSpec[E]) Resolve(el E) []string {
	var names []string
	switch m := spec.Match(); m {
	case m.Delimited(nil):
		names = strings.FieldsFunc(spec.delimited, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
	case m.List(nil):
		names = spec.list
	case m.PerElement(nil):
		names = spec.perElem(el)
	default:
		return nil
	}
	norm := make([]string, 0, len(names))
	for _, name := range names {
		if n := NormalizePseudo(name); n != "" {
			norm = append(norm, n)
		}
	}
	return norm
}

// NormalizePseudo normalizes a pseudo-element name into its double-colon form:
//
//	"before"    => "::before"
//	":after"    => "::after"
//	"::marker"  => "::marker"
//
// An empty (or colon-only) name returns "".
func NormalizePseudo(name string) string {
	n := strings.TrimLeft(strings.TrimSpace(name), ":")
	if n == "" {
		return ""
	}
	return "::" + n
}

// --- Matching --------------------------------------------------------------

// Match starts a pattern match on a pseudo spec:
//
//	var names string
//	switch m := spec.Match(); m {
//	case m.Delimited(&names):
//	    …
//	case m.None():
//	    …
//	}
func (spec PseudoSpec[E]) Match() *PseudoMatcher[E] {
	return &PseudoMatcher[E]{spec: spec}
}

// PseudoMatcher is part of pattern matching for PseudoSpec and intended to be
// instantiated using PseudoSpec.Match only.
type PseudoMatcher[E comparable] struct {
	spec PseudoSpec[E]
}

// None matches a spec which does not expand pseudo-elements.
func (m *PseudoMatcher[E]) None() *PseudoMatcher[E] {
	if m.spec.kind == pseudoNone {
		return m
	}
	return nil
}

// Delimited matches a spec created by PseudoString.
func (m *PseudoMatcher[E]) Delimited(s *string) *PseudoMatcher[E] {
	if m.spec.kind == pseudoDelimited {
		if s != nil {
			*s = m.spec.delimited
		}
		return m
	}
	return nil
}

// List matches a spec created by PseudoList.
func (m *PseudoMatcher[E]) List(l *[]string) *PseudoMatcher[E] {
	if m.spec.kind == pseudoList {
		if l != nil {
			*l = m.spec.list
		}
		return m
	}
	return nil
}

// PerElement matches a spec created by PseudoFunc.
func (m *PseudoMatcher[E]) PerElement(f *func(E) []string) *PseudoMatcher[E] {
	if m.spec.kind == pseudoFunc {
		if f != nil {
			*f = m.spec.perElem
		}
		return m
	}
	return nil
}
