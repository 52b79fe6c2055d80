package entry

import "fmt"

// Entry is a sampling unit: an element together with an optional
// pseudo-element. Pseudo is empty for the element itself, or a normalized
// pseudo-element selector like "::before".
type Entry[E comparable] struct {
	Element E
	Pseudo  string
}

// IsPseudo is true if e denotes a pseudo-element.
func (e Entry[E]) IsPseudo() bool {
	return e.Pseudo != ""
}

func (e Entry[E]) String() string {
	if e.Pseudo == "" {
		return fmt.Sprintf("(%v)", e.Element)
	}
	return fmt.Sprintf("(%v %s)", e.Element, e.Pseudo)
}

// Host is the interface a document implementation has to provide for entry
// collection. Element handles are borrowed for the duration of a crawl;
// Host implementations must not mutate the tree.
type Host[E comparable] interface {
	// QueryAll returns all descendents of root matching a selector, in document order.
	QueryAll(root E, selector string) ([]E, error)
	// Matches checks an element against a selector.
	Matches(el E, selector string) (bool, error)
	// ChildTexts returns the content of all direct text-node children of el.
	ChildTexts(el E) ([]string, error)
	// TextContent returns the text of el and all its descendents.
	TextContent(el E) (string, error)
}

// TextPolicy determines how elements are checked for text content.
type TextPolicy uint8

// Text policies for the element filter stage.
const (
	// TextStrict keeps elements with at least one text-node child whose trimmed
	// content is non-empty. A whitespace-only text node still counts if the
	// trimmed text content of its parent element is non-empty.
	TextStrict TextPolicy = iota
	// TextSimple keeps elements having any text-node child.
	TextSimple
	// TextIgnore disables the text check.
	TextIgnore
)

func (p TextPolicy) String() string {
	switch p {
	case TextStrict:
		return "strict"
	case TextSimple:
		return "simple"
	case TextIgnore:
		return "ignore"
	}
	return fmt.Sprintf("TextPolicy(%d)", p)
}

// ParseTextPolicy returns a text policy from its name. An empty name yields
// the default TextStrict.
func ParseTextPolicy(name string) (TextPolicy, error) {
	switch name {
	case "", "strict":
		return TextStrict, nil
	case "simple":
		return TextSimple, nil
	case "ignore", "none":
		return TextIgnore, nil
	}
	return TextStrict, fmt.Errorf("unknown text policy: %q", name)
}

// DefaultSelector is used for selection if Options.Selector is empty.
const DefaultSelector = "*"

// Options configure entry collection. The zero value selects every
// descendent element of the root which carries text.
type Options[E comparable] struct {
	Selector    string          // selection expression, defaults to "*"
	IncludeRoot bool            // prepend the traversal root to the selection
	Include     string          // elements matching this selector are always kept
	IncludeFunc func(el E) bool // predicate variant of Include
	Exclude     string          // elements matching this selector are dropped, unless included
	ExcludeFunc func(el E) bool // predicate variant of Exclude
	TextPolicy  TextPolicy      // text-node presence check
	Pseudo      PseudoSpec[E]   // pseudo-elements to sample in addition to elements

	// Filter is applied to every entry; entries for which it returns false are
	// dropped. A nil Filter keeps everything.
	Filter func(el E, pseudo string) bool
}
