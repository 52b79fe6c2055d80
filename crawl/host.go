package crawl

import (
	"github.com/npillmayer/fontcrawl/entry"
	"github.com/npillmayer/fontcrawl/variant"
)

// Sampler reads the computed font of an element, or of one of its
// pseudo-elements if pseudo is non-empty. Sampling must not mutate the tree.
// Errors (e.g., for detached elements) are passed on to crawl clients as is.
type Sampler[E comparable] interface {
	ComputedFont(el E, pseudo string) (variant.Face, error)
}

// Host is everything a crawler needs from a document implementation.
type Host[E comparable] interface {
	entry.Host[E]
	Sampler[E]
}
