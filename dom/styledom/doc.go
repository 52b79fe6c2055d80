/*
Package styledom implements a crawl host for static HTML documents.

A Document is built from an HTML parse tree and a set of CSS stylesheets.
Building a document computes the font properties for every element and
for every pseudo-element some rule has been declared for. Style sources
are, in cascading order:

	- user-agent presentational defaults (e.g. <b> is bolder, <em> is italic)
	- <style> elements of the document, in document order
	- stylesheets handed to Parse or FromHTML
	- inline `style` attributes

Declarations are ordered by importance, origin, selector specificity and
source order. Font properties are inherited; `inherit`, `initial`, `unset`
and relative weights (`bolder`, `lighter`) are resolved against the parent.
The `font` shorthand is expanded into its longhand properties.

Selection of elements uses goquery, and selectors are matched with cascadia.

There is no layout involved: a Document knows nothing about fonts being
available, generated content or viewport dependent media queries.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontcrawl.dom'.
func tracer() tracing.Trace {
	return tracing.Select("fontcrawl.dom")
}
