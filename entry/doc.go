/*
Package entry discovers the surfaces of a document which have to be sampled
for fonts.

An entry is an element paired with an optional pseudo-element selector, i.e.
it denotes exactly one surface able to render text. Entries are collected by
a small pipeline of stages, each preserving the relative order of its input:

    selection → element filter → materialize → pseudo-expand → entry filter

Selection runs a selector query under a root element. Element filtering keeps
elements carrying text (with either a strict or a simple notion of "text"),
unless an include or exclude rule decides otherwise. Pseudo expansion appends
entries for pseudo-elements like ::before and ::after, and a client predicate
may drop entries at the end.

The pipeline is independent of a concrete document implementation. Clients
provide access to their element tree through interface Host.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package entry

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontcrawl.entry'.
func tracer() tracing.Trace {
	return tracing.Select("fontcrawl.entry")
}
