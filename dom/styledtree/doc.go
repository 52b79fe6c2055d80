/*
Package styledtree is a straightforward default implementation of a styled document tree.

Overview

A styled tree mirrors the element nodes of an HTML parse tree. Every
styled node links to its HTML node and carries the style properties
computed for it, plus the properties computed for its pseudo-elements
(e.g. "::before").

Styled trees are built by package styledom. Property lookup respecting
inheritance is done with package css.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontcrawl.dom'.
func tracer() tracing.Trace {
	return tracing.Select("fontcrawl.dom")
}
