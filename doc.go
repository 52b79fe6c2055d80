/*
Package fontcrawl computes which font variants a document actually renders.

For every font family in use, a crawl reports the set of weight/style
variants (e.g. "400", "700i") found on the elements and pseudo-elements of
a sub-tree. Clients use this to subset or preload exactly the font files
a page needs.

The crawling core lives in package crawl and may run synchronously or
in frame-budgeted slices. It is independent of the kind of document:
package styledom implements a host for static HTML with CSS, package
rodhost one for pages loaded in a browser. This package ties them
together for the common cases.

	usage, err := fontcrawl.CrawlHTML(r, crawl.Settings{TextPolicy: "simple"})
	…
	fmt.Println(usage) // Georgia: [400 400i 700]

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontcrawl

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontcrawl'.
func tracer() tracing.Trace {
	return tracing.Select("fontcrawl")
}
