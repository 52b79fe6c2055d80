/*
Package rodhost implements a crawl host for pages loaded in a browser.

Elements are handles to DOM nodes of a page controlled by go-rod over the
Chrome DevTools Protocol. Computed styles come from the browser's
`getComputedStyle`, i.e. they reflect everything the browser knows about,
including external stylesheets, media queries and scripts.

Every call of a host method is a round trip to the browser. Crawling a
large page with a frame budget keeps the round trips of a frame bounded.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rodhost

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontcrawl.rod'.
func tracer() tracing.Trace {
	return tracing.Select("fontcrawl.rod")
}
