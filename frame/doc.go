/*
Package frame provides animation-frame style scheduling primitives.

Clients request a callback to run with the next frame and may cancel a
request before it runs. Callbacks requested while a frame is executing are
deferred to the following frame, as with requestAnimationFrame in browsers.
All callbacks of a Queue run one after another on a single goroutine, i.e.
there is no parallel execution of callbacks.

Queue is a manually driven frame queue, well suited for tests and for clients
having an event loop of their own. Loop drives a Queue from a ticker.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frame

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontcrawl.frame'.
func tracer() tracing.Trace {
	return tracing.Select("fontcrawl.frame")
}
