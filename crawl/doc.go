/*
Package crawl computes the font-usage map of a document.

A Crawler drives the entry pipeline (package entry), samples every entry for
its computed font and folds the results into a font-usage map (package
variant). Crawls run either synchronously with Crawl, or incrementally with
CrawlAsync, where work is spread across frames of a frame scheduler (package
frame) to not block a rendering thread for long.

State Machine

A Crawler is either idle or has one asynchronous crawl pending:

    Idle ──CrawlAsync──▶ Pending ──queue exhausted──▶ Idle (onDone fires)
                         Pending ──Clear───────────▶ Idle (onDone never fires)

Starting a crawl (synchronous or asynchronous) while another one is pending
fails with ErrBusy. The pending crawl is not affected by this.

Budgets

Each frame callback of an asynchronous crawl (a slice) processes entries
until its budget is used up. A time budget re-checks the elapsed time after
every entry and yields when the configured interval (default 16ms, one frame
at 60Hz) is reached. A count budget processes a fixed maximum number of
entries per slice.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package crawl

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontcrawl.crawl'.
func tracer() tracing.Trace {
	return tracing.Select("fontcrawl.crawl")
}
