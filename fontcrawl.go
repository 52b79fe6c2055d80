package fontcrawl

import (
	"fmt"
	"io"

	"github.com/go-rod/rod"
	"github.com/npillmayer/fontcrawl/crawl"
	"github.com/npillmayer/fontcrawl/dom/style/cssom"
	"github.com/npillmayer/fontcrawl/dom/styledom"
	"github.com/npillmayer/fontcrawl/dom/styledtree"
	"github.com/npillmayer/fontcrawl/frame"
	"github.com/npillmayer/fontcrawl/rodhost"
	"github.com/npillmayer/fontcrawl/variant"
)

// CrawlHTML parses an HTML document and crawls its body synchronously.
// Additional stylesheets are applied after the ones embedded in the document.
//
// Errors in stylesheets are not fatal: they are traced, and the crawl uses
// whatever could be parsed.
func CrawlHTML(r io.Reader, settings crawl.Settings, sheets ...cssom.StyleSheet) (*variant.Usage, error) {
	doc, err := styledom.Parse(r, sheets...)
	if doc == nil {
		return nil, err
	}
	if err != nil {
		tracer().Errorf("stylesheet errors: %v", err)
	}
	return HTMLCrawler(doc, nil, settings, false).Crawl()
}

// HTMLCrawler creates a crawler for the body of a styled document.
// If visibleOnly is set, entries for elements not displayed are dropped.
// frames may be nil for synchronous crawls.
func HTMLCrawler(doc *styledom.Document, frames frame.Requester, settings crawl.Settings,
	visibleOnly bool) *crawl.Crawler[*styledtree.StyNode] {
	//
	conf := crawl.FromSettings[*styledtree.StyNode](settings)
	if visibleOnly {
		conf.Filter = func(el *styledtree.StyNode, _ string) bool {
			return doc.Displayed(el)
		}
	}
	return crawl.New[*styledtree.StyNode](doc, frames, doc.Body(), conf)
}

// BrowserCrawler creates a crawler for a page loaded in a browser,
// starting at the <html> element.
// If visibleOnly is set, entries for elements not displayed are dropped.
func BrowserCrawler(h *rodhost.Host, frames frame.Requester, settings crawl.Settings,
	visibleOnly bool) (*crawl.Crawler[*rod.Element], error) {
	//
	root, err := h.Root()
	if err != nil {
		return nil, fmt.Errorf("fontcrawl: %w", err)
	}
	conf := crawl.FromSettings[*rod.Element](settings)
	if visibleOnly {
		conf.Filter = func(el *rod.Element, _ string) bool {
			return h.Displayed(el)
		}
	}
	return crawl.New[*rod.Element](h, frames, root, conf), nil
}
