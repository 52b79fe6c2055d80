package rodhost

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/npillmayer/fontcrawl/variant"
)

// Host implements the crawler host interfaces for a browser page.
type Host struct {
	ctx  context.Context
	page *rod.Page
}

// New creates a host for a loaded page. All browser calls are bound to ctx.
func New(ctx context.Context, page *rod.Page) *Host {
	return &Host{ctx: ctx, page: page}
}

// Page returns the page of the host.
func (h *Host) Page() *rod.Page {
	return h.page
}

// Root returns the root element, i.e. <html>.
func (h *Host) Root() (*rod.Element, error) {
	el, err := h.page.Context(h.ctx).Element("html")
	if err != nil {
		return nil, fmt.Errorf("rodhost: root element: %w", err)
	}
	return el, nil
}

// QueryAll returns the descendants of root matching a selector, in
// document order.
func (h *Host) QueryAll(root *rod.Element, selector string) ([]*rod.Element, error) {
	els, err := root.Context(h.ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("rodhost: %q selects %d elements", selector, len(els))
	return []*rod.Element(els), nil
}

// Matches checks an element against a selector.
func (h *Host) Matches(el *rod.Element, selector string) (bool, error) {
	return el.Context(h.ctx).Matches(selector)
}

const childTextsJS = `() => Array.from(this.childNodes)
	.filter(n => n.nodeType === Node.TEXT_NODE)
	.map(n => n.textContent)`

// ChildTexts returns the content of the direct text node children of el.
func (h *Host) ChildTexts(el *rod.Element) ([]string, error) {
	res, err := el.Context(h.ctx).Eval(childTextsJS)
	if err != nil {
		return nil, err
	}
	arr := res.Value.Arr()
	texts := make([]string, len(arr))
	for i, v := range arr {
		texts[i] = v.Str()
	}
	return texts, nil
}

// TextContent returns the `textContent` of el.
func (h *Host) TextContent(el *rod.Element) (string, error) {
	res, err := el.Context(h.ctx).Eval(`() => this.textContent || ""`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

const computedFontJS = `(pseudo) => {
	const s = window.getComputedStyle(this, pseudo || null);
	return { family: s.fontFamily, weight: s.fontWeight, style: s.fontStyle };
}`

// ComputedFont returns the computed font of an element or one of its
// pseudo-elements (e.g. "::before").
func (h *Host) ComputedFont(el *rod.Element, pseudo string) (variant.Face, error) {
	res, err := el.Context(h.ctx).Eval(computedFontJS, pseudo)
	if err != nil {
		return variant.Face{}, err
	}
	return variant.Face{
		Family: res.Value.Get("family").Str(),
		Weight: res.Value.Get("weight").Str(),
		Style:  res.Value.Get("style").Str(),
	}, nil
}

const displayedJS = `() => {
	for (let e = this; e; e = e.parentElement) {
		if (window.getComputedStyle(e).display === "none") return false;
	}
	return true;
}`

// Displayed is false if an element or one of its ancestors computes to
// `display: none`. Browser errors count as not displayed.
func (h *Host) Displayed(el *rod.Element) bool {
	res, err := el.Context(h.ctx).Eval(displayedJS)
	if err != nil {
		tracer().Debugf("rodhost: display check failed: %v", err)
		return false
	}
	return res.Value.Bool()
}
