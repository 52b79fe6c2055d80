package styledom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/fontcrawl/dom/style"
	"github.com/npillmayer/fontcrawl/dom/style/css"
	"github.com/npillmayer/fontcrawl/dom/styledtree"
	"github.com/npillmayer/fontcrawl/variant"
	"golang.org/x/net/html"
)

// compile returns the compiled selector group for a selector, caching it.
// Selectors with pseudo-elements are rejected, as they cannot match elements.
func (doc *Document) compile(selector string) (cascadia.SelectorGroup, error) {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	if group, ok := doc.selectors[selector]; ok {
		return group, nil
	}
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("styledom: invalid selector %q: %w", selector, err)
	}
	doc.selectors[selector] = group
	return group, nil
}

// QueryAll returns all styled descendants of root matching a CSS selector,
// in document order. Root itself is never part of the result.
func (doc *Document) QueryAll(root *styledtree.StyNode, selector string) ([]*styledtree.StyNode, error) {
	if !doc.contains(root) {
		return nil, ErrDetached
	}
	if _, err := doc.compile(selector); err != nil {
		return nil, err
	}
	found := goquery.NewDocumentFromNode(root.HTMLNode()).Find(selector).Nodes
	result := make([]*styledtree.StyNode, 0, len(found))
	for _, h := range found {
		if sn, ok := doc.nodes[h]; ok {
			result = append(result, sn)
		}
	}
	tracer().Debugf("styledom: %q selects %d nodes below %s", selector, len(result), root)
	return result, nil
}

// QueryFirst returns the first styled descendant of root matching a CSS
// selector, or nil.
func (doc *Document) QueryFirst(root *styledtree.StyNode, selector string) (*styledtree.StyNode, error) {
	if !doc.contains(root) {
		return nil, ErrDetached
	}
	if _, err := doc.compile(selector); err != nil {
		return nil, err
	}
	sel := goquery.NewDocumentFromNode(root.HTMLNode()).Find(selector).First()
	if sel.Length() == 0 {
		return nil, nil
	}
	return doc.nodes[sel.Get(0)], nil
}

// Matches checks if a styled node matches a CSS selector.
func (doc *Document) Matches(el *styledtree.StyNode, selector string) (bool, error) {
	if !doc.contains(el) {
		return false, ErrDetached
	}
	group, err := doc.compile(selector)
	if err != nil {
		return false, err
	}
	return group.Match(el.HTMLNode()), nil
}

// ChildTexts returns the content of the text nodes which are direct children
// of el, in document order.
func (doc *Document) ChildTexts(el *styledtree.StyNode) ([]string, error) {
	if !doc.contains(el) {
		return nil, ErrDetached
	}
	var texts []string
	for ch := el.HTMLNode().FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			texts = append(texts, ch.Data)
		}
	}
	return texts, nil
}

// TextContent returns the concatenated text of all descendant text nodes
// of el, like DOM's `textContent`.
func (doc *Document) TextContent(el *styledtree.StyNode) (string, error) {
	if !doc.contains(el) {
		return "", ErrDetached
	}
	var b strings.Builder
	collectText(&b, el.HTMLNode())
	return b.String(), nil
}

func collectText(b *strings.Builder, h *html.Node) {
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		switch ch.Type {
		case html.TextNode:
			b.WriteString(ch.Data)
		case html.ElementNode:
			collectText(b, ch)
		}
	}
}

// ComputedFont returns the computed font family, weight and style of an
// element or one of its pseudo-elements. Pseudo is either empty or in
// normalized form, e.g. "::before".
//
// Weights are reported as numbers, e.g. "700" for bold.
func (doc *Document) ComputedFont(el *styledtree.StyNode, pseudo string) (variant.Face, error) {
	if !doc.contains(el) {
		return variant.Face{}, ErrDetached
	}
	props := make([]string, len(style.FontProperties))
	for i, key := range style.FontProperties {
		p, err := css.GetPseudoProperty(el, pseudo, key)
		if err != nil {
			return variant.Face{}, fmt.Errorf("styledom: computing %s for %s%s: %w", key, el, pseudo, err)
		}
		props[i] = p.String()
	}
	return variant.Face{Family: props[0], Weight: props[1], Style: props[2]}, nil
}

// Displayed is false if an element, or any of its ancestors, computes to
// `display: none`. Elements of other documents are never displayed.
func (doc *Document) Displayed(el *styledtree.StyNode) bool {
	if !doc.contains(el) {
		return false
	}
	for sn := el; sn != nil && sn != doc.root; sn = sn.ParentNode() {
		if css.DisplayModeOf(sn).IsNone() {
			return false
		}
	}
	return true
}
