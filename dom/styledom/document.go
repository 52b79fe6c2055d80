package styledom

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/fontcrawl/dom/style"
	"github.com/npillmayer/fontcrawl/dom/style/cssom"
	"github.com/npillmayer/fontcrawl/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/fontcrawl/dom/styledtree"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrDetached is returned for styled nodes which are not part of a document.
var ErrDetached = errors.New("styledom: node is not attached to document")

// Document is a styled HTML document. Once built, a document is immutable
// and may be queried from multiple goroutines.
type Document struct {
	html      *html.Node
	root      *styledtree.StyNode // styled node for the document node
	nodes     map[*html.Node]*styledtree.StyNode
	rules     []rule
	mx        sync.Mutex // guards selectors
	selectors map[string]cascadia.SelectorGroup
}

// Parse reads an HTML document and builds its styled tree. Additional
// stylesheets are appended to the ones found in <style> elements.
//
// Errors in stylesheets do not stop the styling. They are collected and
// returned together with the document. Parse returns a nil document only
// if the HTML cannot be read.
func Parse(r io.Reader, sheets ...cssom.StyleSheet) (*Document, error) {
	h, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("styledom: parsing HTML: %w", err)
	}
	return FromHTML(h, sheets...)
}

// FromHTML builds a styled document for an HTML parse tree. See Parse.
func FromHTML(h *html.Node, sheets ...cssom.StyleSheet) (*Document, error) {
	if h == nil {
		return nil, errors.New("styledom: empty HTML document")
	}
	doc := &Document{
		html:      h,
		nodes:     make(map[*html.Node]*styledtree.StyNode),
		selectors: make(map[string]cascadia.SelectorGroup),
	}
	embedded, errs := douceuradapter.ExtractStyleElements(h)
	order := 0
	for _, sheet := range embedded {
		order = doc.addRules(sheet, order)
	}
	for _, sheet := range sheets {
		if sheet != nil {
			order = doc.addRules(sheet, order)
		}
	}
	tracer().Debugf("styledom: %d style rules from %d stylesheets", len(doc.rules), len(embedded)+len(sheets))
	doc.root = styledtree.Node(styledtree.NewNodeForHTMLNode(h))
	doc.root.SetStyles(style.InitializeDefaultPropertyValues(nil))
	doc.nodes[h] = doc.root
	errs = multierr.Append(errs, doc.styleChildren(doc.root, order))
	n := doc.root.Enumerate()
	tracer().Infof("styledom: styled %d nodes", n-1)
	return doc, errs
}

// Root returns the styled node for the root element of the document,
// i.e. <html>.
func (doc *Document) Root() *styledtree.StyNode {
	for _, ch := range doc.root.ChildNodes() {
		if ch.HTMLNode().Type == html.ElementNode {
			return ch
		}
	}
	return doc.root
}

// Body returns the styled node for the <body> element, or the root element
// if the document has no body.
func (doc *Document) Body() *styledtree.StyNode {
	root := doc.Root()
	for _, ch := range root.ChildNodes() {
		if ch.HTMLNode().DataAtom == atom.Body {
			return ch
		}
	}
	return root
}

// HTML returns the HTML parse tree of the document.
func (doc *Document) HTML() *html.Node {
	return doc.html
}

// NodeFor returns the styled node for an HTML element node of the document.
func (doc *Document) NodeFor(h *html.Node) (*styledtree.StyNode, bool) {
	sn, ok := doc.nodes[h]
	return sn, ok
}

// Len returns the number of styled element nodes in the document.
func (doc *Document) Len() int {
	return len(doc.nodes) - 1
}

// contains checks if a styled node belongs to this document.
func (doc *Document) contains(sn *styledtree.StyNode) bool {
	if sn == nil || sn.HTMLNode() == nil {
		return false
	}
	if doc.nodes[sn.HTMLNode()] != sn {
		return false
	}
	return sn.Root() == &doc.root.Node
}

// styleChildren creates styled nodes for the element children of a styled
// node, top-down. Order is the source order for inline style declarations.
func (doc *Document) styleChildren(parent *styledtree.StyNode, order int) error {
	var errs error
	for h := parent.HTMLNode().FirstChild; h != nil; h = h.NextSibling {
		if h.Type != html.ElementNode {
			continue
		}
		sn := styledtree.Node(styledtree.NewNodeForHTMLNode(h))
		parent.AddChild(&sn.Node)
		doc.nodes[h] = sn
		errs = multierr.Append(errs, doc.styleNode(sn, parent, order))
		errs = multierr.Append(errs, doc.styleChildren(sn, order))
	}
	return errs
}
