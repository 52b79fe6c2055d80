package styledtree

import (
	"sort"

	"github.com/npillmayer/fontcrawl/dom/style"
	"github.com/npillmayer/fontcrawl/tree"
	"golang.org/x/net/html"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	htmlNode            *html.Node
	computedStyles      *style.PropertyMap
	pseudoStyles        map[string]*style.PropertyMap
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
func NewNodeForHTMLNode(html *html.Node) *tree.Node[*StyNode] {
	sn := &StyNode{}
	sn.Payload = sn // Payload will always reference the node itself
	sn.htmlNode = html
	return &sn.Node
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.Payload.htmlNode
}

// ParentNode returns the styled parent node, or nil for the root.
func (sn *StyNode) ParentNode() *StyNode {
	if sn == nil {
		return nil
	}
	return Node(sn.Parent())
}

// ChildNodes returns the styled children of a node, in document order.
func (sn *StyNode) ChildNodes() []*StyNode {
	children := sn.Children()
	nodes := make([]*StyNode, len(children))
	for i, ch := range children {
		nodes[i] = Node(ch)
	}
	return nodes
}

// Styles returns the style properties computed for this node.
func (sn *StyNode) Styles() *style.PropertyMap {
	if sn == nil {
		return nil
	}
	return sn.computedStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.PropertyMap) {
	sn.computedStyles = styles
}

// PseudoStyles returns the style properties computed for a pseudo-element
// of this node, or nil. Pseudo is given in normalized form, e.g. "::before".
func (sn *StyNode) PseudoStyles(pseudo string) *style.PropertyMap {
	if sn == nil || sn.pseudoStyles == nil {
		return nil
	}
	return sn.pseudoStyles[pseudo]
}

// SetPseudoStyles sets the styling properties for a pseudo-element of
// a styled node. A nil property map removes the pseudo-element styles.
func (sn *StyNode) SetPseudoStyles(pseudo string, styles *style.PropertyMap) {
	if styles == nil {
		delete(sn.pseudoStyles, pseudo)
		return
	}
	if sn.pseudoStyles == nil {
		sn.pseudoStyles = make(map[string]*style.PropertyMap)
	}
	sn.pseudoStyles[pseudo] = styles
}

// Pseudos returns the names of all pseudo-elements with styles set, sorted.
func (sn *StyNode) Pseudos() []string {
	names := make([]string, 0, len(sn.pseudoStyles))
	for name := range sn.pseudoStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (sn *StyNode) String() string {
	if sn == nil || sn.htmlNode == nil {
		return "<nil>"
	}
	if sn.htmlNode.Type == html.DocumentNode {
		return "#document"
	}
	return "<" + sn.htmlNode.Data + ">"
}
