/*
Package domdbg implements helpers to debug a styled document tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/fontcrawl/dom/styledom"
	"github.com/npillmayer/fontcrawl/dom/styledtree"
	"github.com/npillmayer/fontcrawl/tree"
	"github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// Dump writes the styled tree under root as a tree diagram, with the
// computed font of every element and pseudo-element. Elements which are not
// displayed are marked with a '¬'. A nil root dumps the whole document.
func Dump(w io.Writer, doc *styledom.Document, root *styledtree.StyNode) error {
	_, err := io.WriteString(w, String(doc, root))
	return err
}

// String returns the tree diagram of Dump as a string.
func String(doc *styledom.Document, root *styledtree.StyNode) string {
	if root == nil {
		root = doc.Root()
	}
	p := treeprint.New()
	printNode(p, doc, root)
	return p.String()
}

func printNode(p treeprint.Tree, doc *styledom.Document, root *styledtree.StyNode) {
	branches := []treeprint.Tree{p} // branches[d] receives nodes of depth d
	root.TopDown(func(n *tree.Node[*styledtree.StyNode], depth int) bool {
		sn := styledtree.Node(n)
		branches = branches[:depth+1]
		if n.ChildCount() == 0 && len(sn.Pseudos()) == 0 {
			branches[depth].AddNode(label(doc, sn, ""))
			return true
		}
		branch := branches[depth].AddBranch(label(doc, sn, ""))
		for _, pseudo := range sn.Pseudos() {
			branch.AddNode(label(doc, sn, pseudo))
		}
		branches = append(branches, branch)
		return true
	})
}

func label(doc *styledom.Document, sn *styledtree.StyNode, pseudo string) string {
	var b strings.Builder
	if pseudo != "" {
		b.WriteString(pseudo)
	} else {
		b.WriteString(elementName(sn.HTMLNode()))
	}
	face, err := doc.ComputedFont(sn, pseudo)
	if err != nil {
		fmt.Fprintf(&b, "  (%v)", err)
		return b.String()
	}
	fmt.Fprintf(&b, "  %s", face)
	if pseudo == "" && !doc.Displayed(sn) {
		b.WriteString(" ¬")
	}
	return b.String()
}

func elementName(h *html.Node) string {
	if h == nil {
		return "?"
	}
	name := h.Data
	for _, a := range h.Attr {
		switch a.Key {
		case "id":
			name += "#" + a.Val
		case "class":
			for _, c := range strings.Fields(a.Val) {
				name += "." + c
			}
		}
	}
	return name
}
