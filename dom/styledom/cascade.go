package styledom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/fontcrawl/dom/style"
	"github.com/npillmayer/fontcrawl/dom/style/css"
	"github.com/npillmayer/fontcrawl/dom/style/cssom"
	"github.com/npillmayer/fontcrawl/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/fontcrawl/dom/styledtree"
	"github.com/npillmayer/fontcrawl/entry"
	"golang.org/x/net/html"
)

// rule is a style rule with a compiled selector. Selector groups are split
// up into single selectors, as every one of them has its own specificity.
type rule struct {
	sel    cascadia.Sel
	pseudo string // normalized pseudo-element, or ""
	decls  []cssom.Rule
	order  int
}

// addRules compiles the rules of a stylesheet. Rules with selectors we
// cannot parse are dropped, as a browser would do.
func (doc *Document) addRules(sheet cssom.StyleSheet, order int) int {
	for _, r := range sheet.Rules() {
		order++
		group, err := cascadia.ParseGroupWithPseudoElements(r.Selector())
		if err != nil {
			tracer().Debugf("styledom: dropping rule %q: %v", r.Selector(), err)
			continue
		}
		for _, sel := range group {
			var pseudo string
			if p := sel.PseudoElement(); p != "" {
				pseudo = entry.NormalizePseudo(p)
			}
			doc.rules = append(doc.rules, rule{
				sel:    sel,
				pseudo: pseudo,
				decls:  []cssom.Rule{r},
				order:  order,
			})
		}
	}
	return order
}

// declaration is a single property declaration together with everything
// needed to order it in the cascade.
type declaration struct {
	key         string
	value       style.Property
	important   bool
	origin      cssom.Origin
	specificity cascadia.Specificity
	order       int // source order of the rule
	pos         int // position within the rule
}

// precedes is true if d loses against other in the cascade.
func (d declaration) precedes(other declaration) bool {
	if d.important != other.important {
		return other.important
	}
	if d.origin != other.origin {
		return d.origin < other.origin
	}
	if d.specificity != other.specificity {
		return d.specificity.Less(other.specificity)
	}
	if d.order != other.order {
		return d.order < other.order
	}
	return d.pos < other.pos
}

// cascade collects the winning declaration for every property key.
type cascade map[string]declaration

func (c cascade) add(d declaration) {
	if old, ok := c[d.key]; !ok || old.precedes(d) {
		c[d.key] = d
	}
}

// addRule adds all the declarations of a rule, expanding shorthands.
func (c cascade) addRule(r cssom.Rule, origin cssom.Origin, spec cascadia.Specificity, order int) {
	for i, decl := range cssom.Declarations(r) {
		d := declaration{
			key:         decl.Key,
			value:       decl.Value,
			important:   decl.Important,
			origin:      origin,
			specificity: spec,
			order:       order,
			pos:         i,
		}
		if d.key != "font" {
			c.add(d)
			continue
		}
		longhands, err := style.SplitCompoundProperty(d.key, d.value)
		if err != nil {
			tracer().Debugf("styledom: dropping declaration: %v", err)
			continue
		}
		for _, kv := range longhands {
			lh := d
			lh.key, lh.value = kv.Key, kv.Value
			c.add(lh)
		}
	}
}

// keys returns the property keys of a cascade, sorted.
func (c cascade) keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var elementSpecificity = cascadia.Specificity{0, 0, 1}

// styleNode computes the styles for a styled node and its pseudo-elements.
func (doc *Document) styleNode(sn, parent *styledtree.StyNode, order int) error {
	h := sn.HTMLNode()
	own := make(cascade)
	pseudos := make(map[string]cascade)
	for i, kv := range style.PresentationalProperties(h) {
		own.add(declaration{
			key:         kv.Key,
			value:       kv.Value,
			origin:      cssom.UserAgentOrigin,
			specificity: elementSpecificity,
			pos:         i,
		})
	}
	for _, r := range doc.rules {
		if !r.sel.Match(h) {
			continue
		}
		target := own
		if r.pseudo != "" {
			if target = pseudos[r.pseudo]; target == nil {
				target = make(cascade)
				pseudos[r.pseudo] = target
			}
		}
		for _, decl := range r.decls {
			target.addRule(decl, cssom.AuthorOrigin, r.sel.Specificity(), r.order)
		}
	}
	var err error
	if inline, ok := attribute(h, "style"); ok && strings.TrimSpace(inline) != "" {
		var r douceuradapter.Rule
		if r, err = douceuradapter.InlineStyle(inline); err == nil {
			own.addRule(r, cssom.InlineOrigin, cascadia.Specificity{}, order+1)
		} else {
			err = fmt.Errorf("styledom: <%s>: %w", h.Data, err)
		}
	}
	sn.SetStyles(computeStyles(own, parent))
	for pseudo, c := range pseudos {
		sn.SetPseudoStyles(pseudo, computeStyles(c, sn))
	}
	return err
}

// computeStyles resolves the winning declarations of a cascade into
// computed values, relative to the node inheritance is from.
// The property groups of the result are linked to the parent's groups.
func computeStyles(c cascade, parent *styledtree.StyNode) *style.PropertyMap {
	pmap := style.NewPropertyMap()
	font := style.NewPropertyGroup(style.PGFont)
	font.Parent = nearestGroup(parent, style.PGFont)
	pmap.AddAllFromGroup(font, true)
	for _, key := range c.keys() {
		value := c[key].value
		group := style.GroupNameFromPropertyKey(key)
		if group == style.PGX {
			continue // not computed
		}
		p, ok := computeValue(key, value, parent)
		if !ok {
			continue
		}
		if g := pmap.Group(group); g != nil {
			g.Set(key, p)
			continue
		}
		g := pmap.Add(key, p)
		g.Parent = nearestGroup(parent, group)
	}
	return pmap
}

// computeValue resolves a specified value. It returns false if the value
// is to be inherited from the parent.
func computeValue(key string, value style.Property, parent *styledtree.StyNode) (style.Property, bool) {
	v := style.Property(strings.TrimSpace(value.String()))
	lower := style.Property(strings.ToLower(v.String()))
	switch {
	case v.IsEmpty():
		return style.NullStyle, false
	case lower.IsInherit(), lower == "unset" && style.IsCascading(key):
		if style.IsCascading(key) {
			return style.NullStyle, false
		}
		p, _ := css.GetProperty(parent, key)
		return p, true
	case lower.IsInitial(), lower == "unset", lower == "revert":
		return style.InitialValue(key), true
	}
	switch key {
	case "font-weight":
		inherited, _ := css.GetProperty(parent, key)
		return resolveWeight(lower, inherited), true
	case "font-family":
		return normalizeFamily(v), true
	case "font-style":
		return style.Property(strings.Join(strings.Fields(lower.String()), " ")), true
	}
	return lower, true
}

// nearestGroup finds the property group of a given name for a node or its
// closest ancestor having one.
func nearestGroup(sn *styledtree.StyNode, groupname string) *style.PropertyGroup {
	for ; sn != nil; sn = sn.ParentNode() {
		if g := sn.Styles().Group(groupname); g != nil {
			return g
		}
	}
	return nil
}

// resolveWeight computes a numeric font weight. Relative weights follow
// the table of CSS Fonts Level 4.
func resolveWeight(w style.Property, inherited style.Property) style.Property {
	switch w {
	case "normal":
		return "400"
	case "bold":
		return "700"
	case "bolder", "lighter":
		base := weightValue(inherited)
		var n int
		if w == "bolder" {
			switch {
			case base < 350:
				n = 400
			case base < 550:
				n = 700
			case base < 900:
				n = 900
			default:
				n = base
			}
		} else {
			switch {
			case base < 100:
				n = base
			case base < 550:
				n = 100
			case base < 750:
				n = 400
			default:
				n = 700
			}
		}
		return style.Property(fmt.Sprintf("%d", n))
	}
	return w
}

func weightValue(p style.Property) int {
	switch p {
	case "", "normal":
		return 400
	case "bold":
		return 700
	}
	var n int
	if _, err := fmt.Sscanf(p.String(), "%d", &n); err != nil {
		return 400
	}
	return n
}

// normalizeFamily formats a font family list the way browsers report it:
// entries separated by ", ", quoted names in double quotes.
func normalizeFamily(p style.Property) style.Property {
	parts := strings.Split(p.String(), ",")
	families := make([]string, 0, len(parts))
	for _, f := range parts {
		f = strings.TrimSpace(f)
		if len(f) >= 2 && f[0] == '\'' && f[len(f)-1] == '\'' {
			f = `"` + f[1:len(f)-1] + `"`
		} else if len(f) > 0 && f[0] != '"' {
			f = strings.Join(strings.Fields(f), " ")
		}
		if f != "" {
			families = append(families, f)
		}
	}
	return style.Property(strings.Join(families, ", "))
}

func attribute(h *html.Node, key string) (string, bool) {
	for _, a := range h.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
