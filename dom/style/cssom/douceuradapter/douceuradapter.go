/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/fontcrawl/dom/style"
	"github.com/npillmayer/fontcrawl/dom/style/cssom"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSStyles is an adapter for interface cssom.StyleSheet.
// For an explanation of the motivation behind this design, please refer
// to documentation for interface cssom.StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Parse parses CSS source text into a stylesheet.
func Parse(source string) (*CSSStyles, error) {
	c, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}
	return &CSSStyles{css: *c}, nil
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet. Rules of other
// implementations are copied declaration by declaration.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	if othercss, ok := other.(*CSSStyles); ok {
		sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
		return
	}
	for _, r := range other.Rules() { // foreign implementation: copy declarations
		rule := css.NewRule(css.QualifiedRule)
		rule.Prelude = r.Selector()
		for _, key := range r.Properties() {
			rule.Declarations = append(rule.Declarations, &css.Declaration{
				Property:  key,
				Value:     r.Value(key).String(),
				Important: r.IsImportant(key),
			})
		}
		sheet.css.Rules = append(sheet.css.Rules, rule)
	}
}

// Rules returns all the style rules of a stylesheet. At-rules are not
// reported, with the exception of the style rules nested in @media blocks.
//
// Interface style.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, 0, len(sheet.css.Rules))
	for _, r := range sheet.css.Rules {
		rules = appendQualified(rules, r)
	}
	return rules
}

func appendQualified(rules []cssom.Rule, r *css.Rule) []cssom.Rule {
	switch {
	case r.Kind == css.QualifiedRule:
		rules = append(rules, Rule(*r))
	case r.Name == "@media":
		for _, embedded := range r.Rules {
			rules = appendQualified(rules, embedded)
		}
	}
	return rules
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.Prelude
}

// Properties returns the property keys of a rule,
// e.g. "font-weight"
func (r Rule) Properties() []string {
	decl := r.Declarations
	props := make([]string, 0, len(decl))
	for _, d := range decl {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property values for given key with this rule, e.g. "bold".
// If a key is declared more than once, the last declaration wins.
func (r Rule) Value(key string) style.Property {
	if d := r.declaration(key); d != nil {
		return style.Property(d.Value)
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	if d := r.declaration(key); d != nil {
		return d.Important
	}
	return false
}

func (r Rule) declaration(key string) *css.Declaration {
	decl := r.Declarations
	for i := len(decl) - 1; i >= 0; i-- {
		if decl[i].Property == key {
			return decl[i]
		}
	}
	return nil
}

var _ cssom.Rule = &Rule{}

// InlineStyle parses the content of an HTML `style` attribute into a rule
// without selector.
func InlineStyle(style string) (Rule, error) {
	// douceur drops the value of a final declaration not terminated by ';'
	source := strings.TrimSpace(style)
	if source != "" && !strings.HasSuffix(source, ";") {
		source += ";"
	}
	decls, err := parser.ParseDeclarations(source)
	if err != nil {
		return Rule{}, fmt.Errorf("parsing inline style %q: %w", style, err)
	}
	r := css.NewRule(css.QualifiedRule)
	r.Declarations = decls
	return Rule(*r), nil
}

// ExtractStyleElements visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. It returns the content of
// style-elements as style sheets, in document order.
//
// A <style> element with invalid content is skipped. Errors are collected
// and returned together with the valid stylesheets.
func ExtractStyleElements(htmldoc *html.Node) ([]*CSSStyles, error) {
	head := findElement(atom.Head, htmldoc)
	body := findElement(atom.Body, htmldoc)
	css, err := extractStyles(head)
	css2, err2 := extractStyles(body)
	css = append(css, css2...)
	return css, multierr.Append(err, err2)
}

func extractStyles(h *html.Node) ([]*CSSStyles, error) {
	if h == nil {
		return nil, nil
	}
	var css []*CSSStyles
	var errs error
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode && ch.DataAtom == atom.Style {
			c, err := Parse(styleText(ch))
			if err != nil {
				tracer().Errorf("skipping <style> element: %v", err)
				errs = multierr.Append(errs, err)
				continue
			}
			css = append(css, c)
		} else if ch.Type == html.ElementNode && ch.DataAtom != atom.Head && ch.DataAtom != atom.Body {
			nested, err := extractStyles(ch)
			css = append(css, nested...)
			errs = multierr.Append(errs, err)
		}
	}
	return css, errs
}

func styleText(n *html.Node) string {
	var b strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			b.WriteString(ch.Data)
		}
	}
	return b.String()
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.Type == html.ElementNode && h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
