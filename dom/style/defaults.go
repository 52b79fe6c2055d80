package style

import (
	"golang.org/x/net/html"
)

// Initial values of the properties we compute. These are the values an
// element receives for `initial` and the root of every document starts with.
var initialValues = map[string]string{
	"font-family":    "serif",
	"font-weight":    "400",
	"font-style":     "normal",
	"font-size":      "medium",
	"font-variant":   "normal",
	"font-stretch":   "normal",
	"line-height":    "normal",
	"display":        "inline",
	"visibility":     "visible",
	"content":        "normal",
	"direction":      "ltr",
	"white-space":    "normal",
	"letter-spacing": "normal",
	"word-spacing":   "normal",
}

// InitialValue returns the CSS initial value for a property key, or
// NullStyle for properties we do not know about.
func InitialValue(key string) Property {
	return Property(initialValues[key])
}

// GetUserAgentDefaultProperty returns the user-agent default property for a given key.
func GetUserAgentDefaultProperty(node *html.Node, key string) Property {
	switch key {
	case "display":
		return DisplayPropertyForHTMLNode(node)
	}
	if node != nil && node.Type == html.ElementNode {
		for _, kv := range presentational[node.Data] {
			if kv.Key == key {
				return kv.Value
			}
		}
	}
	return InitialValue(key)
}

// presentational holds the font styles browsers apply to HTML elements
// without any author stylesheet.
var presentational = map[string][]KeyValue{
	"b":       {{"font-weight", "bolder"}},
	"strong":  {{"font-weight", "bolder"}},
	"th":      {{"font-weight", "bold"}},
	"h1":      {{"font-weight", "bold"}},
	"h2":      {{"font-weight", "bold"}},
	"h3":      {{"font-weight", "bold"}},
	"h4":      {{"font-weight", "bold"}},
	"h5":      {{"font-weight", "bold"}},
	"h6":      {{"font-weight", "bold"}},
	"i":       {{"font-style", "italic"}},
	"em":      {{"font-style", "italic"}},
	"cite":    {{"font-style", "italic"}},
	"var":     {{"font-style", "italic"}},
	"dfn":     {{"font-style", "italic"}},
	"address": {{"font-style", "italic"}},
	"code":    {{"font-family", "monospace"}},
	"kbd":     {{"font-family", "monospace"}},
	"pre":     {{"font-family", "monospace"}},
	"samp":    {{"font-family", "monospace"}},
}

// PresentationalProperties returns the user-agent font properties for an
// HTML element, e.g. `font-weight: bolder` for <b>. The returned slice must
// not be modified.
func PresentationalProperties(node *html.Node) []KeyValue {
	if node == nil || node.Type != html.ElementNode {
		return nil
	}
	return presentational[node.Data]
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type != html.ElementNode {
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	switch node.Data {
	case "head", "script", "style", "title", "meta", "link", "template",
		"noscript", "base":
		return "none"
	case "html", "aside", "body", "div", "h1", "h2", "h3", "h4", "h5", "h6",
		"ol", "ul", "section", "article", "header", "footer", "nav", "main",
		"p", "pre", "blockquote", "address", "figure", "form", "hr", "dl",
		"dt", "dd", "fieldset":
		return "block"
	case "li":
		return "list-item"
	case "table":
		return "table"
	case "img", "button", "input", "select", "textarea":
		return "inline-block"
	}
	return "inline"
}

// InitializeDefaultPropertyValues creates an internal data structure to
// hold all the default values for CSS properties.
// In real-world browsers these are the user-agent CSS values.
//
// Additional properties are placed in group X; if their key belongs to
// a known group, they override the default value there.
func InitializeDefaultPropertyValues(additionalProps []KeyValue) *PropertyMap {
	m := make(map[string]*PropertyGroup, 4)
	root := NewPropertyGroup("Root")

	font := NewPropertyGroup(PGFont)
	for _, key := range []string{"font-family", "font-weight", "font-style",
		"font-size", "font-variant", "font-stretch", "line-height"} {
		font.Set(key, InitialValue(key))
	}
	font.Parent = root
	m[PGFont] = font

	display := NewPropertyGroup(PGDisplay)
	display.Set("display", "block")
	display.Set("visibility", "visible")
	display.Set("content", "normal")
	display.Parent = root
	m[PGDisplay] = display

	text := NewPropertyGroup(PGText)
	text.Set("direction", "ltr")
	text.Set("white-space", "normal")
	text.Set("word-spacing", "normal")
	text.Set("letter-spacing", "normal")
	text.Parent = root
	m[PGText] = text

	x := NewPropertyGroup(PGX) // special group for extension properties
	m[PGX] = x
	for _, kv := range additionalProps {
		if g, ok := m[GroupNameFromPropertyKey(kv.Key)]; ok {
			g.Set(kv.Key, kv.Value)
		}
	}
	return &PropertyMap{m}
}
