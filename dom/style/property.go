package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'fontcrawl.dom'
func tracer() tracing.Trace {
	return tracing.Select("fontcrawl.dom")
}

// Property is a raw value for a CSS property. For example, with
//
//	font-weight: bold
//
// a property value of "bold" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- CSS Property Groups ----------------------------------------------

// PropertyGroup is a collection of propertes sharing a common topic.
// CSS knows a whole lot of properties. We split them up into organisatorial
// groups.
//
// The mapping of property into groups is documented with
// GroupNameFromPropertyKey[...].
type PropertyGroup struct {
	name      string
	Parent    *PropertyGroup
	propsDict map[string]Property
}

// NewPropertyGroup creates a new empty property group, given its name.
func NewPropertyGroup(groupname string) *PropertyGroup {
	pg := &PropertyGroup{}
	pg.name = groupname
	return pg
}

// Name returns the name of the property group. Once named (during
// construction, property groups may not be renamed.
func (pg *PropertyGroup) Name() string {
	return pg.name
}

// Stringer for property groups; used for debugging.
func (pg *PropertyGroup) String() string {
	s := "[" + pg.name + "] =\n"
	for _, kv := range pg.Properties() {
		s += fmt.Sprintf("  %s = %s\n", kv.Key, kv.Value)
	}
	return s
}

// Properties returns all properties of a group, sorted by key.
func (pg *PropertyGroup) Properties() []KeyValue {
	r := make([]KeyValue, 0, len(pg.propsDict))
	for k, v := range pg.propsDict {
		r = append(r, KeyValue{k, v})
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Key < r[j].Key })
	return r
}

// IsSet is a predicated wether a property is set within this group.
func (pg *PropertyGroup) IsSet(key string) bool {
	if pg == nil || pg.propsDict == nil {
		return false
	}
	v, ok := pg.propsDict[key]
	return ok && !v.IsEmpty()
}

// Get a property's value.
func (pg *PropertyGroup) Get(key string) (Property, bool) {
	if pg == nil || pg.propsDict == nil {
		return NullStyle, false
	}
	p, ok := pg.propsDict[key]
	return p, ok
}

// Set a property's value. Overwrites an existing value, if present.
//
// Keyword values are converted to lower case. Font family names are
// kept as written.
func (pg *PropertyGroup) Set(key string, p Property) {
	p = Property(strings.TrimSpace(string(p)))
	if key != "font-family" {
		p = Property(strings.ToLower(string(p)))
	}
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	pg.propsDict[key] = p
}

// Add a property's value. Does not overwrite an existing value, i.e., does nothing
// if a value is already set.
func (pg *PropertyGroup) Add(key string, p Property) {
	if _, exists := pg.Get(key); !exists {
		pg.Set(key, p)
	}
}

// Cascade finds the ancesting PropertyGroup containing the given property-key.
// It returns nil if no group in the chain of parents has the key set.
func (pg *PropertyGroup) Cascade(key string) *PropertyGroup {
	it := pg
	for it != nil && !it.IsSet(key) { // stopper is default partial
		it = it.Parent
	}
	if it == nil {
		tracer().Debugf("styling: no property group %s found with key '%s'", pg.name, key)
	}
	return it
}

// GroupNameFromPropertyKey returns the style property group name for a
// style property.
// Example:
//
//	GroupNameFromPropertyKey("font-weight") => "Font"
//
// Unknown style property keys will return a group name of "X".
func GroupNameFromPropertyKey(key string) string {
	groupname, found := groupNameFromPropertyKey[key]
	if !found {
		groupname = "X"
	}
	return groupname
}

// Symbolic names for string literals, denoting PropertyGroups.
const (
	PGFont    = "Font"
	PGDisplay = "Display"
	PGText    = "Text"
	PGX       = "X"
)

var groupNameFromPropertyKey = map[string]string{
	"font-family":    PGFont, // Font
	"font-weight":    PGFont,
	"font-style":     PGFont,
	"font-size":      PGFont,
	"font-variant":   PGFont,
	"font-stretch":   PGFont,
	"line-height":    PGFont,
	"display":        PGDisplay, // Display
	"visibility":     PGDisplay,
	"content":        PGDisplay,
	"direction":      PGText, // Text
	"white-space":    PGText,
	"letter-spacing": PGText,
	"word-spacing":   PGText,
}

// FontProperties are the properties which determine a font variant.
var FontProperties = []string{"font-family", "font-weight", "font-style"}

// IsCascading returns wether the standard behaviour for a propery is to be
// inherited or not, i.e., a call to retrieve its value will cascade.
func IsCascading(key string) bool {
	if strings.HasPrefix(key, "font-") {
		return true
	}
	switch key {
	case "line-height", "visibility", "direction", "white-space":
		return true
	case "letter-spacing", "word-spacing":
		return true
	}
	return false
}

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//
//	SplitCompoundProperty("font", "italic bold 12px/1.5 Georgia, serif")
//
// will return
//
//	"font-style"   => "italic"
//	"font-variant" => "normal"
//	"font-weight"  => "bold"
//	"font-size"    => "12px"
//	"line-height"  => "1.5"
//	"font-family"  => "Georgia, serif"
//
// For the logic behind this, refer to e.g.
// https://developer.mozilla.org/en-US/docs/Web/CSS/font .
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	switch key {
	case "font":
		return splitFont(value)
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// System font keywords may replace the complete shorthand. We cannot resolve
// them, so they are treated as a family name.
var systemFonts = map[string]bool{
	"caption": true, "icon": true, "menu": true, "message-box": true,
	"small-caption": true, "status-bar": true,
}

// Values in front of the font size may appear in any order.
func splitFont(value Property) ([]KeyValue, error) {
	v := strings.TrimSpace(value.String())
	if v == "" {
		return nil, fmt.Errorf("empty font shorthand")
	}
	lower := strings.ToLower(v)
	if systemFonts[lower] {
		return fontLonghands("normal", "normal", "normal", "medium", "normal", v), nil
	}
	if lower == "inherit" || lower == "initial" {
		return fontLonghands(lower, lower, lower, lower, lower, lower), nil
	}
	fstyle, fvariant, fweight := "normal", "normal", "normal"
	rest := v
	for {
		field, tail := nextFontField(rest)
		if field == "" {
			return nil, fmt.Errorf("font shorthand without size and family: %q", v)
		}
		f := strings.ToLower(field)
		switch {
		case f == "normal":
		case f == "italic":
			fstyle = f
		case f == "oblique":
			fstyle = f
			if a, t := nextFontField(tail); strings.HasSuffix(strings.ToLower(a), "deg") {
				fstyle += " " + strings.ToLower(a)
				tail = t
			}
		case f == "small-caps":
			fvariant = f
		case f == "bold" || f == "bolder" || f == "lighter" || isNumericWeight(f):
			fweight = f
		default: // must be the font size, possibly with a line height
			size, lineheight := f, "normal"
			if i := strings.IndexByte(f, '/'); i >= 0 {
				size, lineheight = f[:i], f[i+1:]
			} else if strings.HasPrefix(strings.TrimSpace(tail), "/") {
				lh, t := nextFontField(strings.TrimPrefix(strings.TrimSpace(tail), "/"))
				lineheight, tail = strings.ToLower(lh), t
			}
			if lineheight == "" {
				lh, t := nextFontField(tail)
				lineheight, tail = strings.ToLower(lh), t
			}
			family := strings.TrimSpace(tail)
			if family == "" {
				return nil, fmt.Errorf("font shorthand without family: %q", v)
			}
			return fontLonghands(fstyle, fvariant, fweight, size, lineheight, family), nil
		}
		rest = tail
	}
}

func nextFontField(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t\n")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func isNumericWeight(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func fontLonghands(fstyle, fvariant, fweight, size, lineheight, family string) []KeyValue {
	return []KeyValue{
		{"font-style", Property(fstyle)},
		{"font-variant", Property(fvariant)},
		{"font-weight", Property(fweight)},
		{"font-size", Property(size)},
		{"line-height", Property(lineheight)},
		{"font-family", Property(family)},
	}
}

// --- Property Map -----------------------------------------------------

// PropertyMap holds CSS properties. nil is a legal (empty) property map.
// A property map is the entity styling a DOM node: a DOM node links to a property map,
// which contains zero or more property groups. Property maps may share property groups.
type PropertyMap struct {
	// As CSS defines a whole lot of properties, we segment them into logical groups.
	m map[string]*PropertyGroup // into struct to make it opaque for clients
}

// NewPropertyMap returns a new empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{}
}

func (pmap *PropertyMap) String() string {
	s := "Property Map = {\n"
	if pmap != nil {
		names := make([]string, 0, len(pmap.m))
		for k := range pmap.m {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			s += pmap.m[k].String()
		}
	}
	s += "}"
	return s
}

// Size returns the number of property groups.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.m)
}

// Group returns the property group for a group name or nil.
func (pmap *PropertyMap) Group(groupname string) *PropertyGroup {
	if pmap == nil {
		return nil
	}
	group := pmap.m[groupname]
	return group
}

// Property returns a style property value, together with an indicator
// wether it has been found in the properties map.
// No cascading is performed
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	groupname := GroupNameFromPropertyKey(key)
	group := pmap.Group(groupname)
	if group == nil {
		return NullStyle, false
	}
	return group.Get(key)
}

// AddAllFromGroup transfers all style properties from a property group
// to a property map. If overwrite is set, existing style property values
// will be overwritten, otherwise only new values are set.
//
// If the property map does not yet contain a group of this kind, it will
// simply set this group (instead of copying values).
func (pmap *PropertyMap) AddAllFromGroup(group *PropertyGroup, overwrite bool) *PropertyMap {
	if pmap == nil {
		pmap = NewPropertyMap()
	}
	if pmap.m == nil {
		pmap.m = make(map[string]*PropertyGroup)
	}
	g := pmap.Group(group.name)
	if g == nil {
		pmap.m[group.name] = group
	} else {
		for k, v := range group.propsDict {
			if overwrite {
				g.Set(k, v)
			} else {
				g.Add(k, v)
			}
		}
	}
	return pmap
}

// Add adds a property to this property map, e.g.,
//
//	pm.Add("font-weight", "bold")
//
// The group for the property is created if necessary. It returns the group
// the property has been set in.
func (pmap *PropertyMap) Add(key string, value Property) *PropertyGroup {
	if pmap == nil {
		return nil
	}
	if pmap.m == nil {
		pmap.m = make(map[string]*PropertyGroup)
	}
	groupname := GroupNameFromPropertyKey(key)
	group, found := pmap.m[groupname]
	if !found {
		group = NewPropertyGroup(groupname)
		pmap.m[groupname] = group
	}
	group.Set(key, value)
	return group
}
