package variant

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Usage is a font-usage map: font families mapped to ordered, duplicate-free
// sequences of variant tokens. Families are remembered in the order of their
// first encounter.
//
// The zero value is not usable, create a Usage with NewUsage.
type Usage struct {
	families []string
	variants map[string][]string
}

// NewUsage creates an empty font-usage map.
func NewUsage() *Usage {
	return &Usage{variants: make(map[string][]string)}
}

// Record adds a sampled variant to the map. The family key is inserted on
// first sight. The token for (weight, style) is inserted only if it is not
// already present, and the family's tokens are re-sorted on every insert.
//
// Record mutates u and returns it to allow for chaining.
func (u *Usage) Record(family, weight, style string) *Usage {
	tokens, found := u.variants[family]
	if !found {
		u.families = append(u.families, family)
		tokens = []string{}
	}
	token := Token(weight, style)
	for _, t := range tokens {
		if t == token {
			u.variants[family] = tokens
			return u
		}
	}
	tokens = append(tokens, token)
	sort.Strings(tokens)
	u.variants[family] = tokens
	return u
}

// RecordFace is a shortcut for Record(f.Family, f.Weight, f.Style).
func (u *Usage) RecordFace(f Face) *Usage {
	return u.Record(f.Family, f.Weight, f.Style)
}

// Len returns the number of font families.
func (u *Usage) Len() int {
	if u == nil {
		return 0
	}
	return len(u.families)
}

// Families returns the font families in order of first encounter.
func (u *Usage) Families() []string {
	if u == nil {
		return nil
	}
	return append([]string(nil), u.families...)
}

// Variants returns a copy of the variant tokens for a family, or nil.
func (u *Usage) Variants(family string) []string {
	if u == nil {
		return nil
	}
	tokens, ok := u.variants[family]
	if !ok {
		return nil
	}
	return append([]string{}, tokens...)
}

// Map returns a copy of u as a plain Go map.
func (u *Usage) Map() map[string][]string {
	m := make(map[string][]string, u.Len())
	if u == nil {
		return m
	}
	for _, f := range u.families {
		m[f] = append([]string{}, u.variants[f]...)
	}
	return m
}

// Clone returns a deep copy of u.
func (u *Usage) Clone() *Usage {
	c := NewUsage()
	if u == nil {
		return c
	}
	c.families = append(c.families, u.families...)
	for f, tokens := range u.variants {
		c.variants[f] = append([]string{}, tokens...)
	}
	return c
}

func (u *Usage) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, f := range u.Families() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f)
		b.WriteString(": [")
		b.WriteString(strings.Join(u.variants[f], " "))
		b.WriteString("]")
	}
	b.WriteString("}")
	return b.String()
}

// MarshalJSON writes u as a JSON object, families in order of first encounter.
func (u *Usage) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range u.Families() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(u.variants[f])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes u as a YAML mapping, families in order of first encounter.
func (u *Usage) MarshalYAML() (interface{}, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range u.Families() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: f}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, t := range u.variants[f] {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t})
		}
		m.Content = append(m.Content, key, seq)
	}
	return m, nil
}
