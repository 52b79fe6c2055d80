package cssom

import (
	"strings"

	"github.com/npillmayer/fontcrawl/dom/style"
)

// StyleSheet abstracts away a stylesheet implementation, de-coupling
// CSS parsing from the styling of a document tree. Package douceuradapter
// provides an implementation.
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the qualified rules of a stylesheet
}

// Rule is the type stylesheets consist of. Nested rules (e.g., @media)
// are flattened by StyleSheet.Rules.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "font-weight"
	Value(string) style.Property // property value for key, e.g. "bold"
	IsImportant(string) bool     // is property key marked as important?
}

// Declaration is a single property declaration of a rule.
type Declaration struct {
	Key       string // normalized to lower case
	Value     style.Property
	Important bool
}

// Declarations returns the declarations of a rule in source order, with
// property keys normalized. Declarations with empty keys are skipped.
func Declarations(r Rule) []Declaration {
	if r == nil {
		return nil
	}
	props := r.Properties()
	decls := make([]Declaration, 0, len(props))
	for _, key := range props {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		decls = append(decls, Declaration{
			Key:       k,
			Value:     r.Value(key),
			Important: r.IsImportant(key),
		})
	}
	return decls
}
