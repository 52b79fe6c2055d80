/*
Package cssom provides the CSS object model used for computing font styles.

Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML.
For computing which fonts a document renders, we need just enough of it
to find the declarations for font properties, their selectors and their
importance. Selector handling is done by
https://godoc.org/github.com/andybalholm/cascadia.

CSS handling is de-coupled by introducing appropriate interfaces
StyleSheet and Rule. Concrete implementations may be found in sub-packages
of package cssom.

A good explanation of styling may be found in

	https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

// Origin denotes where style rules come from. Declarations of a later
// origin win over declarations of an earlier one, unless importance says
// otherwise.
type Origin uint8

// Origins in cascading order
const (
	UserAgentOrigin Origin = iota
	AuthorOrigin
	InlineOrigin
)

func (o Origin) String() string {
	switch o {
	case UserAgentOrigin:
		return "user-agent"
	case AuthorOrigin:
		return "author"
	case InlineOrigin:
		return "inline"
	}
	return "?"
}
