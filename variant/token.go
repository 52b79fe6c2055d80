package variant

import "strings"

// Face is the result of sampling an element (or pseudo-element) for the
// three CSS properties determining which font file gets rendered.
type Face struct {
	Family string // computed font-family, fallback lists included
	Weight string // computed font-weight, numeric or keyword
	Style  string // computed font-style
}

func (f Face) String() string {
	return f.Family + "/" + f.Token()
}

// Token returns the variant token of a face, see Token.
func (f Face) Token() string {
	return Token(f.Weight, f.Style)
}

// Token creates a variant token from a weight and a style. Weight keywords
// are canonicalized to their numeric form ("normal" => 400, "bold" => 700),
// and a style marker is appended if style differs from "normal":
//
//	Token("700", "italic")    => "700i"
//	Token("bold", "oblique")  => "700o"
//	Token("normal", "normal") => "400"
func Token(weight, style string) string {
	return canonicalWeight(weight) + styleMarker(style)
}

func canonicalWeight(weight string) string {
	w := strings.ToLower(strings.TrimSpace(weight))
	switch w {
	case "", "normal":
		return "400"
	case "bold":
		return "700"
	}
	return w
}

func styleMarker(style string) string {
	s := strings.ToLower(strings.TrimSpace(style))
	switch {
	case s == "" || s == "normal":
		return ""
	case s == "italic":
		return "i"
	case strings.HasPrefix(s, "oblique"): // may carry an angle
		return "o"
	}
	return s
}
