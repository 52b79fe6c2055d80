package douceuradapter

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fontcrawl.dom'.
func tracer() tracing.Trace {
	return tracing.Select("fontcrawl.dom")
}
