package entry

import "strings"

// Collect runs the entry pipeline for a traversal root and returns the
// entries to sample, in pipeline order. Errors from the host are returned
// unmodified.
//
// Every stage preserves the relative order of its input: an element's base
// entry is directly followed by its pseudo-element entries, in the order
// the pseudo spec resolves them.
func Collect[E comparable](host Host[E], root E, opts Options[E]) ([]Entry[E], error) {
	elements, err := selection(host, root, opts)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("entry selection: %d elements", len(elements))
	if elements, err = filterElements(host, elements, opts); err != nil {
		return nil, err
	}
	tracer().Debugf("entry element filter: %d elements left", len(elements))
	entries := make([]Entry[E], 0, len(elements))
	for _, el := range elements {
		entries = append(entries, Entry[E]{Element: el})
		if opts.Pseudo.IsNone() {
			continue
		}
		for _, pseudo := range opts.Pseudo.Resolve(el) {
			entries = append(entries, Entry[E]{Element: el, Pseudo: pseudo})
		}
	}
	if opts.Filter != nil {
		kept := entries[:0]
		for _, e := range entries {
			if opts.Filter(e.Element, e.Pseudo) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	tracer().Debugf("entry pipeline produced %d entries", len(entries))
	return entries, nil
}

func selection[E comparable](host Host[E], root E, opts Options[E]) ([]E, error) {
	sel := opts.Selector
	if strings.TrimSpace(sel) == "" {
		sel = DefaultSelector
	}
	found, err := host.QueryAll(root, sel)
	if err != nil {
		return nil, err
	}
	if !opts.IncludeRoot {
		return found, nil
	}
	elements := make([]E, 0, len(found)+1)
	elements = append(elements, root)
	return append(elements, found...), nil
}

func filterElements[E comparable](host Host[E], elements []E, opts Options[E]) ([]E, error) {
	if opts.Include == "" && opts.IncludeFunc == nil && opts.Exclude == "" &&
		opts.ExcludeFunc == nil && opts.TextPolicy == TextIgnore {
		return elements, nil // stage disabled
	}
	kept := make([]E, 0, len(elements))
	for _, el := range elements {
		keep, err := keepElement(host, el, opts)
		if err != nil {
			return nil, err
		}
		if keep {
			kept = append(kept, el)
		}
	}
	return kept, nil
}

// keepElement decides on a single element. Always-include rules short-circuit
// before exclusion and text checks.
func keepElement[E comparable](host Host[E], el E, opts Options[E]) (bool, error) {
	if opts.IncludeFunc != nil && opts.IncludeFunc(el) {
		return true, nil
	}
	if opts.Include != "" {
		if ok, err := host.Matches(el, opts.Include); err != nil || ok {
			return ok, err
		}
	}
	if opts.ExcludeFunc != nil && opts.ExcludeFunc(el) {
		return false, nil
	}
	if opts.Exclude != "" {
		if ok, err := host.Matches(el, opts.Exclude); err != nil || ok {
			return false, err
		}
	}
	return hasText(host, el, opts.TextPolicy)
}

func hasText[E comparable](host Host[E], el E, policy TextPolicy) (bool, error) {
	if policy == TextIgnore {
		return true, nil
	}
	texts, err := host.ChildTexts(el)
	if err != nil || len(texts) == 0 {
		return false, err
	}
	if policy == TextSimple {
		return true, nil
	}
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			return true, nil
		}
	}
	// only whitespace separator text; accept if the parent element carries text
	content, err := host.TextContent(el)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(content) != "", nil
}
