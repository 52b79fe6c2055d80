package crawl

import (
	"fmt"
	"io"
	"time"

	"github.com/npillmayer/fontcrawl/entry"
	"gopkg.in/yaml.v3"
)

// Settings is the serializable part of a crawler configuration, e.g.
//
//	selector: "body *"
//	include_root: false
//	exclude: "script, style"
//	text_policy: strict
//	pseudo: before, after
//	exclude_families: [ "monospace" ]
//	interval_ms: 8
//
// Predicates (include/exclude functions, entry filters, per-element pseudo
// callbacks) cannot be expressed in settings and have to be set on the
// Config returned by FromSettings.
type Settings struct {
	Selector        string      `yaml:"selector"`
	IncludeRoot     bool        `yaml:"include_root"`
	Include         string      `yaml:"include"`
	Exclude         string      `yaml:"exclude"`
	TextPolicy      string      `yaml:"text_policy"`
	Pseudo          PseudoNames `yaml:"pseudo"`
	ExcludeFamilies []string    `yaml:"exclude_families"`
	IntervalMS      int         `yaml:"interval_ms"`
	MaxEntries      int         `yaml:"max_entries"`
}

// PseudoNames holds a pseudo-element configuration, given either as a
// delimited string or as a list of names.
type PseudoNames struct {
	Delimited string
	List      []string
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (p *PseudoNames) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		p.Delimited, p.List = value.Value, nil
		return nil
	case yaml.SequenceNode:
		var l []string
		if err := value.Decode(&l); err != nil {
			return err
		}
		p.Delimited, p.List = "", l
		return nil
	}
	return fmt.Errorf("crawl settings: line %d: pseudo must be a string or a list of strings", value.Line)
}

// MarshalYAML writes the form PseudoNames has been read from.
func (p PseudoNames) MarshalYAML() (interface{}, error) {
	if p.List != nil {
		return p.List, nil
	}
	return p.Delimited, nil
}

// LoadSettings reads crawler settings in YAML format. Unknown keys are
// reported as errors.
func LoadSettings(r io.Reader) (Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return Settings{}, fmt.Errorf("crawl settings: %w", err)
	}
	if _, err := entry.ParseTextPolicy(s.TextPolicy); err != nil {
		return Settings{}, fmt.Errorf("crawl settings: %w", err)
	}
	return s, nil
}

// FromSettings creates a crawler configuration from settings. An invalid
// text policy falls back to entry.TextStrict; LoadSettings reports it.
func FromSettings[E comparable](s Settings) Config[E] {
	policy, _ := entry.ParseTextPolicy(s.TextPolicy)
	conf := Config[E]{
		Options: entry.Options[E]{
			Selector:    s.Selector,
			IncludeRoot: s.IncludeRoot,
			Include:     s.Include,
			Exclude:     s.Exclude,
			TextPolicy:  policy,
		},
		ExcludeFamilies: append([]string(nil), s.ExcludeFamilies...),
	}
	switch {
	case s.Pseudo.List != nil:
		conf.Pseudo = entry.PseudoList[E](s.Pseudo.List...)
	case s.Pseudo.Delimited != "":
		conf.Pseudo = entry.PseudoString[E](s.Pseudo.Delimited)
	}
	if s.MaxEntries > 0 {
		conf.Budget = CountBudget(s.MaxEntries)
	} else {
		conf.Budget = TimeBudget(time.Duration(s.IntervalMS) * time.Millisecond)
	}
	return conf
}
