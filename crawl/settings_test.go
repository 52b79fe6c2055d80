package crawl

import (
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/fontcrawl/entry"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadSettings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	s, err := LoadSettings(strings.NewReader(`
selector: "body *"
include_root: true
exclude: "script, style"
text_policy: simple
pseudo: before, after
exclude_families: [ monospace ]
interval_ms: 8
`))
	require.NoError(t, err)
	assert.Equal(t, "body *", s.Selector)
	assert.True(t, s.IncludeRoot)
	assert.Equal(t, "before, after", s.Pseudo.Delimited)
	conf := FromSettings[int](s)
	assert.Equal(t, entry.TextSimple, conf.TextPolicy)
	assert.Equal(t, []string{"::before", "::after"}, conf.Pseudo.Resolve(1))
	assert.Equal(t, []string{"monospace"}, conf.ExcludeFamilies)
	assert.Equal(t, TimeBudget(8*time.Millisecond), conf.Budget)
}

func TestLoadSettingsPseudoList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	s, err := LoadSettings(strings.NewReader("pseudo: [ \"::marker\", first-line ]\nmax_entries: 50\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"::marker", "first-line"}, s.Pseudo.List)
	conf := FromSettings[int](s)
	assert.Equal(t, []string{"::marker", "::first-line"}, conf.Pseudo.Resolve(1))
	assert.True(t, conf.Budget.IsCountBased())
	assert.Equal(t, 50, conf.Budget.MaxEntries)
	//
	out, err := yaml.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "first-line")
}

func TestLoadSettingsErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	_, err := LoadSettings(strings.NewReader("selectors: p\n"))
	assert.Error(t, err, "unknown keys must be rejected")
	_, err = LoadSettings(strings.NewReader("text_policy: sometimes\n"))
	assert.Error(t, err)
	_, err = LoadSettings(strings.NewReader("pseudo: { before: true }\n"))
	assert.Error(t, err)
	s, err := LoadSettings(strings.NewReader(""))
	require.NoError(t, err)
	conf := FromSettings[int](s)
	assert.True(t, conf.Pseudo.IsNone())
	assert.Equal(t, entry.TextStrict, conf.TextPolicy)
	assert.Equal(t, DefaultInterval, New[int](nil, nil, 0, conf).Budget().Interval)
}
