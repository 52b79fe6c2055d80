package css

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseDisplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.dom")
	defer teardown()
	//
	mode, err := ParseDisplay("none")
	assert.NoError(t, err)
	assert.Equal(t, DisplayNone, mode)
	mode, err = ParseDisplay("inline-block")
	assert.NoError(t, err)
	assert.True(t, mode.Contains(InlineMode))
	assert.True(t, mode.Contains(InnerBlockMode))
	assert.False(t, mode.IsBlockLevel())
	mode, _ = ParseDisplay("flex")
	assert.True(t, mode.IsBlockLevel())
	_, err = ParseDisplay("sideways")
	assert.Error(t, err)
	assert.True(t, mustParse(t, "NONE").IsNone())
	assert.False(t, mustParse(t, "").IsNone())
}

func mustParse(t *testing.T, display string) DisplayMode {
	mode, err := ParseDisplay(display)
	assert.NoError(t, err)
	return mode
}

func TestDisplayModeString(t *testing.T) {
	assert.Equal(t, "DisplayNone", DisplayNone.String())
	assert.Equal(t, "BlockMode InnerInlineMode", (BlockMode | InnerInlineMode).String())
	assert.Equal(t, "ContentsMode", mustParse(t, " Contents ").String())
}
