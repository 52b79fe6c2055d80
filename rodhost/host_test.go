package rodhost

import (
	"context"
	"os"
	"testing"

	"github.com/go-rod/rod"
	"github.com/npillmayer/fontcrawl/crawl"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ crawl.Host[*rod.Element] = &Host{}

const page = `data:text/html,<html><head><style>
p::before { content: "*"; font-weight: 700 }
</style></head><body style="font-family: Arial">
<p>hi <em>there</em></p><p style="display:none">hidden</p></body></html>`

// Browser tests need a Chrome installation; they run only if
// FONTCRAWL_BROWSER_TESTS is set.
func TestBrowserHost(t *testing.T) {
	if os.Getenv("FONTCRAWL_BROWSER_TESTS") == "" {
		t.Skip("FONTCRAWL_BROWSER_TESTS not set")
	}
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.rod")
	defer teardown()
	//
	ctx := context.Background()
	b, err := Launch(ctx, os.Getenv("FONTCRAWL_BROWSER_URL"))
	require.NoError(t, err)
	defer b.Close()
	h, err := b.Open(ctx, page)
	require.NoError(t, err)
	root, err := h.Root()
	require.NoError(t, err)
	ps, err := h.QueryAll(root, "p")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	texts, err := h.ChildTexts(ps[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"hi "}, texts)
	face, err := h.ComputedFont(ps[0], "::before")
	require.NoError(t, err)
	assert.Equal(t, "Arial", face.Family)
	assert.Equal(t, "700", face.Weight)
	assert.True(t, h.Displayed(ps[0]))
	assert.False(t, h.Displayed(ps[1]))
	//
	c := crawl.New[*rod.Element](h, nil, root, crawl.Config[*rod.Element]{})
	usage, err := c.Crawl()
	require.NoError(t, err)
	assert.Contains(t, usage.Variants("Arial"), "400i")
}
