package domdbg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/fontcrawl/dom/styledom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.dom")
	defer teardown()
	//
	doc, err := styledom.Parse(strings.NewReader(`<html><head><style>
	p::before { font-style: italic }
	</style></head><body><p id="x" class="a b">Hello <b>World</b></p></body></html>`))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, doc, nil))
	out := buf.String()
	t.Logf("\n%s", out)
	assert.Contains(t, out, "p#x.a.b  serif/400")
	assert.Contains(t, out, "::before  serif/400i")
	assert.Contains(t, out, "b  serif/700")
	assert.Contains(t, out, "head  serif/400 ¬")
}
