package cssom_test

import (
	"testing"

	"github.com/npillmayer/fontcrawl/dom/style"
	"github.com/npillmayer/fontcrawl/dom/style/cssom"
	"github.com/npillmayer/fontcrawl/dom/style/cssom/douceuradapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclarations(t *testing.T) {
	sheet, err := douceuradapter.Parse(`h1 { font-weight: 800 !important; font-style: italic }`)
	require.NoError(t, err)
	rules := sheet.Rules()
	require.Len(t, rules, 1)
	decls := cssom.Declarations(rules[0])
	require.Len(t, decls, 2)
	assert.Equal(t, cssom.Declaration{Key: "font-weight", Value: style.Property("800"), Important: true}, decls[0])
	assert.Equal(t, "font-style", decls[1].Key)
	assert.False(t, decls[1].Important)
	assert.Nil(t, cssom.Declarations(nil))
}

func TestOriginString(t *testing.T) {
	assert.Equal(t, "author", cssom.AuthorOrigin.String())
	assert.True(t, cssom.UserAgentOrigin < cssom.AuthorOrigin)
	assert.True(t, cssom.AuthorOrigin < cssom.InlineOrigin)
}
