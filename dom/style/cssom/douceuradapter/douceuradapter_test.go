package douceuradapter

import (
	"strings"
	"testing"

	"github.com/npillmayer/respond/dom/style"
	"github.com/npillmayer/respond/dom/style/cssom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var generated = `@media all{.flex-layout-0{flex:1;}}` +
	`@media screen and (min-width: 600px){.flex-layout-0{flex:2;display:flex;}.flex-layout-1{order:3;}}`

func TestParseMediaBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "respond.cssom")
	defer teardown()
	//
	sheet, err := Parse(generated)
	require.NoError(t, err)
	assert.False(t, sheet.Empty())
	assert.Equal(t, []string{"all", "screen and (min-width: 600px)"}, cssom.Media(sheet))
	rules := cssom.RulesForMedia(sheet, "screen and (min-width: 600px)")
	require.Len(t, rules, 2)
	assert.Equal(t, ".flex-layout-0", rules[0].Selector())
	assert.Equal(t, style.Decl("flex", "2", "display", "flex"), cssom.Declarations(rules[0]))
	v, ok := cssom.Lookup(sheet, "all", ".flex-layout-0", "flex")
	assert.True(t, ok)
	assert.Equal(t, style.Property("1"), v)
	_, ok = cssom.Lookup(sheet, "all", ".flex-layout-1", "order")
	assert.False(t, ok)
}

func TestParseDeclarations(t *testing.T) {
	d, err := ParseDeclarations("display: flex; flex-direction: row")
	require.NoError(t, err)
	assert.Equal(t, []string{"display", "flex-direction"}, d.Keys())
	d, err = ParseDeclarations("   ")
	assert.NoError(t, err)
	assert.Nil(t, d)
}

func TestAppendRules(t *testing.T) {
	a, err := Parse(`.a{color:red;}`)
	require.NoError(t, err)
	b, err := Parse(`@media print{.b{display:none;}}`)
	require.NoError(t, err)
	a.AppendRules(b)
	require.Len(t, a.Rules(), 2)
	assert.Equal(t, "print", a.Rules()[1].Media())
	assert.Equal(t, "", a.Rules()[0].Media())
}

func TestExtractStyleElements(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<html><head><style>.x{color:blue;}</style></head><body><p>hi</p></body></html>`))
	require.NoError(t, err)
	sheets, err := ExtractStyleElements(doc)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, ".x", sheets[0].Rules()[0].Selector())
}
