package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/respond/config"
	"github.com/npillmayer/respond/dom/style/cssom"
	"github.com/npillmayer/respond/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const doc = `<html><head><title>t</title></head><body>` +
	`<div class="row"><p>a</p><p>b</p></div></body></html>`

const rules = `
rules:
  - selector: "div.row > p"
    styles:
      flex: "1"
      flex.md: "2"
  - selector: "div.row"
    styles:
      display: flex
      width: "100"
`

func TestRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "respond.ssr")
	defer teardown()
	//
	r, err := ParseRules([]byte(rules))
	require.NoError(t, err)
	require.Len(t, r.Rules, 2)
	var out, dump bytes.Buffer
	require.NoError(t, Render(strings.NewReader(doc), &out, r, config.Default(), &dump))
	result, err := html.Parse(&out)
	require.NoError(t, err)
	sheets, err := douceuradapter.ExtractStyleElements(result)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	sheet := sheets[0]
	v, ok := cssom.Lookup(sheet, "all", ".flex-layout-0", "flex")
	assert.True(t, ok)
	assert.Equal(t, "1", v.String())
	v, ok = cssom.Lookup(sheet, "all", ".flex-layout-2", "display")
	assert.True(t, ok, "div gets the third class")
	assert.Equal(t, "flex", v.String())
	v, _ = cssom.Lookup(sheet, "all", ".flex-layout-2", "width")
	assert.Equal(t, "100px", v.String(), "default unit is appended")
	md := "screen and (min-width: 960px) and (max-width: 1279.98px)"
	v, ok = cssom.Lookup(sheet, md, ".flex-layout-1", "flex")
	assert.True(t, ok)
	assert.Equal(t, "2", v.String())
	assert.Contains(t, out.String(), `class="row flex-layout-2"`)
	assert.NotContains(t, out.String(), `style="`, "no inline styles in server mode")
	assert.Contains(t, dump.String(), "(base) = 1")
}

func TestBadSelector(t *testing.T) {
	r := Rules{Rules: []Rule{{Selector: "div[", Styles: map[string]string{"flex": "1"}}}}
	err := Render(strings.NewReader(doc), &bytes.Buffer{}, r, config.Default(), nil)
	assert.Error(t, err)
}

func TestPropertyOf(t *testing.T) {
	assert.Equal(t, "flex", propertyOf("flex.gt-sm"))
	assert.Equal(t, "order", propertyOf("order"))
	assert.Equal(t, []string{"flex", "flex.md", "order.print"},
		sortedNames(map[string]string{"order.print": "", "flex.md": "", "flex": ""}))
}

func TestRenderServerLoaded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "respond.ssr")
	defer teardown()
	//
	r, err := ParseRules([]byte(rules))
	require.NoError(t, err)
	var first bytes.Buffer
	require.NoError(t, Render(strings.NewReader(doc), &first, r, config.Default(), nil))
	countStyles := func(opts config.Options) int {
		var out bytes.Buffer
		require.NoError(t, Render(bytes.NewReader(first.Bytes()), &out, r, opts, nil))
		result, err := html.Parse(&out)
		require.NoError(t, err)
		sheets, err := douceuradapter.ExtractStyleElements(result)
		require.NoError(t, err)
		return len(sheets)
	}
	assert.Equal(t, 2, countStyles(config.Default()), "earlier output is kept")
	opts := config.Default()
	opts.ServerLoaded = true
	assert.Equal(t, 1, countStyles(opts), "earlier output is replaced")
}
