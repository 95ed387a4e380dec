package styler

import (
	"strings"
	"testing"

	"github.com/npillmayer/respond/dom"
	"github.com/npillmayer/respond/dom/style"
	"github.com/npillmayer/respond/ssr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const page = `<html><body><div id="outer" style="color: red; padding: 1px 2px">` +
	`<p id="inner" style="display flex;">x</p><span id="plain">y</span></div></body></html>`

func parse(t *testing.T) *html.Node {
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func byID(doc *html.Node, id string) *html.Node {
	var found *html.Node
	dom.Walk(doc, func(n *html.Node) bool {
		if v, ok := dom.Attr(n, "id"); ok && v == id {
			found = n
		}
		return found == nil
	})
	return found
}

func TestApplyInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "respond.styler")
	defer teardown()
	//
	doc := parse(t)
	outer := byID(doc, "outer")
	s := New()
	require.NoError(t, s.ApplyStyles(outer, style.Decl("display", "flex", "color", "blue")))
	attr, _ := dom.Attr(outer, "style")
	assert.Equal(t, "color:blue;padding:1px 2px;display:flex;", attr)
	require.NoError(t, s.ClearStyles(outer, "color", "padding"))
	attr, _ = dom.Attr(outer, "style")
	assert.Equal(t, "display:flex;", attr)
	require.NoError(t, s.ClearStyles(outer, "display"))
	_, ok := dom.Attr(outer, "style")
	assert.False(t, ok, "empty style attribute is removed")
}

func TestMalformedStyleAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "respond.styler")
	defer teardown()
	//
	doc := parse(t)
	inner := byID(doc, "inner")
	s := New()
	_, err := s.LookupInlineStyle(inner, "display")
	assert.Error(t, err)
	err = s.ApplyStyle(inner, "flex", "1")
	assert.Error(t, err)
	attr, _ := dom.Attr(inner, "style")
	assert.Equal(t, "display flex;", attr, "element is left unchanged")
}

func TestLookupInlineStyle(t *testing.T) {
	doc := parse(t)
	outer := byID(doc, "outer")
	s := New()
	v, err := s.LookupInlineStyle(outer, "color")
	require.NoError(t, err)
	assert.Equal(t, "red", v)
	v, err = s.LookupInlineStyle(outer, "padding-left")
	require.NoError(t, err)
	assert.Equal(t, "2px", v, "component of a compound property")
	v, err = s.LookupInlineStyle(outer, "margin-top")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestLookupStyleInherits(t *testing.T) {
	doc := parse(t)
	plain := byID(doc, "plain")
	s := New()
	v, err := s.LookupStyle(plain, "color", true)
	require.NoError(t, err)
	assert.Equal(t, style.Property("red"), v)
	v, err = s.LookupStyle(plain, "color", false)
	require.NoError(t, err)
	assert.Equal(t, style.NullStyle, v)
	v, err = s.LookupStyle(plain, "padding-left", true)
	require.NoError(t, err)
	assert.Equal(t, style.Property("0"), v, "padding is not inherited, UA default applies")
	v, err = s.LookupStyle(plain, "display", true)
	require.NoError(t, err)
	assert.Equal(t, style.Property("inline"), v)
}

func TestServerMode(t *testing.T) {
	doc := parse(t)
	plain := byID(doc, "plain")
	sheet := ssr.NewStyleSheet[*html.Node]()
	s := NewServer(sheet)
	assert.True(t, s.IsServer())
	require.NoError(t, s.ApplyStyle(plain, "flex", "1"))
	_, ok := dom.Attr(plain, "style")
	assert.False(t, ok, "server mode leaves style attributes alone")
	assert.Equal(t, style.Property("1"), sheet.StyleForElement(plain, "flex"))
	v, err := s.LookupStyle(plain, "flex", false)
	require.NoError(t, err)
	assert.Equal(t, style.Property("1"), v)
	s.AddClass(plain, "flex-layout-0")
	assert.True(t, dom.HasClass(plain, "flex-layout-0"))
	assert.NotNil(t, dom.FindElement(atom.Body, doc))
}
