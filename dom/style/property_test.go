package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func TestDeclarationsKeepOrder(t *testing.T) {
	d := Decl("display", "flex", "flex-direction", "row", "dangling")
	d = d.Set("display", "inline-flex")
	d = d.Set("flex", "1")
	assert.Equal(t, []string{"display", "flex-direction", "flex"}, d.Keys())
	v, ok := d.Get("display")
	assert.True(t, ok)
	assert.Equal(t, Property("inline-flex"), v)
	d = d.Remove("flex-direction").Remove("nope")
	assert.Equal(t, "display:inline-flex;flex:1;", d.String())
	d = d.Merge(Decl("flex", "", "order", "2"))
	assert.Equal(t, "display:inline-flex;order:2;", d.String(), "empty values are not written")
	assert.Equal(t, []string{"display", "flex", "order"}, d.Sorted().Keys())
}

func TestSplitCompoundProperty(t *testing.T) {
	kv, err := SplitCompoundProperty("padding", "1px 2px")
	assert.NoError(t, err)
	assert.Equal(t, []KeyValue{
		{"padding-top", "1px"}, {"padding-right", "2px"},
		{"padding-bottom", "1px"}, {"padding-left", "2px"},
	}, kv)
	_, err = SplitCompoundProperty("flex", "1")
	assert.Error(t, err)
	_, err = SplitCompoundProperty("margin", "1 2 3 4 5")
	assert.Error(t, err)
	assert.Equal(t, "padding", CompoundOf("padding-left"))
	assert.Equal(t, "border-width", CompoundOf("border-top-width"))
	assert.Equal(t, "border-radius", CompoundOf("border-bottom-left-radius"))
	assert.Equal(t, "", CompoundOf("flex"))
}

func TestCascadingAndDefaults(t *testing.T) {
	assert.True(t, IsCascading("color"))
	assert.True(t, IsCascading("font-size"))
	assert.False(t, IsCascading("flex"))
	div := &html.Node{Type: html.ElementNode, Data: "div"}
	assert.Equal(t, Property("block"), GetUserAgentDefaultProperty(div, "display"))
	assert.Equal(t, Property("row"), GetUserAgentDefaultProperty(div, "flex-direction"))
	assert.Equal(t, NullStyle, GetUserAgentDefaultProperty(div, "x-unknown"))
	assert.Equal(t, Property("none"), DisplayPropertyForHTMLNode(nil))
}
