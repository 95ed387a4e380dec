package bind

import (
	"strings"
	"testing"

	"github.com/npillmayer/respond/breakpoint"
	"github.com/npillmayer/respond/dom"
	"github.com/npillmayer/respond/dom/style"
	"github.com/npillmayer/respond/dom/styler"
	"github.com/npillmayer/respond/marshal"
	"github.com/npillmayer/respond/media"
	"github.com/npillmayer/respond/printhook"
	"github.com/npillmayer/respond/stream"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type recorder struct {
	styles map[string]style.Declarations
	calls  int
}

func (r *recorder) ApplyStyles(el string, decls style.Declarations) error {
	r.calls++
	r.styles[el] = r.styles[el].Merge(decls)
	return nil
}

func (r *recorder) ClearStyles(el string, keys ...string) error {
	for _, k := range keys {
		r.styles[el] = r.styles[el].Remove(k)
	}
	return nil
}

func setup() (*marshal.Marshaller[string, string], *media.ServerWatcher, *breakpoint.Registry, *recorder) {
	reg := breakpoint.NewDefaultRegistry()
	w := media.NewServerWatcher(reg, nil)
	m := marshal.New[string, string](w, reg, printhook.New(reg, nil, nil))
	return m, w, reg, &recorder{styles: make(map[string]style.Declarations)}
}

func TestBindingFollowsBreakpoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "respond.bind")
	defer teardown()
	//
	m, w, reg, sink := setup()
	b := Bind[string](m, reg, sink, "E", "flex", NewDeclarationBuilder("flex"))
	b.SetValue("1", "")
	b.SetValue("2", "md")
	assert.Equal(t, style.Decl("flex", "1"), sink.styles["E"])
	w.ActivateBreakpoint(reg.FindByAlias("md"))
	assert.Equal(t, style.Decl("flex", "2"), sink.styles["E"])
	v, ok := b.Value()
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	w.DeactivateBreakpoint(reg.FindByAlias("md"))
	assert.Equal(t, style.Decl("flex", "1"), sink.styles["E"])
}

func TestUnknownAliasIsDropped(t *testing.T) {
	m, _, reg, sink := setup()
	b := Bind[string](m, reg, sink, "E", "flex", NewDeclarationBuilder("flex"))
	b.SetValue("3", "huge")
	_, ok := m.GetValueAt("E", "flex", "Huge")
	assert.False(t, ok)
	assert.Empty(t, sink.styles["E"])
}

func TestSetInput(t *testing.T) {
	m, _, reg, sink := setup()
	b := Bind[string](m, reg, sink, "E", "flex", NewDeclarationBuilder("flex"))
	assert.True(t, b.SetInput("flex", "1"))
	assert.True(t, b.SetInput("flex.gt-sm", "2"))
	assert.False(t, b.SetInput("order.md", "3"))
	assert.False(t, b.SetInput("flexible", "3"))
	v, ok := m.GetValueAt("E", "flex", "GtSm")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

type layoutBuilder struct {
	builds  int
	effects []string
}

func (lb *layoutBuilder) BuildStyles(input string) style.Declarations {
	lb.builds++
	if input == "row" {
		return style.Decl("display", "flex", "flex-direction", "row")
	}
	return style.Decl("display", "block")
}

func (lb *layoutBuilder) SideEffect(input string, styles style.Declarations) {
	lb.effects = append(lb.effects, input)
}

func TestBuilderSideEffectAndStaleKeys(t *testing.T) {
	m, w, reg, sink := setup()
	lb := &layoutBuilder{}
	b := Bind[string](m, reg, sink, "E", "layout", Cached(lb))
	b.SetValue("row", "")
	b.SetValue("block", "sm")
	assert.Equal(t, style.Decl("display", "flex", "flex-direction", "row"), sink.styles["E"])
	sm := reg.FindByAlias("sm")
	w.ActivateBreakpoint(sm)
	assert.Equal(t, style.Decl("display", "block"), sink.styles["E"], "stale keys are removed")
	w.DeactivateBreakpoint(sm)
	assert.Equal(t, 2, lb.builds, "builder results are cached")
	assert.Equal(t, []string{"row", "block", "row"}, lb.effects)
	b.Release()
	assert.Empty(t, sink.styles["E"])
	assert.Empty(t, m.Elements())
	b.Release()
}

func TestTriggerReappliesValue(t *testing.T) {
	m, _, reg, sink := setup()
	var trigger stream.Subject[struct{}]
	b := Bind[string](m, reg, sink, "E", "flex", NewDeclarationBuilder("flex"), &trigger)
	b.SetValue("1", "")
	calls := sink.calls
	trigger.Next(struct{}{})
	assert.Equal(t, calls, sink.calls, "unchanged values are not re-applied")
	assert.Equal(t, style.Decl("flex", "1"), b.Styles())
}

func TestBindToStyler(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><div>x</div></body></html>`))
	require.NoError(t, err)
	var div *html.Node
	dom.Walk(doc, func(n *html.Node) bool {
		if dom.IsElement(n) && n.Data == "div" {
			div = n
		}
		return div == nil
	})
	require.NotNil(t, div)
	reg := breakpoint.NewDefaultRegistry()
	w := media.NewServerWatcher(reg, nil)
	m := marshal.New[*html.Node, string](w, reg, printhook.New(reg, nil, nil))
	b := Bind[*html.Node](m, reg, styler.New(), div, "flex", NewDeclarationBuilder("flex"))
	b.SetValue("1 1 auto", "")
	attr, _ := dom.Attr(div, "style")
	assert.Equal(t, "flex:1 1 auto;", attr)
}

func TestDeclarationBuilderUnits(t *testing.T) {
	b := &DeclarationBuilder{Property: "margin", Unit: "px"}
	assert.Equal(t, style.Decl("margin", "10px 0 2.5px auto"), b.BuildStyles(" 10 0 2.5 auto "))
	assert.Equal(t, style.Decl("margin", "1em"), b.BuildStyles("1em"))
	flex := &DeclarationBuilder{Property: "flex", Unit: "px"}
	assert.Equal(t, style.Decl("flex", "1"), flex.BuildStyles("1"), "flex is not a length")
}
