package ssr

import (
	"testing"

	"github.com/npillmayer/respond/breakpoint"
	"github.com/npillmayer/respond/dom/style"
	"github.com/npillmayer/respond/dom/style/cssom"
	"github.com/npillmayer/respond/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/respond/marshal"
	"github.com/npillmayer/respond/media"
	"github.com/npillmayer/respond/printhook"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	reg     *breakpoint.Registry
	watcher *media.ServerWatcher
	m       *marshal.Marshaller[string, string]
	sheet   *StyleSheet[string]
}

func newFixture(active ...string) *fixture {
	reg := breakpoint.NewRegistry([]*breakpoint.Breakpoint{
		{Alias: "sm", MediaQuery: "(max-width:599px)", Priority: 1},
		{Alias: "md", MediaQuery: "(min-width:600px) and (max-width:959px)", Priority: 2},
	})
	w := media.NewServerWatcher(reg, active)
	return &fixture{
		reg:     reg,
		watcher: w,
		m:       marshal.New[string, string](w, reg, printhook.New(reg, nil, nil)),
		sheet:   NewStyleSheet[string](),
	}
}

func (f *fixture) bind(el, key string) {
	f.m.Init(el, key,
		func(v string) { f.sheet.AddStyleToElement(el, key, style.Property(v)) },
		func() { f.sheet.AddStyleToElement(el, key, style.NullStyle) },
	)
}

func TestStyleSheet(t *testing.T) {
	sheet := NewStyleSheet[string]()
	sheet.AddStyleToElement("b", "flex", "1")
	sheet.AddStyleToElement("a", "order", "2")
	sheet.AddStyleToElement("b", "order", "3")
	assert.Equal(t, 2, sheet.Len())
	assert.Equal(t, style.Property("3"), sheet.StyleForElement("b", "order"))
	assert.Equal(t, style.NullStyle, sheet.StyleForElement("c", "order"))
	var els []string
	sheet.Each(func(el string, d style.Declarations) {
		els = append(els, el+":"+d.String())
	})
	assert.Equal(t, []string{"b:flex:1;order:3;", "a:order:2;"}, els)
	snap := sheet.Snapshot()
	sheet.ClearStyles()
	assert.Equal(t, 0, sheet.Len())
	assert.Equal(t, 2, snap.Len())
}

func TestGenerate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "respond.ssr")
	defer teardown()
	//
	f := newFixture()
	f.bind("E", "flex")
	f.m.SetValue("E", "flex", "1", "")
	f.m.SetValue("E", "flex", "2", "Md")
	g := NewGenerator[string]()
	css := g.Generate(f.sheet, f.watcher, f.reg, f.m)
	assert.Equal(t, "@media all{.flex-layout-0{flex:1;}}"+
		"@media (min-width:600px) and (max-width:959px){.flex-layout-0{flex:2;}}", css)
	assert.Equal(t, "flex-layout-0", g.ClassName("E"))
	assert.True(t, f.m.UseFallbacks(), "fallbacks are restored")
	assert.Equal(t, style.Property("1"), f.sheet.StyleForElement("E", "flex"),
		"base values are re-applied after generation")
	assert.False(t, f.watcher.IsActive(f.reg.FindByAlias("md").MediaQuery))
}

func TestGenerateParsesAsCSS(t *testing.T) {
	f := newFixture()
	for _, el := range []string{"A", "B"} {
		f.bind(el, "flex")
		f.bind(el, "order")
	}
	f.m.SetValue("A", "flex", "1", "")
	f.m.SetValue("B", "order", "2", "Sm")
	f.m.SetValue("A", "order", "3", "Md")
	g := NewGenerator[string]()
	css := g.Generate(f.sheet, f.watcher, f.reg, f.m)
	sheet, err := douceuradapter.Parse(css)
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "(max-width:599px)", "(min-width:600px) and (max-width:959px)"},
		cssom.Media(sheet))
	v, ok := cssom.Lookup(sheet, "(max-width:599px)", ".flex-layout-1", "order")
	assert.True(t, ok)
	assert.Equal(t, style.Property("2"), v)
	v, ok = cssom.Lookup(sheet, "(min-width:600px) and (max-width:959px)", ".flex-layout-0", "order")
	assert.True(t, ok)
	assert.Equal(t, style.Property("3"), v)
	_, ok = cssom.Lookup(sheet, "(max-width:599px)", ".flex-layout-0", "flex")
	assert.False(t, ok, "no fallbacks inside breakpoint blocks")
	var classes []string
	g.Classes(func(el, class string) { classes = append(classes, el+"="+class) })
	assert.Equal(t, []string{"A=flex-layout-0", "B=flex-layout-1"}, classes)
}

func TestGenerateResetsClassCounter(t *testing.T) {
	f := newFixture()
	f.bind("E", "flex")
	f.m.SetValue("E", "flex", "1", "")
	g := NewGenerator[string]()
	g.Prefix = "x-"
	first := g.Generate(f.sheet, f.watcher, f.reg, f.m)
	second := g.Generate(f.sheet, f.watcher, f.reg, f.m)
	assert.Equal(t, "@media all{.x-0{flex:1;}}", first)
	assert.Equal(t, first, second)
}

func TestGenerateKeepsServerActivations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "respond.ssr")
	defer teardown()
	//
	f := newFixture("md")
	f.bind("E", "flex")
	f.m.SetValue("E", "flex", "1", "")
	f.m.SetValue("E", "flex", "3", "Sm")
	f.m.SetValue("E", "flex", "2", "Md")
	require.Equal(t, style.Property("2"), f.sheet.StyleForElement("E", "flex"))
	g := NewGenerator[string]()
	css := g.Generate(f.sheet, f.watcher, f.reg, f.m)
	assert.Equal(t, "@media all{.flex-layout-0{flex:1;}}"+
		"@media (max-width:599px){.flex-layout-0{flex:3;}}"+
		"@media (min-width:600px) and (max-width:959px){.flex-layout-0{flex:2;}}", css)
	assert.True(t, f.watcher.IsActive(f.reg.FindByAlias("md").MediaQuery),
		"breakpoints active on the server stay active")
	assert.False(t, f.watcher.IsActive(f.reg.FindByAlias("sm").MediaQuery))
	assert.Equal(t, style.Property("2"), f.sheet.StyleForElement("E", "flex"),
		"styles of the server activation are re-applied")
}

func TestGenerateEqualValues(t *testing.T) {
	f := newFixture()
	f.bind("E", "flex")
	f.m.SetValue("E", "flex", "1", "")
	f.m.SetValue("E", "flex", "1", "Sm")
	g := NewGenerator[string]()
	css := g.Generate(f.sheet, f.watcher, f.reg, f.m)
	assert.Equal(t, "@media all{.flex-layout-0{flex:1;}}"+
		"@media (max-width:599px){.flex-layout-0{flex:1;}}", css,
		"a breakpoint value equal to the base value gets its own block")
}
