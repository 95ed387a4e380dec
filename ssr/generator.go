package ssr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/respond/breakpoint"
	"github.com/npillmayer/respond/dom/style"
	"github.com/npillmayer/respond/media"
)

// DefaultClassPrefix is the prefix of generated class names.
const DefaultClassPrefix = "flex-layout-"

// Activator simulates breakpoint activations, usually a
// media.ServerWatcher.
type Activator interface {
	IsActive(query string) bool
	ActivateBreakpoint(*breakpoint.Breakpoint)
	DeactivateBreakpoint(*breakpoint.Breakpoint)
}

// Resolver is the part of a marshaller the generator needs.
type Resolver interface {
	UseFallbacks() bool
	SetUseFallbacks(bool)
	UpdateStyles()
}

// Generator produces static style sheets. A generator may be used for any
// number of renders, but not concurrently. Class names are numbered per
// call to Generate, starting with 0.
type Generator[E comparable] struct {
	Prefix  string // class name prefix, DefaultClassPrefix if empty
	classes map[E]string
	order   []E
}

// NewGenerator creates a generator with the default class prefix.
func NewGenerator[E comparable]() *Generator[E] {
	return &Generator[E]{Prefix: DefaultClassPrefix}
}

// Generate renders the static style sheet.
//
// Breakpoints active on the server are deactivated first, so the base block
// (@media all) holds the styles of the sheet without any breakpoint. Then
// every breakpoint of reg is activated in ascending priority, one at a time.
// The styles the resolver writes to sheet are captured into a block for the
// breakpoint, and the breakpoint is deactivated again. Fallbacks to base
// values are disabled while breakpoints are rendered, so that every block
// contains only styles specific to its breakpoint. Finally the server
// activations are restored.
func (g *Generator[E]) Generate(sheet *StyleSheet[E], act Activator, reg *breakpoint.Registry,
	res Resolver) string {
	//
	g.reset()
	bps := reg.Items()
	breakpoint.SortAscending(bps)
	var active []*breakpoint.Breakpoint
	for _, bp := range bps {
		if act.IsActive(bp.MediaQuery) {
			active = append(active, bp)
			act.DeactivateBreakpoint(bp)
		}
	}
	saved := res.UseFallbacks()
	defer func() {
		res.SetUseFallbacks(saved)
		for _, bp := range active {
			act.ActivateBreakpoint(bp)
		}
		res.UpdateStyles()
	}()
	res.SetUseFallbacks(true)
	res.UpdateStyles()
	var css strings.Builder
	base, _ := g.block(sheet.Snapshot(), media.AllQuery)
	css.WriteString(base)
	res.SetUseFallbacks(false)
	res.UpdateStyles() // no breakpoint active: every managed style is cleared
	for _, bp := range bps {
		sheet.ClearStyles()
		act.ActivateBreakpoint(bp)
		if block, ok := g.block(sheet.Snapshot(), bp.MediaQuery); ok {
			css.WriteString(block)
		}
		act.DeactivateBreakpoint(bp)
	}
	sheet.ClearStyles()
	tracer().Infof("generated static styles for %d elements", len(g.order))
	return css.String()
}

func (g *Generator[E]) reset() {
	g.classes = make(map[E]string)
	g.order = nil
}

// block formats the styles of a sheet as one @media block. Elements without
// any non-empty style are skipped. ok is false for a block without any rule.
func (g *Generator[E]) block(sheet *StyleSheet[E], query string) (string, bool) {
	var css strings.Builder
	rules := 0
	sheet.Each(func(el E, d style.Declarations) {
		keyVals := d.String()
		if keyVals == "" {
			return
		}
		fmt.Fprintf(&css, ".%s{%s}", g.className(el), keyVals)
		rules++
	})
	return fmt.Sprintf("@media %s{%s}", query, css.String()), rules > 0
}

// ClassName returns the class generated for an element by the last call to
// Generate, or "".
func (g *Generator[E]) ClassName(el E) string {
	return g.classes[el]
}

// Classes calls f for every element which got a class, in order of class
// allocation.
func (g *Generator[E]) Classes(f func(el E, class string)) {
	for _, el := range g.order {
		f(el, g.classes[el])
	}
}

func (g *Generator[E]) className(el E) string {
	if c, ok := g.classes[el]; ok {
		return c
	}
	prefix := g.Prefix
	if prefix == "" {
		prefix = DefaultClassPrefix
	}
	c := fmt.Sprintf("%s%d", prefix, len(g.order))
	g.classes[el] = c
	g.order = append(g.order, el)
	return c
}
