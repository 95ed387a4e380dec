/*
Package bind connects responsive input values of elements to style sinks.

A Binding plays the role of a responsive layout directive: it stores the
values of one key of one element per breakpoint in a marshaller, and turns
the value which currently applies into style properties using a
StyleBuilder. The properties are written to a Sink, usually a
styler.Styler.

    b := bind.Bind(m, reg, sink, el, "flex", bind.NewDeclarationBuilder("flex"))
    b.SetValue("1", "")   // base value
    b.SetValue("2", "md") // value for breakpoint md

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package bind

import (
	"strings"

	"github.com/npillmayer/respond/breakpoint"
	"github.com/npillmayer/respond/dom/style"
	"github.com/npillmayer/respond/marshal"
	"github.com/npillmayer/respond/stream"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'respond.bind'.
func tracer() tracing.Trace {
	return tracing.Select("respond.bind")
}

// Sink receives the styles of bound elements.
type Sink[E any] interface {
	ApplyStyles(el E, decls style.Declarations) error
	ClearStyles(el E, keys ...string) error
}

// Binding is the responsive binding of one key of one element.
type Binding[E comparable] struct {
	el       E
	key      string
	m        *marshal.Marshaller[E, string]
	registry *breakpoint.Registry
	sink     Sink[E]
	builder  StyleBuilder
	mru      style.Declarations // most recently applied styles
	released bool
}

// Bind registers a key of an element with a marshaller. Every value of
// a trigger stream re-applies the current value.
func Bind[E comparable](m *marshal.Marshaller[E, string], reg *breakpoint.Registry, sink Sink[E],
	el E, key string, builder StyleBuilder, triggers ...stream.Stream[struct{}]) *Binding[E] {
	//
	b := &Binding[E]{
		el:       el,
		key:      key,
		m:        m,
		registry: reg,
		sink:     sink,
		builder:  builder,
	}
	m.Init(el, key, b.updateWithValue, b.clearStyles, triggers...)
	return b
}

// Key returns the bound key.
func (b *Binding[E]) Key() string {
	return b.key
}

// SetValue stores the value of the key for a breakpoint alias. The empty
// alias stands for the base value. Values for unknown aliases are dropped.
func (b *Binding[E]) SetValue(value string, alias string) {
	if b.released {
		return
	}
	suffix := ""
	if alias != "" {
		bp := b.registry.FindByAlias(alias)
		if bp == nil {
			tracer().Errorf("%s: no breakpoint with alias %q", b.key, alias)
			return
		}
		suffix = bp.Suffix
	}
	b.m.SetValue(b.el, b.key, value, suffix)
}

// SetInput stores a value given as a named input, either the plain key
// ("flex") for the base value or key and alias separated by a dot
// ("flex.gt-sm"). Aliases may contain dots themselves. Inputs with a
// different key are ignored and reported as false.
func (b *Binding[E]) SetInput(name string, value string) bool {
	if name == b.key {
		b.SetValue(value, "")
		return true
	}
	if alias := strings.TrimPrefix(name, b.key+"."); alias != name && alias != "" {
		b.SetValue(value, alias)
		return true
	}
	return false
}

// Value returns the value which currently applies.
func (b *Binding[E]) Value() (string, bool) {
	return b.m.GetValue(b.el, b.key)
}

// Styles returns the styles most recently applied by the binding.
func (b *Binding[E]) Styles() style.Declarations {
	return b.mru.Clone()
}

// Release removes the styles of the binding and drops its key from the
// marshaller. Release is idempotent.
func (b *Binding[E]) Release() {
	if b.released {
		return
	}
	b.clearStyles()
	b.released = true
	b.m.ReleaseKey(b.el, b.key)
}

func (b *Binding[E]) updateWithValue(input string) {
	styles := b.builder.BuildStyles(input)
	var stale []string
	for _, kv := range b.mru {
		if _, ok := styles.Get(kv.Key); !ok {
			stale = append(stale, kv.Key)
		}
	}
	if len(stale) > 0 {
		b.report(b.sink.ClearStyles(b.el, stale...))
	}
	b.mru = styles
	b.report(b.sink.ApplyStyles(b.el, styles))
	if se, ok := b.builder.(SideEffecter); ok {
		se.SideEffect(input, styles.Clone())
	}
}

func (b *Binding[E]) clearStyles() {
	if len(b.mru) == 0 {
		return
	}
	b.report(b.sink.ClearStyles(b.el, b.mru.Keys()...))
	b.mru = nil
}

func (b *Binding[E]) report(err error) {
	if err != nil {
		tracer().Errorf("%s: %v", b.key, err)
	}
}
