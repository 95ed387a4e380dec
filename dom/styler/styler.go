/*
Package styler writes and reads style properties of HTML elements.

A Styler is the sink of resolved responsive values. In inline mode it
writes to the style attribute of elements. In server mode, i.e. when
constructed with a static style sheet, writes are captured by the sheet and
the style attributes stay untouched; the sheet is then rendered into
@media blocks by package ssr.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package styler

import (
	"fmt"

	"github.com/npillmayer/respond/dom"
	"github.com/npillmayer/respond/dom/style"
	"github.com/npillmayer/respond/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/respond/ssr"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'respond.styler'.
func tracer() tracing.Trace {
	return tracing.Select("respond.styler")
}

// Styler applies styles to HTML elements.
type Styler struct {
	sheet *ssr.StyleSheet[*html.Node]
}

// New creates a styler writing to style attributes.
func New() *Styler {
	return &Styler{}
}

// NewServer creates a styler capturing styles in a static style sheet.
func NewServer(sheet *ssr.StyleSheet[*html.Node]) *Styler {
	return &Styler{sheet: sheet}
}

// IsServer reports whether styles are captured by a style sheet.
func (s *Styler) IsServer() bool {
	return s.sheet != nil
}

// StyleSheet returns the style sheet of a server styler, or nil.
func (s *Styler) StyleSheet() *ssr.StyleSheet[*html.Node] {
	return s.sheet
}

// ApplyStyles sets style properties of an element. Empty values remove a
// property. An error is returned if the element's style attribute cannot be
// parsed; the element is left unchanged in this case.
func (s *Styler) ApplyStyles(el *html.Node, decls style.Declarations) error {
	if !dom.IsElement(el) {
		return nil
	}
	if s.sheet != nil {
		s.sheet.AddStylesToElement(el, decls)
		return nil
	}
	inline, err := inlineStyles(el)
	if err != nil {
		return err
	}
	for _, kv := range decls {
		if kv.Value.IsEmpty() {
			inline = inline.Remove(kv.Key)
		} else {
			inline = inline.Set(kv.Key, kv.Value)
		}
	}
	dom.SetAttr(el, "style", inline.String())
	return nil
}

// ApplyStyle sets a single style property of an element.
func (s *Styler) ApplyStyle(el *html.Node, key string, value style.Property) error {
	return s.ApplyStyles(el, style.Declarations{{Key: key, Value: value}})
}

// ClearStyles removes style properties of an element.
func (s *Styler) ClearStyles(el *html.Node, keys ...string) error {
	decls := make(style.Declarations, 0, len(keys))
	for _, key := range keys {
		decls = decls.Set(key, style.NullStyle)
	}
	return s.ApplyStyles(el, decls)
}

// AddClass adds a CSS class to an element.
func (s *Styler) AddClass(el *html.Node, class string) {
	dom.AddClass(el, class)
}

// LookupInlineStyle returns the value of a property from the style
// attribute of an element. Fine grained properties are found in compound
// shortcuts as well, e.g. "padding-left" in "padding: 1px 2px".
// If the property is not set, "" is returned.
func (s *Styler) LookupInlineStyle(el *html.Node, key string) (string, error) {
	inline, err := inlineStyles(el)
	if err != nil {
		return "", err
	}
	if v, ok := inline.Get(key); ok {
		return v.String(), nil
	}
	compound := style.CompoundOf(key)
	if compound == "" {
		return "", nil
	}
	v, ok := inline.Get(compound)
	if !ok {
		return "", nil
	}
	parts, err := style.SplitCompoundProperty(compound, v)
	if err != nil {
		return "", fmt.Errorf("styler: property %s of <%s>: %w", compound, el.Data, err)
	}
	for _, kv := range parts {
		if kv.Key == key {
			return kv.Value.String(), nil
		}
	}
	return "", nil
}

// LookupStyle returns the effective value of a property. The style sheet
// (in server mode) and the style attribute are consulted first. If inherit is
// set and the property is inherited in CSS, ancestors are searched. At last,
// the user-agent default is returned, which may be NullStyle.
func (s *Styler) LookupStyle(el *html.Node, key string, inherit bool) (style.Property, error) {
	for n := el; n != nil; n = n.Parent {
		if !dom.IsElement(n) {
			continue
		}
		v, err := s.lookupOwn(n, key)
		if err != nil {
			return style.NullStyle, err
		}
		if !v.IsEmpty() {
			return v, nil
		}
		if !inherit || !style.IsCascading(key) {
			break
		}
	}
	return style.GetUserAgentDefaultProperty(el, key), nil
}

func (s *Styler) lookupOwn(el *html.Node, key string) (style.Property, error) {
	if s.sheet != nil {
		if v := s.sheet.StyleForElement(el, key); !v.IsEmpty() {
			return v, nil
		}
	}
	v, err := s.LookupInlineStyle(el, key)
	return style.Property(v), err
}

func inlineStyles(el *html.Node) (style.Declarations, error) {
	attr, ok := dom.Attr(el, "style")
	if !ok {
		return nil, nil
	}
	d, err := douceuradapter.ParseDeclarations(attr)
	if err != nil {
		tracer().Errorf("style attribute of %s: %v", dom.Path(el), err)
		return nil, fmt.Errorf("styler: %w", err)
	}
	return d, nil
}
