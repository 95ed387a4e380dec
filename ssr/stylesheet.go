package ssr

import "github.com/npillmayer/respond/dom/style"

// StyleSheet is a virtual style sheet, capturing style properties per
// element. Elements are kept in the order of their first style.
//
// The zero value is not usable, call NewStyleSheet.
type StyleSheet[E comparable] struct {
	styles map[E]style.Declarations
	order  []E
}

// NewStyleSheet creates an empty virtual style sheet.
func NewStyleSheet[E comparable]() *StyleSheet[E] {
	return &StyleSheet[E]{styles: make(map[E]style.Declarations)}
}

// AddStyleToElement records a style property for an element. An empty value
// records the property as cleared.
func (s *StyleSheet[E]) AddStyleToElement(el E, key string, value style.Property) {
	d, ok := s.styles[el]
	if !ok {
		s.order = append(s.order, el)
	}
	s.styles[el] = d.Set(key, value)
}

// AddStylesToElement records a list of style properties for an element.
func (s *StyleSheet[E]) AddStylesToElement(el E, decls style.Declarations) {
	for _, kv := range decls {
		s.AddStyleToElement(el, kv.Key, kv.Value)
	}
}

// StyleForElement returns a recorded property value, or NullStyle.
func (s *StyleSheet[E]) StyleForElement(el E, key string) style.Property {
	v, _ := s.styles[el].Get(key)
	return v
}

// ClearStyles removes all recorded styles.
func (s *StyleSheet[E]) ClearStyles() {
	s.styles = make(map[E]style.Declarations)
	s.order = nil
}

// Len is the number of elements with recorded styles.
func (s *StyleSheet[E]) Len() int {
	return len(s.order)
}

// Each calls f for every element in the order of its first style. f
// receives a copy of the element's declarations.
func (s *StyleSheet[E]) Each(f func(el E, decls style.Declarations)) {
	for _, el := range s.order {
		f(el, s.styles[el].Clone())
	}
}

// Snapshot returns a copy of the sheet.
func (s *StyleSheet[E]) Snapshot() *StyleSheet[E] {
	c := NewStyleSheet[E]()
	s.Each(func(el E, d style.Declarations) {
		c.order = append(c.order, el)
		c.styles[el] = d
	})
	return c
}
