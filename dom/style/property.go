package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'respond.style'
func tracer() tracing.Trace {
	return tracing.Select("respond.style")
}

// Property is a raw value for a CSS property. For example, with
//
//     flex: 1 1 100%
//
// a property value of "1 1 100%" is set. Values are opaque: this package
// neither validates nor interprets them.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- Declarations -----------------------------------------------------

// Declarations is an ordered list of style properties, as written inside a
// CSS rule or a style attribute. Every key occurs at most once. nil is a
// legal (empty) list.
type Declarations []KeyValue

// Decl is a shortcut to create declarations from alternating keys and values.
//
//    style.Decl("display", "flex", "flex-direction", "row")
//
// A trailing key without a value is ignored.
func Decl(kv ...string) Declarations {
	var d Declarations
	for i := 0; i+1 < len(kv); i += 2 {
		d = d.Set(kv[i], Property(kv[i+1]))
	}
	return d
}

// Get returns the value for a key.
func (d Declarations) Get(key string) (Property, bool) {
	for _, kv := range d {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return NullStyle, false
}

// Set sets the value of a key. An existing entry keeps its position.
func (d Declarations) Set(key string, value Property) Declarations {
	for i, kv := range d {
		if kv.Key == key {
			d[i].Value = value
			return d
		}
	}
	return append(d, KeyValue{Key: key, Value: value})
}

// Remove deletes a key, if present.
func (d Declarations) Remove(key string) Declarations {
	for i, kv := range d {
		if kv.Key == key {
			return append(d[:i:i], d[i+1:]...)
		}
	}
	return d
}

// Merge sets all entries of other, overwriting existing values.
func (d Declarations) Merge(other Declarations) Declarations {
	for _, kv := range other {
		d = d.Set(kv.Key, kv.Value)
	}
	return d
}

// Keys returns the property keys in order.
func (d Declarations) Keys() []string {
	keys := make([]string, len(d))
	for i, kv := range d {
		keys[i] = kv.Key
	}
	return keys
}

// Clone returns a copy of d.
func (d Declarations) Clone() Declarations {
	if d == nil {
		return nil
	}
	return append(Declarations(nil), d...)
}

// Sorted returns a copy of d, sorted by key.
func (d Declarations) Sorted() Declarations {
	c := d.Clone()
	sort.SliceStable(c, func(i, j int) bool { return c[i].Key < c[j].Key })
	return c
}

// String formats declarations as CSS text, e.g. "display:flex;flex:1;".
// Entries with empty values are skipped.
func (d Declarations) String() string {
	var b strings.Builder
	for _, kv := range d {
		if kv.Value.IsEmpty() {
			continue
		}
		fmt.Fprintf(&b, "%s:%s;", kv.Key, kv.Value)
	}
	return b.String()
}

// --- Inheritance ------------------------------------------------------

// IsCascading returns wether the standard behaviour for a propery is to be
// inherited or not, i.e., a call to retrieve its value will cascade.
func IsCascading(key string) bool {
	if strings.HasPrefix(key, "list-style") || strings.HasPrefix(key, "font") {
		return true
	}
	switch key {
	case "color", "cursor", "direction", "flow-into", "flow-from":
		return true
	case "letter-spacing", "line-height", "quotes", "visibility", "white-space":
		return true
	case "word-spacing", "word-break", "word-wrap", "text-align":
		return true
	}
	return false
}

// --- Compound properties ----------------------------------------------

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//    SplitCompountProperty("padding", "3px")
// will return
//    "padding-top"    => "3px"
//    "padding-right"  => "3px"
//    "padding-bottom" => "3px"
//    "padding-left  " => "3px"
// For the logic behind this, refer to e.g.
// https://www.w3schools.com/css/css_padding.asp .
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields := strings.Fields(value.String())
	switch key {
	case "margin":
		return feazeCompound4("margin", "", fourDirs, fields)
	case "padding":
		return feazeCompound4("padding", "", fourDirs, fields)
	case "border-color":
		return feazeCompound4("border", "color", fourDirs, fields)
	case "border-width":
		return feazeCompound4("border", "width", fourDirs, fields)
	case "border-style":
		return feazeCompound4("border", "style", fourDirs, fields)
	case "border-radius":
		return feazeCompound4("border", "radius", fourCorners, fields)
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// CompoundOf returns the shortcut property a fine grained property is a
// component of, e.g. "padding" for "padding-left", or "".
func CompoundOf(key string) string {
	for _, compound := range []string{"margin", "padding"} {
		for _, dir := range fourDirs {
			if key == p(compound, "", dir) {
				return compound
			}
		}
	}
	for _, suf := range []string{"color", "width", "style"} {
		for _, dir := range fourDirs {
			if key == p("border", suf, dir) {
				return "border-" + suf
			}
		}
	}
	for _, corner := range fourCorners {
		if key == p("border", "radius", corner) {
			return "border-radius"
		}
	}
	return ""
}

// CSS logic to distribute individual values from compound shortcuts is as
// follows: https://www.w3schools.com/css/css_border.asp
func feazeCompound4(pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s-%s", pre, suf)
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{p(pre, suf, dirs[0]), Property(fields[0])}
	if l >= 2 {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		if l >= 3 {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[2])}
			if l == 4 {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[3])}
			} else {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
			}
		} else {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
			r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
		}
	} else {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[0])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[0])}
	}
	return r, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func p(prefix string, suffix string, tag string) string {
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}
