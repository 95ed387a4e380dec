package bind

import (
	"strconv"
	"strings"

	"github.com/npillmayer/respond/dom/style"
)

// StyleBuilder turns an input value of a responsive directive into style
// properties.
type StyleBuilder interface {
	BuildStyles(input string) style.Declarations
}

// SideEffecter is an optional interface of a StyleBuilder. SideEffect is
// called after the styles for an input have been applied.
type SideEffecter interface {
	SideEffect(input string, styles style.Declarations)
}

// BuilderFunc adapts a function to interface StyleBuilder.
type BuilderFunc func(input string) style.Declarations

// BuildStyles calls f(input).
func (f BuilderFunc) BuildStyles(input string) style.Declarations {
	return f(input)
}

// DeclarationBuilder uses an input value as the CSS value of a single
// property. Results are cached per input.
//
// If Unit is set and the property takes a length, unit-less numbers other
// than 0 get Unit appended, e.g. "10" → "10px". Compound values are
// handled field by field.
type DeclarationBuilder struct {
	Property string
	Unit     string
	cache    map[string]style.Declarations
}

// NewDeclarationBuilder creates a builder for a CSS property.
func NewDeclarationBuilder(property string) *DeclarationBuilder {
	return &DeclarationBuilder{Property: property}
}

// BuildStyles returns a single declaration "property: input". The input is
// trimmed; an empty input yields an empty value, removing the property.
func (b *DeclarationBuilder) BuildStyles(input string) style.Declarations {
	if d, ok := b.cache[input]; ok {
		return d.Clone()
	}
	if b.cache == nil {
		b.cache = make(map[string]style.Declarations)
	}
	value := strings.TrimSpace(input)
	if b.Unit != "" && style.IsDimension(b.Property) {
		value = withUnit(value, b.Unit)
	}
	d := style.Declarations{{Key: b.Property, Value: style.Property(value)}}
	b.cache[input] = d
	return d.Clone()
}

func withUnit(value, unit string) string {
	fields := strings.Fields(value)
	for i, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err == nil && f != "0" {
			fields[i] = f + unit
		}
	}
	return strings.Join(fields, " ")
}

// Cached wraps a builder, caching results per input. Builders with side
// effects keep them; SideEffect is forwarded for every input.
func Cached(b StyleBuilder) StyleBuilder {
	c := &cached{builder: b, cache: make(map[string]style.Declarations)}
	if se, ok := b.(SideEffecter); ok {
		return &cachedSideEffecter{cached: c, se: se}
	}
	return c
}

type cached struct {
	builder StyleBuilder
	cache   map[string]style.Declarations
}

func (c *cached) BuildStyles(input string) style.Declarations {
	d, ok := c.cache[input]
	if !ok {
		d = c.builder.BuildStyles(input)
		c.cache[input] = d
	}
	return d.Clone()
}

type cachedSideEffecter struct {
	*cached
	se SideEffecter
}

func (c *cachedSideEffecter) SideEffect(input string, styles style.Declarations) {
	c.se.SideEffect(input, styles)
}
