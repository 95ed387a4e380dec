/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/respond/dom/style"
	"github.com/npillmayer/respond/dom/style/cssom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSStyles is an adapter for interface cssom.StyleSheet.
// For an explanation of the motivation behind this design, please refer
// to documentation for interface cssom.StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Wrap a douceur.css.Stylesheet into CssStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSStyles {
	sheet := &CSSStyles{*css}
	return sheet
}

// Parse parses CSS text into a style sheet.
func Parse(text string) (*CSSStyles, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("douceuradapter: cannot parse style sheet: %w", err)
	}
	return Wrap(sheet), nil
}

// ParseDeclarations parses the content of a style attribute, e.g.
// "display: flex; flex: 1".
func ParseDeclarations(text string) (style.Declarations, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if !strings.HasSuffix(text, ";") {
		text += ";" // the parser drops the value of an unterminated last declaration
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("douceuradapter: malformed style %q: %w", text, err)
	}
	var d style.Declarations
	for _, decl := range decls {
		d = d.Set(decl.Property, style.Property(decl.Value))
	}
	return d, nil
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	if othercss, ok := other.(*CSSStyles); ok {
		sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
		return
	}
	for _, r := range other.Rules() {
		sheet.css.Rules = append(sheet.css.Rules, toDouceur(r))
	}
}

func toDouceur(r cssom.Rule) *css.Rule {
	rule := css.NewRule(css.QualifiedRule)
	rule.Prelude = r.Selector()
	for _, key := range r.Properties() {
		rule.Declarations = append(rule.Declarations, &css.Declaration{
			Property:  key,
			Value:     r.Value(key).String(),
			Important: r.IsImportant(key),
		})
	}
	if m := r.Media(); m != "" {
		media := css.NewRule(css.AtRule)
		media.Name = "@media"
		media.Prelude = m
		media.Rules = []*css.Rule{rule}
		return media
	}
	return rule
}

// Rules returns all the rules of a stylesheet. Rules nested in @media
// blocks are flattened, other at-rules are skipped.
//
// Interface style.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, 0, len(sheet.css.Rules))
	for _, r := range sheet.css.Rules {
		if r.Kind == css.AtRule {
			if r.Name != "@media" {
				continue
			}
			for _, nested := range r.Rules {
				rules = append(rules, Rule{rule: nested, media: strings.TrimSpace(r.Prelude)})
			}
			continue
		}
		rules = append(rules, Rule{rule: r})
	}
	return rules
}

// String returns the CSS text of the sheet.
func (sheet *CSSStyles) String() string {
	return sheet.css.String()
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule struct {
	rule  *css.Rule
	media string
}

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return strings.TrimSpace(r.rule.Prelude)
}

// Media returns the query of the enclosing @media block.
func (r Rule) Media() string {
	return r.media
}

// Properties returns the property keys of a rule,
// e.g. "margin-top"
func (r Rule) Properties() []string {
	decl := r.rule.Declarations
	props := make([]string, 0, len(decl))
	for _, d := range decl {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property values for given key with this rule, e.g. "15px"
func (r Rule) Value(key string) style.Property {
	decl := r.rule.Declarations
	for _, d := range decl {
		if d.Property == key {
			return style.Property(d.Value)
		}
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	decl := r.rule.Declarations
	for _, d := range decl {
		if d.Property == key {
			return d.Important
		}
	}
	return false
}

var _ cssom.Rule = Rule{}

// ExtractStyleElements visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. It returns the content of
// style-elements as style sheets.
func ExtractStyleElements(htmldoc *html.Node) ([]*CSSStyles, error) {
	head := findElement(atom.Head, htmldoc)
	body := findElement(atom.Body, htmldoc)
	css, err := extractStyles(head)
	if err != nil {
		return nil, err
	}
	css2, err := extractStyles(body)
	if err != nil {
		return nil, err
	}
	return append(css, css2...), nil
}

func extractStyles(h *html.Node) ([]*CSSStyles, error) {
	if h == nil {
		return nil, nil
	}
	var css []*CSSStyles
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom != atom.Style || ch.FirstChild == nil {
			continue
		}
		c, err := Parse(ch.FirstChild.Data)
		if err != nil {
			return nil, err
		}
		css = append(css, c)
	}
	return css, nil
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	ch := h.FirstChild
	for ch != nil {
		r := findElement(a, ch)
		if r != nil && r.DataAtom == a {
			return r
		}
		ch = ch.NextSibling
	}
	return nil
}
