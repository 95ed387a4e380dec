package cssom

import "github.com/npillmayer/respond/dom/style"

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// Clients will have to provide a concrete implementation of this interface
// (e.g., see package douceuradapter).
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet, nested rules flattened
}

// Rule is the type stylesheets consists of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Media() string               // media query of the enclosing @media block, or ""
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
}

// Declarations collects the properties of a rule in order.
func Declarations(r Rule) style.Declarations {
	var d style.Declarations
	for _, key := range r.Properties() {
		d = d.Set(key, r.Value(key))
	}
	return d
}

// RulesForMedia returns the rules of a sheet which are nested in an @media
// block with the given query. An empty query selects top-level rules.
func RulesForMedia(sheet StyleSheet, media string) []Rule {
	var rules []Rule
	for _, r := range sheet.Rules() {
		if r.Media() == media {
			rules = append(rules, r)
		}
	}
	return rules
}

// Media returns the distinct media queries of a sheet's @media blocks, in
// order of appearance.
func Media(sheet StyleSheet) []string {
	var queries []string
	seen := make(map[string]bool)
	for _, r := range sheet.Rules() {
		if m := r.Media(); m != "" && !seen[m] {
			seen[m] = true
			queries = append(queries, m)
		}
	}
	return queries
}

// Lookup finds the value of a property for a selector within a media block.
// If more than one rule matches, the last one wins.
func Lookup(sheet StyleSheet, media, selector, key string) (style.Property, bool) {
	value, found := style.NullStyle, false
	for _, r := range RulesForMedia(sheet, media) {
		if r.Selector() != selector {
			continue
		}
		for _, k := range r.Properties() {
			if k == key {
				value, found = r.Value(key), true
			}
		}
	}
	if !found {
		tracer().Debugf("no value for %s { %s } in @media %q", selector, key, media)
	}
	return value, found
}
