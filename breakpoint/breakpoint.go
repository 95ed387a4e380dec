package breakpoint

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Breakpoint is a named media query together with its priority.
//
// Higher priorities win when more than one breakpoint is active at the same
// time. Overlapping marks breakpoints whose range is not mutually exclusive
// with others, e.g. "gt-sm" overlaps "gt-md".
type Breakpoint struct {
	Alias       string `yaml:"alias" toml:"alias" json:"alias"`
	MediaQuery  string `yaml:"mediaQuery" toml:"mediaQuery" json:"mediaQuery"`
	Priority    int    `yaml:"priority" toml:"priority" json:"priority"`
	Suffix      string `yaml:"suffix,omitempty" toml:"suffix,omitempty" json:"suffix,omitempty"`
	Overlapping bool   `yaml:"overlapping,omitempty" toml:"overlapping,omitempty" json:"overlapping,omitempty"`
}

func (bp *Breakpoint) String() string {
	if bp == nil {
		return "<no breakpoint>"
	}
	return fmt.Sprintf("%s[%d](%s)", bp.Alias, bp.Priority, bp.MediaQuery)
}

// Clone returns a copy of bp. Clone of nil is nil.
func (bp *Breakpoint) Clone() *Breakpoint {
	if bp == nil {
		return nil
	}
	c := *bp
	return &c
}

// Suffix derives the UpperCamelCase suffix for an alias. Alias parts are
// delimited by '.', '-' or '_':
//
//	Suffix("gt-sm")             ⇒ "GtSm"
//	Suffix("handset.landscape") ⇒ "HandsetLandscape"
func Suffix(alias string) string {
	parts := strings.FieldsFunc(alias, func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	})
	var sb strings.Builder
	for _, part := range parts {
		r, size := utf8.DecodeRuneInString(part)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(part[size:])
	}
	return sb.String()
}

// NormalizeQuery strips surrounding white space from a media query. Query
// lists of media watchers and registries are keyed by normalized queries.
func NormalizeQuery(query string) string {
	return strings.TrimSpace(query)
}

func priorityOf(bp *Breakpoint) int {
	if bp == nil {
		return 0
	}
	return bp.Priority
}

// SortDescending sorts a list of breakpoints by descending priority, in place.
// The sort is stable, so breakpoints of equal priority keep their order.
func SortDescending(list []*Breakpoint) {
	sort.SliceStable(list, func(i, j int) bool {
		return priorityOf(list[i]) > priorityOf(list[j])
	})
}

// SortAscending sorts a list of breakpoints by ascending priority, in place.
// The sort is stable.
func SortAscending(list []*Breakpoint) {
	sort.SliceStable(list, func(i, j int) bool {
		return priorityOf(list[i]) < priorityOf(list[j])
	})
}

// Contains checks if a breakpoint with the same media query is part of list.
func Contains(list []*Breakpoint, bp *Breakpoint) bool {
	if bp == nil {
		return false
	}
	for _, b := range list {
		if b == bp || (b != nil && b.MediaQuery == bp.MediaQuery) {
			return true
		}
	}
	return false
}
