package media

import (
	"fmt"

	"github.com/npillmayer/respond/breakpoint"
)

// AllQuery is the media query matching every environment.
const AllQuery = "all"

// Change is a point-in-time observation of a single media query's match
// state. Alias, Suffix and Priority are empty until the change is enriched
// with breakpoint information (see MergeAlias). Property and Value are free
// for clients which want to transport a payload.
type Change struct {
	Matches    bool
	MediaQuery string
	Alias      string
	Suffix     string
	Priority   int
	Property   string
	Value      any
}

// NewChange creates a change event for a raw media query.
func NewChange(matches bool, query string) Change {
	return Change{Matches: matches, MediaQuery: query}
}

// Clone returns a copy of c. Value is copied shallowly.
func (c Change) Clone() Change {
	return c
}

func (c Change) String() string {
	state := "inactive"
	if c.Matches {
		state = "active"
	}
	if c.Alias != "" {
		return fmt.Sprintf("%s[%s] %s", c.Alias, c.MediaQuery, state)
	}
	return fmt.Sprintf("[%s] %s", c.MediaQuery, state)
}

// MergeAlias returns a copy of c, enriched with the alias, media query,
// suffix and priority of a breakpoint. If bp is nil, the copy is unchanged.
func MergeAlias(c Change, bp *breakpoint.Breakpoint) Change {
	c = c.Clone()
	if bp != nil {
		c.Alias = bp.Alias
		c.MediaQuery = bp.MediaQuery
		c.Suffix = bp.Suffix
		c.Priority = bp.Priority
	}
	return c
}

// SortDescending sorts changes by descending priority. The sort is stable.
func SortDescending(changes []Change) {
	sortChanges(changes, func(a, b int) bool { return a > b })
}

// SortAscending sorts changes by ascending priority. The sort is stable.
func SortAscending(changes []Change) {
	sortChanges(changes, func(a, b int) bool { return a < b })
}
