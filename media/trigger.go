package media

import (
	"strings"

	"github.com/npillmayer/respond/breakpoint"
)

// Trigger simulates media activations, e.g. to show a layout for a
// breakpoint which does not match the current viewport.
//
// Activate remembers the current activations, deactivates them and forces
// the given breakpoints to match. Restore returns to the remembered state.
// With auto-restore enabled and a platform reporting viewport resizes, the
// next resize restores automatically.
type Trigger struct {
	matcher     Matcher
	registry    *breakpoint.Registry
	autoRestore bool
	original    []Change        // activations before the first Activate
	cached      map[string]bool // set while activations are simulated
	stopResize  func()
}

// NewTrigger creates a trigger for a watcher.
func NewTrigger(m Matcher, reg *breakpoint.Registry, autoRestore bool) *Trigger {
	return &Trigger{matcher: m, registry: reg, autoRestore: autoRestore}
}

// Activate simulates activation of a list of aliases or media queries.
func (t *Trigger) Activate(aliasesOrQueries ...string) {
	list := make([]string, 0, len(aliasesOrQueries))
	for _, a := range aliasesOrQueries {
		if a = strings.TrimSpace(a); a != "" {
			list = append(list, t.toMediaQuery(a))
		}
	}
	t.saveActivations()
	t.deactivateAll()
	t.setActivation(list)
	t.prepareAutoRestore()
}

// Restore ends the simulation and re-establishes the activations which were
// current before the first call to Activate. Without a pending simulation
// Restore does nothing.
func (t *Trigger) Restore() {
	if t.cached == nil {
		return
	}
	list := make([]string, len(t.original))
	for i, ch := range t.original {
		list[i] = ch.MediaQuery
	}
	t.deactivateAll()
	if c := t.core(); c != nil {
		c.forced = nil
	}
	t.cached = nil
	t.original = nil
	if t.stopResize != nil {
		t.stopResize()
		t.stopResize = nil
	}
	t.simulate(list, true)
	tracer().Debugf("media trigger restored %d activations", len(list))
}

// IsSimulating reports whether activations are currently simulated.
func (t *Trigger) IsSimulating() bool {
	return t.cached != nil
}

func (t *Trigger) core() *core {
	if b, ok := t.matcher.(interface{ base() *core }); ok {
		return b.base()
	}
	return nil
}

func (t *Trigger) toMediaQuery(aliasOrQuery string) string {
	if q := t.registry.ToMediaQuery(aliasOrQuery); q != "" {
		return q
	}
	return aliasOrQuery
}

func (t *Trigger) saveActivations() {
	if t.cached != nil {
		return
	}
	t.original = t.original[:0]
	t.cached = make(map[string]bool)
	for _, q := range t.matcher.Activations() {
		t.original = append(t.original, MergeAlias(NewChange(true, q), t.registry.FindByQuery(q)))
		t.cached[q] = true
	}
	SortDescending(t.original)
}

func (t *Trigger) deactivateAll() {
	list := t.matcher.Activations()
	t.force(list, false)
	t.simulate(list, false)
}

func (t *Trigger) setActivation(queries []string) {
	t.matcher.RegisterQuery(queries...)
	t.force(queries, true)
	t.simulate(queries, true)
}

// force replaces the match states of the watcher by simulated ones.
func (t *Trigger) force(queries []string, matches bool) {
	c := t.core()
	if c == nil {
		return
	}
	forced := make(map[string]bool, len(queries))
	for _, q := range queries {
		forced[q] = matches
	}
	c.forced = forced
}

func (t *Trigger) simulate(queries []string, matches bool) {
	c := t.core()
	for _, q := range queries {
		ch := NewChange(matches, q)
		if c != nil {
			c.emit(ch)
		}
	}
}

func (t *Trigger) prepareAutoRestore() {
	if !t.autoRestore || t.stopResize != nil {
		return
	}
	w, ok := t.matcher.(*Watcher)
	if !ok || w.platform == nil {
		return
	}
	resizer, ok := w.platform.(ResizeEvents)
	if !ok {
		return
	}
	t.stopResize = resizer.OnResize(func() {
		t.Restore()
	})
}
