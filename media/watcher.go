package media

import (
	"strings"

	"github.com/npillmayer/respond/breakpoint"
	"github.com/npillmayer/respond/stream"
)

// Matcher is the contract shared by the browser and the server watcher.
type Matcher interface {
	// IsActive reports whether a raw media query matches. Unknown queries
	// are registered first.
	IsActive(query string) bool
	// RegisterQuery starts tracking every query not tracked yet and returns
	// change events for all requested queries which currently match.
	RegisterQuery(queries ...string) []Change
	// Observe returns a cold stream of changes. See Watcher.Observe.
	Observe(queries []string, excludeOthers bool) stream.Stream[Change]
	// Activations returns the queries currently matching, in registration
	// order.
	Activations() []string
	// Close removes all listeners and terminates the streams.
	Close()
}

// entry is one tracked media query.
type entry struct {
	list   QueryList
	remove func()
}

// core implements the parts of Matcher common to both variants.
type core struct {
	queries  []string // registration order
	registry map[string]*entry
	forced   map[string]bool // simulated match states, if not nil
	source   *stream.Behavior[Change]
	build    func(query string) QueryList
	prime    func(queries []string)
	closed   bool
}

func newCore(build func(string) QueryList) *core {
	return &core{
		registry: make(map[string]*entry),
		source:   stream.NewBehavior(NewChange(true, AllQuery)),
		build:    build,
	}
}

// IsActive reports whether a raw media query currently matches.
func (c *core) IsActive(query string) bool {
	query = breakpoint.NormalizeQuery(query)
	if _, ok := c.registry[query]; !ok && !c.closed {
		c.RegisterQuery(query)
	}
	return c.matches(query)
}

func (c *core) matches(query string) bool {
	if c.forced != nil {
		return c.forced[query]
	}
	if e, ok := c.registry[query]; ok {
		return e.list.Matches()
	}
	return false
}

// RegisterQuery tracks queries not seen before and returns the current
// matches among all of the requested queries.
func (c *core) RegisterQuery(queries ...string) []Change {
	list := uniqueQueries(queries)
	if len(list) == 0 || c.closed {
		return nil
	}
	if c.prime != nil {
		c.prime(list)
	}
	var matches []Change
	for _, query := range list {
		if _, ok := c.registry[query]; !ok {
			c.track(query)
		}
		if c.matches(query) {
			matches = append(matches, NewChange(true, query))
		}
	}
	return matches
}

func (c *core) track(query string) {
	ql := c.build(query)
	e := &entry{list: ql}
	e.remove = ql.AddListener(func(matches bool) {
		if c.closed {
			return
		}
		tracer().Debugf("media query [%s] matches=%v", query, matches)
		c.source.Next(NewChange(matches, query))
	})
	c.registry[query] = e
	c.queries = append(c.queries, query)
}

// Observe returns a cold stream of change events.
//
// Without queries, the shared broadcast of all tracked queries is returned.
// It replays the latest change to new subscribers and is seeded with a
// change matching "all".
//
// With queries, every subscription first registers the queries and emits
// their current matches. The last of these matches is pushed into the
// broadcast instead, which replays it as the first broadcast value. After
// that, all changes of tracked queries follow, restricted to the requested
// queries if excludeOthers is set.
func (c *core) Observe(queries []string, excludeOthers bool) stream.Stream[Change] {
	if len(queries) == 0 {
		return c.source
	}
	list := uniqueQueries(queries)
	registration := stream.FromFunc(func(emit func(Change)) {
		matches := c.RegisterQuery(list...)
		if len(matches) == 0 {
			return
		}
		last := matches[len(matches)-1]
		for _, m := range matches[:len(matches)-1] {
			emit(m)
		}
		c.source.Next(last)
	})
	var broadcast stream.Stream[Change] = c.source
	if excludeOthers {
		requested := make(map[string]bool, len(list))
		for _, q := range list {
			requested[q] = true
		}
		broadcast = stream.Filter(broadcast, func(ch Change) bool {
			return requested[ch.MediaQuery]
		})
	}
	return stream.Merge(registration, broadcast)
}

// Activations returns the currently matching queries in registration order.
func (c *core) Activations() []string {
	var active []string
	for _, q := range c.queries {
		if c.matches(q) {
			active = append(active, q)
		}
	}
	return active
}

// Queries returns all tracked queries in registration order.
func (c *core) Queries() []string {
	q := make([]string, len(c.queries))
	copy(q, c.queries)
	return q
}

// emit pushes a synthetic change into the broadcast.
func (c *core) emit(ch Change) {
	if !c.closed {
		c.source.Next(ch)
	}
}

// Close removes all listeners and terminates the broadcast. Close is
// idempotent.
func (c *core) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, q := range c.queries {
		if e := c.registry[q]; e.remove != nil {
			e.remove()
		}
	}
	c.registry = make(map[string]*entry)
	c.queries = nil
	c.source.Close()
	tracer().Debugf("media watcher closed")
}

func (c *core) base() *core { return c }

// --- Browser watcher -------------------------------------------------------

// Watcher is the Matcher for a live environment.
type Watcher struct {
	*core
	platform Platform
	primed   map[string]bool
}

// NewWatcher creates a watcher for a platform. platform may be nil, in which
// case all queries are static.
func NewWatcher(platform Platform) *Watcher {
	w := &Watcher{platform: platform, primed: make(map[string]bool)}
	w.core = newCore(w.buildList)
	w.core.prime = w.primeQueries
	return w
}

// Platform returns the platform of w, which may be nil.
func (w *Watcher) Platform() Platform {
	return w.platform
}

func (w *Watcher) buildList(query string) QueryList {
	if w.platform != nil {
		if ql := w.platform.MatchMedia(query); ql != nil {
			return ql
		}
		tracer().Debugf("platform cannot match [%s], using static query list", query)
	}
	return StaticQueryList(query)
}

// primeQueries makes sure the environment knows a CSS rule for every query.
// Some engines will not fire change events for queries which are not
// referenced by a style sheet. Every query is primed once per watcher.
func (w *Watcher) primeQueries(queries []string) {
	if w.platform == nil {
		return
	}
	var fresh []string
	for _, q := range queries {
		if !w.primed[q] {
			w.primed[q] = true
			fresh = append(fresh, q)
		}
	}
	if len(fresh) == 0 {
		return
	}
	w.platform.AppendStyle(QueryTestCSS(fresh))
}

// QueryTestCSS is the style sheet used to prime a batch of media queries.
func QueryTestCSS(queries []string) string {
	return "@media " + strings.Join(queries, ", ") + " {.fx-query-test{ }}"
}

var _ Matcher = (*Watcher)(nil)
