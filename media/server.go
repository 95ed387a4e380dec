package media

import (
	"github.com/npillmayer/respond/breakpoint"
)

// ServerWatcher is the Matcher of a simulated environment. Query lists are
// of type ServerQueryList; a query list is initially active if its query
// belongs to one of the breakpoints configured as active.
type ServerWatcher struct {
	*core
	active []*breakpoint.Breakpoint
}

// NewServerWatcher creates a simulated watcher. activeAliases names the
// breakpoints of reg which are active from the start. Unknown aliases are
// reported and skipped.
func NewServerWatcher(reg *breakpoint.Registry, activeAliases []string) *ServerWatcher {
	w := &ServerWatcher{}
	for _, alias := range activeAliases {
		bp := reg.FindByAlias(alias)
		if bp == nil {
			tracer().Errorf("no breakpoint found for server-side alias %q", alias)
			continue
		}
		w.active = append(w.active, bp)
	}
	w.core = newCore(w.buildList)
	if len(w.active) > 0 {
		queries := make([]string, len(w.active))
		for i, bp := range w.active {
			queries[i] = breakpoint.NormalizeQuery(bp.MediaQuery)
		}
		w.RegisterQuery(queries...)
	}
	return w
}

func (w *ServerWatcher) buildList(query string) QueryList {
	for _, bp := range w.active {
		if breakpoint.NormalizeQuery(bp.MediaQuery) == query {
			return NewServerQueryList(query, true)
		}
	}
	return NewServerQueryList(query, false)
}

// ActivateBreakpoint simulates the activation of a breakpoint. The query of
// bp is registered if necessary. Listeners are notified synchronously.
func (w *ServerWatcher) ActivateBreakpoint(bp *breakpoint.Breakpoint) {
	if ql := w.serverList(bp); ql != nil {
		ql.Activate()
	}
}

// DeactivateBreakpoint simulates the deactivation of a breakpoint.
func (w *ServerWatcher) DeactivateBreakpoint(bp *breakpoint.Breakpoint) {
	if ql := w.serverList(bp); ql != nil {
		ql.Deactivate()
	}
}

func (w *ServerWatcher) serverList(bp *breakpoint.Breakpoint) *ServerQueryList {
	if bp == nil || w.closed {
		return nil
	}
	query := breakpoint.NormalizeQuery(bp.MediaQuery)
	if _, ok := w.registry[query]; !ok {
		w.RegisterQuery(query)
	}
	e, ok := w.registry[query]
	if !ok {
		return nil
	}
	ql, _ := e.list.(*ServerQueryList)
	return ql
}

// Close removes all listeners and deactivates all query lists.
func (w *ServerWatcher) Close() {
	if w.closed {
		return
	}
	var lists []*ServerQueryList
	for _, e := range w.registry {
		if ql, ok := e.list.(*ServerQueryList); ok {
			lists = append(lists, ql)
		}
	}
	w.core.Close()
	for _, ql := range lists {
		ql.Destroy()
	}
}

var _ Matcher = (*ServerWatcher)(nil)
