package printhook

import (
	"github.com/npillmayer/respond/breakpoint"
	"github.com/npillmayer/respond/media"
)

// PrintQuery is the media query of print media.
const PrintQuery = "print"

// PrintBreakpoint is the built-in breakpoint for print media. It has the
// highest priority of all default breakpoints.
var PrintBreakpoint = breakpoint.Breakpoint{
	Alias:      "print",
	MediaQuery: PrintQuery,
	Priority:   1000,
	Suffix:     "Print",
}

// Target is a component which holds a list of activated breakpoints, usually
// a marshal.Marshaller.
type Target interface {
	ActivatedBreakpoints() []*breakpoint.Breakpoint
	SetActivatedBreakpoints([]*breakpoint.Breakpoint)
	UpdateStyles()
}

// Hook is the print interceptor. It is either in state normal or in state
// printing.
type Hook struct {
	registry     *breakpoint.Registry
	printAliases []string
	events       media.PrintEvents
	printing     bool
	fromHooks    bool                     // printing was started by a before-print notification
	queue        []*breakpoint.Breakpoint // restore queue, ascending priority
	deactivated  []*breakpoint.Breakpoint // deactivations since the last activation
	hooked       bool
	removers     []func()
	closed       bool
}

// New creates a print hook for a registry. printAliases name the breakpoints
// to use in addition to the built-in print breakpoint while printing. events
// may be nil if the platform does not report before/after printing.
func New(reg *breakpoint.Registry, printAliases []string, events media.PrintEvents) *Hook {
	aliases := make([]string, len(printAliases))
	copy(aliases, printAliases)
	return &Hook{registry: reg, printAliases: aliases, events: events}
}

// WithPrintQuery appends the print query to a list of queries, if not
// already present. queries is not modified.
func (h *Hook) WithPrintQuery(queries []string) []string {
	list := make([]string, 0, len(queries)+1)
	found := false
	for _, q := range queries {
		found = found || q == PrintQuery
		list = append(list, q)
	}
	if !found {
		list = append(list, PrintQuery)
	}
	return list
}

// IsPrintEvent is true for changes of the print query.
func (h *Hook) IsPrintEvent(c media.Change) bool {
	return c.MediaQuery == PrintQuery
}

// IsPrinting reports the state of the hook.
func (h *Hook) IsPrinting() bool {
	return h.printing
}

// PrintBreakpoints returns the breakpoints of the configured print aliases.
// Unknown aliases are skipped.
func (h *Hook) PrintBreakpoints() []*breakpoint.Breakpoint {
	var list []*breakpoint.Breakpoint
	for _, alias := range h.printAliases {
		if bp := h.registry.FindByAlias(alias); bp != nil {
			list = append(list, bp)
		} else {
			tracer().Errorf("unknown print breakpoint alias %q", alias)
		}
	}
	return list
}

// EventBreakpoints returns the print breakpoints plus the breakpoint of the
// change's query, if any, sorted by descending priority.
func (h *Hook) EventBreakpoints(c media.Change) []*breakpoint.Breakpoint {
	list := h.PrintBreakpoints()
	if bp := h.registry.FindByQuery(c.MediaQuery); bp != nil {
		list = append(list, bp)
	}
	breakpoint.SortDescending(list)
	return list
}

// UpdateEvent enriches a change with breakpoint information. Print events
// are renamed to the highest priority print breakpoint; without configured
// print aliases this is the built-in print breakpoint.
func (h *Hook) UpdateEvent(c media.Change) media.Change {
	bp := h.registry.FindByQuery(c.MediaQuery)
	if h.IsPrintEvent(c) {
		list := h.EventBreakpoints(c)
		if len(list) > 0 {
			bp = list[0]
		} else {
			bp = &PrintBreakpoint
		}
		c.MediaQuery = bp.MediaQuery
	}
	return media.MergeAlias(c, bp)
}

// InterceptEvents returns a tap for all raw changes seen by target. Print
// events drive the state machine, all other events are collected for the
// restore queue.
func (h *Hook) InterceptEvents(target Target) func(media.Change) {
	return func(c media.Change) {
		if h.closed {
			return
		}
		if h.IsPrintEvent(c) {
			if c.Matches && !h.printing {
				h.startPrinting(target, h.EventBreakpoints(c))
				target.UpdateStyles()
			} else if !c.Matches && h.printing && !h.fromHooks {
				h.stopPrinting(target)
				target.UpdateStyles()
			}
			return
		}
		h.CollectActivations(target, c)
	}
}

// BlockPropagation returns a predicate which is false for changes which
// must not reach the target: print events, and every change while printing.
func (h *Hook) BlockPropagation() func(media.Change) bool {
	return func(c media.Change) bool {
		return !(h.printing || h.IsPrintEvent(c))
	}
}

// CollectActivations maintains the snapshot of activations to restore after
// printing. Outside of printing, an activation invalidates the collected
// deactivations, a deactivation adds its breakpoint. While printing, the
// snapshot is frozen.
func (h *Hook) CollectActivations(target Target, c media.Change) {
	if h.printing || h.IsPrintEvent(c) {
		return
	}
	if c.Matches {
		h.deactivated = nil
		return
	}
	bp := h.registry.FindByQuery(c.MediaQuery)
	if bp == nil || breakpoint.Contains(h.deactivated, bp) {
		return
	}
	h.deactivated = append(h.deactivated, bp)
	breakpoint.SortAscending(h.deactivated)
}

// RegisterBeforeAfterPrintHooks connects target to the before/after print
// notifications of the platform. It does nothing without such a platform or
// if hooks have been registered before.
func (h *Hook) RegisterBeforeAfterPrintHooks(target Target) {
	if h.events == nil || h.hooked || h.closed {
		return
	}
	h.hooked = true
	before := h.events.OnBeforePrint(func() {
		if h.closed || h.printing {
			return
		}
		h.fromHooks = true
		h.startPrinting(target, h.EventBreakpoints(media.NewChange(true, PrintQuery)))
		target.UpdateStyles()
	})
	after := h.events.OnAfterPrint(func() {
		h.fromHooks = false
		if h.closed || !h.printing {
			return
		}
		h.stopPrinting(target)
		target.UpdateStyles()
	})
	h.removers = append(h.removers, before, after)
}

// startPrinting snapshots the current activations into the restore queue and
// substitutes the print breakpoints.
func (h *Hook) startPrinting(target Target, bps []*breakpoint.Breakpoint) {
	if h.printing {
		return
	}
	h.printing = true
	queue := append([]*breakpoint.Breakpoint(nil), h.deactivated...)
	for _, bp := range target.ActivatedBreakpoints() {
		if bp.MediaQuery != PrintQuery && !breakpoint.Contains(queue, bp) && !breakpoint.Contains(bps, bp) {
			queue = append(queue, bp)
		}
	}
	breakpoint.SortAscending(queue)
	h.queue = queue
	h.deactivated = nil
	target.SetActivatedBreakpoints(printQueue(bps))
	tracer().Infof("print started, %d breakpoints to restore", len(h.queue))
}

// stopPrinting restores the activations captured at print start.
func (h *Hook) stopPrinting(target Target) {
	if !h.printing {
		return
	}
	h.printing = false
	restore := h.queue
	h.queue = nil
	target.SetActivatedBreakpoints(restore)
	tracer().Infof("print stopped, %d breakpoints restored", len(restore))
}

// Queue returns a copy of the current restore queue.
func (h *Hook) Queue() []*breakpoint.Breakpoint {
	q := make([]*breakpoint.Breakpoint, len(h.queue))
	copy(q, h.queue)
	return q
}

// Close removes the before/after print hooks. Close is idempotent.
func (h *Hook) Close() {
	if h.closed {
		return
	}
	h.closed = true
	for _, remove := range h.removers {
		remove()
	}
	h.removers = nil
}

// printQueue builds the list of breakpoints to activate while printing: the
// built-in print breakpoint first, then the other breakpoints in descending
// priority, each media query once.
func printQueue(bps []*breakpoint.Breakpoint) []*breakpoint.Breakpoint {
	pbp := PrintBreakpoint
	list := make([]*breakpoint.Breakpoint, 0, len(bps)+1)
	list = append(list, &pbp)
	sorted := make([]*breakpoint.Breakpoint, len(bps))
	copy(sorted, bps)
	breakpoint.SortDescending(sorted)
	for _, bp := range sorted {
		if bp != nil && !breakpoint.Contains(list, bp) {
			list = append(list, bp)
		}
	}
	return list
}
