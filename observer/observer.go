/*
Package observer aggregates media changes into lists of active breakpoints.

An Observer watches the media queries of all registered breakpoints, plus
print media. Whenever a query becomes active, it recomputes the complete list
of activations, enriched with breakpoint information and sorted by
descending priority. Bursts of changes are debounced: a breakpoint transition
consists of a deactivation and an activation, but subscribers get a single
notification for it, scheduled after the current synchronous work.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package observer

import (
	"strings"

	"github.com/npillmayer/respond/breakpoint"
	"github.com/npillmayer/respond/media"
	"github.com/npillmayer/respond/printhook"
	"github.com/npillmayer/respond/stream"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'respond.observer'.
func tracer() tracing.Trace {
	return tracing.Select("respond.observer")
}

// Observer is the activation resolver.
type Observer struct {
	matcher        media.Matcher
	registry       *breakpoint.Registry
	hook           *printhook.Hook
	filterOverlaps bool
	done           stream.Done
	shared         stream.Stream[[]media.Change]
}

// New creates an observer. sched decides when debounced recomputations run;
// it is usually an event loop or a stream.Queue.
func New(m media.Matcher, reg *breakpoint.Registry, hook *printhook.Hook, sched stream.Scheduler) *Observer {
	o := &Observer{matcher: m, registry: reg, hook: hook}
	o.shared = stream.Share(o.watchActivations(sched))
	return o
}

// SetFilterOverlaps switches overlap filtering. If on, activation lists
// exclude breakpoints which are not flagged as overlapping.
func (o *Observer) SetFilterOverlaps(on bool) {
	o.filterOverlaps = on
}

// FilterOverlaps reports whether overlap filtering is on.
func (o *Observer) FilterOverlaps() bool {
	return o.filterOverlaps
}

// Stream returns the hot stream of activation lists. Subscribers receive
// future lists only. The stream terminates with Close.
func (o *Observer) Stream() stream.Stream[[]media.Change] {
	return stream.TakeUntil[[]media.Change, struct{}](o.shared, &o.done)
}

// Changes is a stream of the highest priority activation of every list.
func (o *Observer) Changes() stream.Stream[media.Change] {
	nonEmpty := stream.Filter(o.Stream(), func(l []media.Change) bool { return len(l) > 0 })
	return stream.Map(nonEmpty, func(l []media.Change) media.Change { return l[0] })
}

// IsActive reports whether any of the given aliases or media queries is
// active. Every argument may be a comma-separated list. Arguments unknown to
// the registry are never active.
func (o *Observer) IsActive(aliasesOrQueries ...string) bool {
	for _, arg := range aliasesOrQueries {
		for _, a := range strings.Split(arg, ",") {
			query := o.registry.ToMediaQuery(strings.TrimSpace(a))
			if query != "" && o.matcher.IsActive(query) {
				return true
			}
		}
	}
	return false
}

// Activations recomputes the current activation list.
func (o *Observer) Activations() []media.Change {
	return o.findAllActivations()
}

// Close terminates the activation stream. Close is idempotent.
func (o *Observer) Close() {
	if !o.done.Fired() {
		tracer().Debugf("observer closed")
	}
	o.done.Fire()
}

func (o *Observer) watchActivations(sched stream.Scheduler) stream.Stream[[]media.Change] {
	queries := o.hook.WithPrintQuery(o.registry.Queries())
	s := o.matcher.Observe(queries, false)
	s = stream.Filter(s, func(c media.Change) bool { return c.Matches })
	s = stream.Debounce(s, sched)
	lists := stream.Map(s, func(media.Change) []media.Change {
		return o.excludeOverlaps(o.findAllActivations())
	})
	lists = stream.Filter(lists, hasChanges)
	lists = stream.Distinct(lists, sameQueries)
	lists = stream.Tap(lists, func(l []media.Change) {
		tracer().Debugf("activations: %v", l)
	})
	return stream.TakeUntil[[]media.Change, struct{}](lists, &o.done)
}

func (o *Observer) findAllActivations() []media.Change {
	active := o.matcher.Activations()
	changes := make([]media.Change, 0, len(active))
	for _, q := range active {
		c := media.NewChange(true, q)
		if o.hook.IsPrintEvent(c) {
			c = o.hook.UpdateEvent(c)
		}
		changes = append(changes, media.MergeAlias(c, o.registry.FindByQuery(c.MediaQuery)))
	}
	media.SortDescending(changes)
	return changes
}

func (o *Observer) excludeOverlaps(changes []media.Change) []media.Change {
	if !o.filterOverlaps {
		return changes
	}
	kept := changes[:0:0]
	for _, c := range changes {
		bp := o.registry.FindByQuery(c.MediaQuery)
		if bp == nil || bp.Overlapping {
			kept = append(kept, c)
		}
	}
	return kept
}

func hasChanges(changes []media.Change) bool {
	for _, c := range changes {
		if c.MediaQuery != "" {
			return true
		}
	}
	return false
}

// sameQueries compares activation lists by media query membership.
func sameQueries(prev, current []media.Change) bool {
	if len(prev) != len(current) {
		return false
	}
	queries := make(map[string]bool, len(current))
	for _, c := range current {
		queries[c.MediaQuery] = true
	}
	for _, p := range prev {
		if !queries[p.MediaQuery] {
			return false
		}
	}
	return true
}
