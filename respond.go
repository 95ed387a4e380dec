package respond

import (
	"errors"
	"fmt"

	"github.com/npillmayer/respond/breakpoint"
	"github.com/npillmayer/respond/config"
	"github.com/npillmayer/respond/marshal"
	"github.com/npillmayer/respond/media"
	"github.com/npillmayer/respond/observer"
	"github.com/npillmayer/respond/printhook"
	"github.com/npillmayer/respond/stream"
)

// ErrNoPlatform is returned when creating a browser engine without a
// platform.
var ErrNoPlatform = errors.New("respond: no media platform")

// Engine wires the components of the responsive layout engine. Fields
// are set by the constructors and must not be replaced.
//
// An engine is not safe for concurrent use. In a browser environment all
// calls should be made from the goroutine which runs the scheduler.
type Engine[E comparable, V comparable] struct {
	Options    config.Options
	Registry   *breakpoint.Registry
	Matcher    media.Matcher
	Hook       *printhook.Hook
	Marshaller *marshal.Marshaller[E, V]
	Observer   *observer.Observer
	Trigger    *media.Trigger
	server     *media.ServerWatcher
	queue      *stream.Queue // scheduler of server engines
	closed     bool
}

// NewServerEngine creates an engine for a simulated environment. The
// breakpoints in opts.SSRObserveBreakpoints are active from the start.
// Debounced notifications of the observer are queued and delivered by Flush.
func NewServerEngine[E comparable, V comparable](opts config.Options) (*Engine[E, V], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	reg := opts.Registry()
	w := media.NewServerWatcher(reg, opts.SSRObserveBreakpoints)
	q := stream.NewQueue()
	e := newEngine[E, V](opts, reg, w, nil, q)
	e.server, e.queue = w, q
	tracer().Infof("server engine with %d breakpoints", reg.Len())
	return e, nil
}

// NewBrowserEngine creates an engine for a live environment. If the
// platform reports printing (media.PrintEvents), print hooks are installed.
// If it reports resizes (media.ResizeEvents), simulated activations are
// restored on resize, as configured by opts.MediaTriggerAutoRestore.
func NewBrowserEngine[E comparable, V comparable](opts config.Options, platform media.Platform,
	sched stream.Scheduler) (*Engine[E, V], error) {
	//
	if platform == nil {
		return nil, ErrNoPlatform
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		sched = stream.Immediate
	}
	reg := opts.Registry()
	events, _ := platform.(media.PrintEvents)
	e := newEngine[E, V](opts, reg, media.NewWatcher(platform), events, sched)
	tracer().Infof("browser engine with %d breakpoints", reg.Len())
	return e, nil
}

func newEngine[E comparable, V comparable](opts config.Options, reg *breakpoint.Registry,
	m media.Matcher, events media.PrintEvents, sched stream.Scheduler) *Engine[E, V] {
	//
	hook := printhook.New(reg, opts.PrintWithBreakpoints, events)
	obs := observer.New(m, reg, hook, sched)
	obs.SetFilterOverlaps(opts.FilterOverlaps)
	return &Engine[E, V]{
		Options:    opts,
		Registry:   reg,
		Matcher:    m,
		Hook:       hook,
		Marshaller: marshal.New[E, V](m, reg, hook),
		Observer:   obs,
		Trigger:    media.NewTrigger(m, reg, opts.MediaTriggerAutoRestore),
	}
}

// Server returns the simulated watcher of a server engine, or nil.
func (e *Engine[E, V]) Server() *media.ServerWatcher {
	return e.server
}

// ActivateBreakpoint simulates the activation of the breakpoint for an
// alias on a server engine.
func (e *Engine[E, V]) ActivateBreakpoint(alias string) error {
	return e.simulate(alias, true)
}

// DeactivateBreakpoint simulates the deactivation of the breakpoint for
// an alias on a server engine.
func (e *Engine[E, V]) DeactivateBreakpoint(alias string) error {
	return e.simulate(alias, false)
}

func (e *Engine[E, V]) simulate(alias string, on bool) error {
	if e.server == nil {
		return errors.New("respond: breakpoints can be simulated on server engines only")
	}
	bp := e.Registry.FindByAlias(alias)
	if bp == nil {
		return fmt.Errorf("respond: unknown breakpoint alias %q", alias)
	}
	if on {
		e.server.ActivateBreakpoint(bp)
	} else {
		e.server.DeactivateBreakpoint(bp)
	}
	return nil
}

// Flush delivers pending notifications of a server engine and returns
// their number. For browser engines Flush does nothing.
func (e *Engine[E, V]) Flush() int {
	if e.queue == nil {
		return 0
	}
	return e.queue.Drain()
}

// Close tears down all components. Simulated activations are restored
// first. Close is idempotent.
func (e *Engine[E, V]) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.Trigger.Restore()
	e.Observer.Close()
	e.Marshaller.Close()
	e.Hook.Close()
	e.Matcher.Close()
	tracer().Infof("engine closed")
}
