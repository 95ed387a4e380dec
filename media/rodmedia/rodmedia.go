/*
Package rodmedia implements a live media platform on top of a Chrome page,
remote-controlled through the DevTools protocol with go-rod.

Media query lists are evaluated by the page. Changes of query lists, print
and resize notifications are reported from the page through a runtime
binding, and are posted to an event loop. All callbacks of the platform
hence run on the goroutine running the loop, as do the components of a
respond engine using the platform.

    browser, cleanup, err := rodmedia.Launch(ctx, rodmedia.LaunchConfig{Headless: true})
    …
    loop := eventloop.New()
    platform, err := rodmedia.New(ctx, browser.MustPage(url), loop)
    engine, err := respond.NewBrowserEngine[string, string](opts, platform, loop)
    go loop.Run(ctx)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package rodmedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/npillmayer/respond/eventloop"
	"github.com/npillmayer/respond/media"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'respond.rodmedia'.
func tracer() tracing.Trace {
	return tracing.Select("respond.rodmedia")
}

// BindingName is the name of the runtime binding the page reports to.
const BindingName = "__respond_media"

// ErrClosed is returned by operations on a closed platform.
var ErrClosed = errors.New("rodmedia: platform closed")

// LaunchConfig configures a local Chrome.
type LaunchConfig struct {
	Headless bool
	Bin      string // path of the browser binary; downloaded if empty
}

// Launch starts a local browser and connects to it. cleanup closes the
// browser and removes its user data.
func Launch(ctx context.Context, cfg LaunchConfig) (*rod.Browser, func(), error) {
	l := launcher.New().Headless(cfg.Headless)
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	u, err := l.Context(ctx).Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("rodmedia: launch: %w", err)
	}
	b := rod.New().ControlURL(u).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, nil, fmt.Errorf("rodmedia: connect: %w", err)
	}
	tracer().Infof("browser launched at %s", u)
	cleanup := func() {
		if err := b.Close(); err != nil {
			tracer().Errorf("close browser: %v", err)
		}
		l.Cleanup()
	}
	return b, cleanup, nil
}

// Page is a media platform for a browser page. It implements
// media.Platform, media.PrintEvents and media.ResizeEvents.
type Page struct {
	page   *rod.Page
	loop   *eventloop.Loop
	ctx    context.Context
	cancel context.CancelFunc
	// state below is owned by the loop goroutine
	lists  map[string]*media.ServerQueryList
	before callbacks
	after  callbacks
	resize callbacks
	once   sync.Once
}

// New connects a platform to a page. Page events are posted to loop.
func New(ctx context.Context, page *rod.Page, loop *eventloop.Loop) (*Page, error) {
	ctx, cancel := context.WithCancel(ctx)
	p := &Page{
		page:   page.Context(ctx),
		loop:   loop,
		ctx:    ctx,
		cancel: cancel,
		lists:  make(map[string]*media.ServerQueryList),
	}
	if err := (proto.RuntimeAddBinding{Name: BindingName}).Call(p.page); err != nil {
		cancel()
		return nil, fmt.Errorf("rodmedia: add binding: %w", err)
	}
	wait := p.page.EachEvent(func(e *proto.RuntimeBindingCalled) {
		if e.Name != BindingName {
			return
		}
		ev, err := decodeEvent(e.Payload)
		if err != nil {
			tracer().Errorf("%v", err)
			return
		}
		if !p.loop.Post(func() { p.dispatch(ev) }) {
			tracer().Debugf("event loop closed, dropping %s event", ev.Kind)
		}
	})
	go wait()
	if _, err := p.page.Eval(installJS, BindingName); err != nil {
		cancel()
		return nil, fmt.Errorf("rodmedia: install listeners: %w", err)
	}
	tracer().Infof("media platform connected to page")
	return p, nil
}

// Event kinds reported by the page.
const (
	KindMedia       = "media"
	KindBeforePrint = "beforeprint"
	KindAfterPrint  = "afterprint"
	KindResize      = "resize"
)

// Event is a notification from the page.
type Event struct {
	Kind    string `json:"kind"`
	Query   string `json:"query,omitempty"`
	Matches bool   `json:"matches,omitempty"`
}

func decodeEvent(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("rodmedia: malformed event %q: %w", payload, err)
	}
	switch ev.Kind {
	case KindMedia:
		if ev.Query == "" {
			return Event{}, fmt.Errorf("rodmedia: media event without query")
		}
	case KindBeforePrint, KindAfterPrint, KindResize:
	default:
		return Event{}, fmt.Errorf("rodmedia: unknown event kind %q", ev.Kind)
	}
	return ev, nil
}

func (p *Page) dispatch(ev Event) {
	switch ev.Kind {
	case KindMedia:
		ql, ok := p.lists[ev.Query]
		if !ok {
			return
		}
		tracer().Debugf("media change %q → %v", ev.Query, ev.Matches)
		if ev.Matches {
			ql.Activate()
		} else {
			ql.Deactivate()
		}
	case KindBeforePrint:
		p.before.fire()
	case KindAfterPrint:
		p.after.fire()
	case KindResize:
		p.resize.fire()
	}
}

// MatchMedia evaluates a media query in the page and starts listening for
// changes. It returns nil if the page cannot be reached.
//
// Interface media.Platform
func (p *Page) MatchMedia(query string) media.QueryList {
	if ql, ok := p.lists[query]; ok {
		return ql
	}
	if p.ctx.Err() != nil {
		return nil
	}
	res, err := p.page.Eval(matchJS, query)
	if err != nil {
		tracer().Errorf("matchMedia(%q): %v", query, err)
		return nil
	}
	ql := media.NewServerQueryList(query, res.Value.Bool())
	p.lists[query] = ql
	return ql
}

// AppendStyle adds a <style> element to the page's head.
//
// Interface media.Platform
func (p *Page) AppendStyle(css string) {
	if p.ctx.Err() != nil {
		return
	}
	if _, err := p.page.Eval(styleJS, css); err != nil {
		tracer().Errorf("append style: %v", err)
	}
}

// OnBeforePrint registers a callback for the start of printing.
//
// Interface media.PrintEvents
func (p *Page) OnBeforePrint(callback func()) func() {
	return p.before.add(callback)
}

// OnAfterPrint registers a callback for the end of printing.
//
// Interface media.PrintEvents
func (p *Page) OnAfterPrint(callback func()) func() {
	return p.after.add(callback)
}

// OnResize registers a callback for viewport resizes.
//
// Interface media.ResizeEvents
func (p *Page) OnResize(callback func()) func() {
	return p.resize.add(callback)
}

// SetViewport emulates a viewport size.
func (p *Page) SetViewport(width, height int) error {
	if p.ctx.Err() != nil {
		return ErrClosed
	}
	err := p.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("rodmedia: set viewport: %w", err)
	}
	return nil
}

// EmulatePrint switches the emulated media type to print, or back to
// screen. Browsers do not fire before/after print notifications for
// emulated media, only the print media query changes.
func (p *Page) EmulatePrint(on bool) error {
	if p.ctx.Err() != nil {
		return ErrClosed
	}
	m := ""
	if on {
		m = "print"
	}
	if err := (proto.EmulationSetEmulatedMedia{Media: m}).Call(p.page); err != nil {
		return fmt.Errorf("rodmedia: emulate media: %w", err)
	}
	return nil
}

// Close removes the listeners from the page and stops listening to it. The
// page itself stays open.
func (p *Page) Close() {
	p.once.Do(func() {
		if res, err := p.page.Eval(uninstallJS); err != nil {
			tracer().Errorf("rodmedia: remove listeners: %v", err)
		} else {
			tracer().Debugf("removed %d media query listeners", res.Value.Int())
		}
		p.cancel()
		tracer().Infof("media platform disconnected")
	})
}

var _ media.Platform = (*Page)(nil)
var _ media.PrintEvents = (*Page)(nil)
var _ media.ResizeEvents = (*Page)(nil)

// --- Callbacks -------------------------------------------------------------

type callbacks struct {
	list []*func()
}

func (c *callbacks) add(f func()) func() {
	entry := &f
	c.list = append(c.list, entry)
	return func() {
		for i, x := range c.list {
			if x == entry {
				c.list = append(c.list[:i:i], c.list[i+1:]...)
				return
			}
		}
	}
}

func (c *callbacks) fire() {
	for _, f := range append(([]*func())(nil), c.list...) {
		(*f)()
	}
}

// --- Scripts ---------------------------------------------------------------

const installJS = `(binding) => {
	if (window.__respond_installed) { return; }
	window.__respond_installed = true;
	window.__respond_queries = {};
	const report = (ev) => window[binding](JSON.stringify(ev));
	window.__respond_report = report;
	window.__respond_window = {
		beforeprint: () => report({kind: 'beforeprint'}),
		afterprint: () => report({kind: 'afterprint'}),
		resize: () => report({kind: 'resize'}),
	};
	for (const [kind, f] of Object.entries(window.__respond_window)) {
		window.addEventListener(kind, f);
	}
}`

const matchJS = `(query) => {
	const mql = window.matchMedia(query);
	if (!window.__respond_queries[query]) {
		const f = (e) => window.__respond_report(
			{kind: 'media', query: query, matches: e.matches});
		window.__respond_queries[query] = {mql: mql, listener: f};
		mql.addEventListener('change', f);
	}
	return mql.matches;
}`

// uninstallJS removes every listener installed by installJS and matchJS.
const uninstallJS = `() => {
	if (!window.__respond_installed) { return 0; }
	let removed = 0;
	for (const q of Object.values(window.__respond_queries)) {
		q.mql.removeEventListener('change', q.listener);
		removed++;
	}
	for (const [kind, f] of Object.entries(window.__respond_window)) {
		window.removeEventListener(kind, f);
	}
	delete window.__respond_queries;
	delete window.__respond_report;
	delete window.__respond_window;
	delete window.__respond_installed;
	return removed;
}`

const styleJS = `(css) => {
	const style = document.createElement('style');
	style.textContent = css;
	document.head.appendChild(style);
}`
