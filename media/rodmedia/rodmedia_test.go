package rodmedia

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/npillmayer/respond/eventloop"
	"github.com/npillmayer/respond/media"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	ev, err := decodeEvent(`{"kind":"media","query":"print","matches":true}`)
	require.NoError(t, err)
	assert.Equal(t, Event{Kind: KindMedia, Query: "print", Matches: true}, ev)
	ev, err = decodeEvent(`{"kind":"resize"}`)
	require.NoError(t, err)
	assert.Equal(t, KindResize, ev.Kind)
	_, err = decodeEvent(`{"kind":"media"}`)
	assert.Error(t, err)
	_, err = decodeEvent(`{"kind":"scroll"}`)
	assert.Error(t, err)
	_, err = decodeEvent(`not json`)
	assert.Error(t, err)
}

func TestDispatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "respond.rodmedia")
	defer teardown()
	//
	p := &Page{lists: map[string]*media.ServerQueryList{
		"print": media.NewServerQueryList("print", false),
	}}
	var changes []bool
	p.lists["print"].AddListener(func(m bool) { changes = append(changes, m) })
	printing := 0
	remove := p.OnBeforePrint(func() { printing++ })
	p.OnAfterPrint(func() { printing-- })
	resized := 0
	p.OnResize(func() { resized++ })
	p.dispatch(Event{Kind: KindMedia, Query: "print", Matches: true})
	p.dispatch(Event{Kind: KindMedia, Query: "unknown", Matches: true})
	p.dispatch(Event{Kind: KindBeforePrint})
	p.dispatch(Event{Kind: KindResize})
	assert.Equal(t, []bool{true}, changes)
	assert.True(t, p.lists["print"].Matches())
	assert.Equal(t, 1, printing)
	assert.Equal(t, 1, resized)
	remove()
	p.dispatch(Event{Kind: KindBeforePrint})
	p.dispatch(Event{Kind: KindAfterPrint})
	assert.Equal(t, 0, printing)
}

// TestBrowser runs against a local Chrome and is skipped unless
// RESPOND_BROWSER_TESTS=1.
func TestBrowser(t *testing.T) {
	if os.Getenv("RESPOND_BROWSER_TESTS") != "1" {
		t.Skip("set RESPOND_BROWSER_TESTS=1 to run browser tests")
	}
	teardown := gotestingadapter.QuickConfig(t, "respond.rodmedia")
	defer teardown()
	//
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	browser, cleanup, err := Launch(ctx, LaunchConfig{Headless: true})
	require.NoError(t, err)
	defer cleanup()
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	require.NoError(t, err)
	require.NoError(t, page.SetDocumentContent("<html><head></head><body></body></html>"))
	loop := eventloop.New()
	p, err := New(ctx, page, loop)
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, p.SetViewport(500, 800))
	narrow := p.MatchMedia("(max-width: 599px)")
	require.NotNil(t, narrow)
	assert.True(t, narrow.Matches())
	changed := make(chan bool, 1)
	narrow.AddListener(func(m bool) { changed <- m })
	go loop.Run(ctx)
	defer loop.Close()
	require.NoError(t, p.SetViewport(1000, 800))
	select {
	case m := <-changed:
		assert.False(t, m)
	case <-ctx.Done():
		t.Fatal("no media change reported")
	}
	p.Close()
	res, err := page.Eval(`() => window.__respond_installed === undefined && window.__respond_queries === undefined`)
	require.NoError(t, err)
	assert.True(t, res.Value.Bool(), "listeners are removed on Close")
}
