package eventloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (*Loop, func()) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Run(ctx)
	}()
	return l, func() {
		cancel()
		wg.Wait()
		l.Close()
	}
}

func TestPostPreservesOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "respond.eventloop")
	defer teardown()
	//
	l, stop := startLoop(t)
	defer stop()
	var got []int
	for i := 0; i < 10; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, l.Do(context.Background(), func() {}))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestMicrotasksRunBeforeNextTask(t *testing.T) {
	l, stop := startLoop(t)
	defer stop()
	var trace []string
	l.Post(func() {
		trace = append(trace, "task 1")
		l.Schedule(func() { trace = append(trace, "micro 1") })
	})
	l.Post(func() { trace = append(trace, "task 2") })
	require.NoError(t, l.Do(context.Background(), func() {}))
	assert.Equal(t, []string{"task 1", "micro 1", "task 2"}, trace)
}

func TestCloseStopsLoop(t *testing.T) {
	l := New()
	result := make(chan error, 1)
	go func() { result <- l.Run(context.Background()) }()
	l.Close()
	l.Close()
	select {
	case err := <-result:
		assert.True(t, err == nil || err == ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after Close")
	}
	assert.False(t, l.Post(func() {}))
	assert.ErrorIs(t, l.Do(context.Background(), func() {}), ErrClosed)
	assert.ErrorIs(t, l.Run(context.Background()), ErrClosed)
}

func TestRunHonorsContext(t *testing.T) {
	l := New()
	defer l.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Run(ctx), context.DeadlineExceeded)
}
