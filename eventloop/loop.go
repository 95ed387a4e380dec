/*
Package eventloop runs tasks one after another on a single goroutine.

Media query notifications of a live browser arrive on foreign goroutines
(e.g., the goroutine of a CDP connection). The engine itself is not safe for
concurrent use, therefore every notification is posted to a Loop, which
delivers it on the loop goroutine. After a task has been run, all microtasks
scheduled during that task are executed before the next task starts. This is
the "as soon as possible, but after the current synchronous work" boundary
the activation debounce relies on.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package eventloop

import (
	"context"
	"errors"
	"sync"

	"github.com/npillmayer/respond/stream"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'respond.eventloop'.
func tracer() tracing.Trace {
	return tracing.Select("respond.eventloop")
}

// ErrClosed is returned by Run if the loop has been closed before.
var ErrClosed = errors.New("eventloop: loop is closed")

// Loop is a task loop. Create one with New and start it with Run.
type Loop struct {
	mu      sync.Mutex
	tasks   []func()
	wake    chan struct{}
	done    chan struct{}
	closed  bool
	running bool
	micro   stream.Queue // accessed from the loop goroutine only
}

// New creates a task loop. The loop does nothing until Run is called.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post enqueues a task. It may be called from any goroutine. Tasks are run
// in the order they have been posted. Posting to a closed loop drops the task
// and returns false.
func (l *Loop) Post(task func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Schedule enqueues a microtask. It must be called from the loop goroutine,
// i.e., from within a running task. Loop implements stream.Scheduler.
func (l *Loop) Schedule(task func()) {
	l.micro.Schedule(task)
}

// Run executes tasks until ctx is done or the loop is closed. It returns
// ctx.Err() if ctx ended the loop, nil after Close. Only one goroutine may
// run a loop.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	if l.running {
		l.mu.Unlock()
		return errors.New("eventloop: loop is already running")
	}
	l.running = true
	l.mu.Unlock()
	tracer().Debugf("event loop started")
	defer tracer().Debugf("event loop stopped")
	for {
		for {
			task, ok := l.next()
			if !ok {
				break
			}
			task()
			l.micro.Drain()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case <-l.wake:
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || len(l.tasks) == 0 {
		return nil, false
	}
	task := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return task, true
}

// Do posts a task and waits until it has been run by the loop, or until ctx
// is done. It must not be called from the loop goroutine.
func (l *Loop) Do(ctx context.Context, task func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		task()
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}
}

// Close stops the loop. Pending tasks are discarded. Close is idempotent.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.tasks = nil
	close(l.done)
}

var _ stream.Scheduler = (*Loop)(nil)
