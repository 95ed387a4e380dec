package stream

// FromFunc creates a cold stream. produce is run synchronously for every new
// subscriber and may emit any number of values before returning. The
// subscription is closed once produce returns.
func FromFunc[T any](produce func(emit func(T))) Stream[T] {
	return Func[T](func(next func(T)) *Subscription {
		sub := NewSubscription(nil)
		produce(func(v T) {
			if !sub.closed {
				next(v)
			}
		})
		sub.closed = true
		return sub
	})
}

// Of creates a cold stream emitting the given values to every subscriber.
func Of[T any](values ...T) Stream[T] {
	return FromFunc(func(emit func(T)) {
		for _, v := range values {
			emit(v)
		}
	})
}

// Merge subscribes to all streams in order and forwards their values.
func Merge[T any](streams ...Stream[T]) Stream[T] {
	return Func[T](func(next func(T)) *Subscription {
		subs := make([]*Subscription, 0, len(streams))
		for _, s := range streams {
			subs = append(subs, s.Subscribe(next))
		}
		return NewSubscription(func() {
			for _, sub := range subs {
				sub.Unsubscribe()
			}
		}, subs...)
	})
}

// Filter forwards values for which pred is true.
func Filter[T any](s Stream[T], pred func(T) bool) Stream[T] {
	return Func[T](func(next func(T)) *Subscription {
		return s.Subscribe(func(v T) {
			if pred(v) {
				next(v)
			}
		})
	})
}

// Map forwards f(v) for every value v.
func Map[T, U any](s Stream[T], f func(T) U) Stream[U] {
	return Func[U](func(next func(U)) *Subscription {
		return s.Subscribe(func(v T) {
			next(f(v))
		})
	})
}

// Tap calls f for every value before forwarding it unchanged.
func Tap[T any](s Stream[T], f func(T)) Stream[T] {
	return Func[T](func(next func(T)) *Subscription {
		return s.Subscribe(func(v T) {
			f(v)
			next(v)
		})
	})
}

// Signal drops the payload of a stream.
func Signal[T any](s Stream[T]) Stream[struct{}] {
	return Map(s, func(T) struct{} { return struct{}{} })
}

// Debounce coalesces bursts of values. The first value of a burst schedules
// a task with sched; when the task runs, the latest value received so far is
// forwarded. Values arriving while the task is pending only replace that
// latest value.
func Debounce[T any](s Stream[T], sched Scheduler) Stream[T] {
	return Func[T](func(next func(T)) *Subscription {
		var latest T
		pending := false
		var sub *Subscription
		inner := s.Subscribe(func(v T) {
			latest = v
			if pending {
				return
			}
			pending = true
			sched.Schedule(func() {
				pending = false
				if sub == nil || !sub.Closed() {
					next(latest)
				}
			})
		})
		sub = NewSubscription(inner.Unsubscribe, inner)
		return sub
	})
}

// Distinct suppresses values which equal the previously forwarded value.
func Distinct[T any](s Stream[T], equal func(prev, current T) bool) Stream[T] {
	return Func[T](func(next func(T)) *Subscription {
		var prev T
		has := false
		return s.Subscribe(func(v T) {
			if has && equal(prev, v) {
				return
			}
			prev, has = v, true
			next(v)
		})
	})
}

// TakeUntil forwards values until stop emits. On stop the upstream
// subscription is revoked and the returned subscription is closed.
func TakeUntil[T, S any](s Stream[T], stop Stream[S]) Stream[T] {
	return Func[T](func(next func(T)) *Subscription {
		stopped := false
		var inner *Subscription
		var outer *Subscription
		stopSub := stop.Subscribe(func(S) {
			stopped = true
			if outer != nil {
				outer.Unsubscribe()
			}
		})
		if stopped {
			stopSub.Unsubscribe()
			return closedSubscription()
		}
		inner = s.Subscribe(func(v T) {
			if !stopped {
				next(v)
			}
		})
		outer = NewSubscription(func() {
			inner.Unsubscribe()
			stopSub.Unsubscribe()
		}, inner)
		return outer
	})
}

// Share turns s into a hot stream. The first subscriber connects s to an
// internal Subject, later subscribers join that connection and only see
// future values. When the last subscriber leaves, the connection is dropped.
func Share[T any](s Stream[T]) Stream[T] {
	sh := &shared[T]{source: s}
	return sh
}

type shared[T any] struct {
	source  Stream[T]
	subject Subject[T]
	conn    *Subscription
	refs    int
}

func (sh *shared[T]) Subscribe(next func(T)) *Subscription {
	sub := sh.subject.Subscribe(next)
	sh.refs++
	if sh.refs == 1 {
		sh.conn = sh.source.Subscribe(sh.subject.Next)
	}
	conn := sh.conn
	return NewSubscription(func() {
		sub.Unsubscribe()
		sh.refs--
		if sh.refs == 0 && sh.conn != nil {
			sh.conn.Unsubscribe()
			sh.conn = nil
		}
	}, conn)
}
