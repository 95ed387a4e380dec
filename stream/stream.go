package stream

// Stream is a source of values of type T. Subscribing registers a callback
// for every future value; the returned Subscription revokes it.
type Stream[T any] interface {
	Subscribe(next func(T)) *Subscription
}

// Func adapts a subscribe function to the Stream interface.
type Func[T any] func(next func(T)) *Subscription

// Subscribe calls f.
func (f Func[T]) Subscribe(next func(T)) *Subscription {
	return f(next)
}

// Subscription is the handle of a subscription to a stream.
//
// A subscription is closed either by calling Unsubscribe or because the
// stream it depends on terminated. Unsubscribe is idempotent.
type Subscription struct {
	cancel  func()
	closed  bool
	parents []*Subscription
}

// NewSubscription creates a subscription which calls cancel on Unsubscribe.
// If parents are given, the subscription reports closed as soon as all of
// its parents are closed. Unsubscribe does not propagate to parents; cancel
// is responsible for that.
func NewSubscription(cancel func(), parents ...*Subscription) *Subscription {
	return &Subscription{cancel: cancel, parents: parents}
}

// closedSubscription is returned when subscribing to a terminated stream.
func closedSubscription() *Subscription {
	return &Subscription{closed: true}
}

// Unsubscribe revokes the subscription. No further values are delivered
// to the subscriber afterwards.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
}

// Closed reports whether the subscription has been revoked or its
// stream has terminated.
func (s *Subscription) Closed() bool {
	if s == nil || s.closed {
		return true
	}
	if len(s.parents) == 0 {
		return false
	}
	for _, p := range s.parents {
		if !p.Closed() {
			return false
		}
	}
	return true
}

// Empty is a stream which never delivers a value and is closed right away.
func Empty[T any]() Stream[T] {
	return Func[T](func(func(T)) *Subscription {
		return closedSubscription()
	})
}
