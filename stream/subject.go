package stream

// Subject is a multicast stream. Values pushed with Next are delivered to
// every current subscriber, in subscription order. A Subject does not replay
// values to late subscribers.
//
// The zero value is an open Subject without subscribers.
type Subject[T any] struct {
	observers []*observer[T]
	closed    bool
}

type observer[T any] struct {
	next func(T)
	sub  *Subscription
}

// NewSubject creates an open Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers next for all future values. Subscribing to a closed
// Subject returns a closed subscription.
func (s *Subject[T]) Subscribe(next func(T)) *Subscription {
	if s.closed {
		return closedSubscription()
	}
	o := &observer[T]{next: next}
	o.sub = NewSubscription(func() { s.remove(o) })
	s.observers = append(s.observers, o)
	return o.sub
}

func (s *Subject[T]) remove(o *observer[T]) {
	for i, x := range s.observers {
		if x == o {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// Next delivers v to all subscribers. Subscribers added or removed while v
// is being delivered take effect for the next value.
func (s *Subject[T]) Next(v T) {
	if s.closed || len(s.observers) == 0 {
		return
	}
	current := make([]*observer[T], len(s.observers))
	copy(current, s.observers)
	for _, o := range current {
		if !o.sub.closed {
			o.next(v)
		}
	}
}

// Len returns the number of active subscribers.
func (s *Subject[T]) Len() int {
	return len(s.observers)
}

// Close terminates the Subject. All subscriptions are closed and Next
// becomes a no-op. Close is idempotent.
func (s *Subject[T]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, o := range s.observers {
		o.sub.closed = true
	}
	s.observers = nil
}

// IsClosed reports whether Close has been called.
func (s *Subject[T]) IsClosed() bool {
	return s.closed
}

// --- Behavior --------------------------------------------------------------

// Behavior is a Subject which holds a current value. New subscribers receive
// the current value immediately, then all future values.
type Behavior[T any] struct {
	Subject[T]
	value T
}

// NewBehavior creates a Behavior seeded with an initial value.
func NewBehavior[T any](initial T) *Behavior[T] {
	return &Behavior[T]{value: initial}
}

// Subscribe registers next and replays the current value to it.
func (b *Behavior[T]) Subscribe(next func(T)) *Subscription {
	sub := b.Subject.Subscribe(next)
	if !sub.Closed() {
		next(b.value)
	}
	return sub
}

// Next stores v as the current value and delivers it to all subscribers.
func (b *Behavior[T]) Next(v T) {
	if b.closed {
		return
	}
	b.value = v
	b.Subject.Next(v)
}

// Value returns the current value.
func (b *Behavior[T]) Value() T {
	return b.value
}

// --- Done ------------------------------------------------------------------

// Done is a one-shot termination signal. Subscribers are notified once when
// Fire is called; subscribing after Fire notifies immediately.
type Done struct {
	subject Subject[struct{}]
	fired   bool
}

// Fire triggers the signal. Fire is idempotent.
func (d *Done) Fire() {
	if d.fired {
		return
	}
	d.fired = true
	d.subject.Next(struct{}{})
	d.subject.Close()
}

// Fired reports whether Fire has been called.
func (d *Done) Fired() bool {
	return d.fired
}

// Subscribe registers next for the termination signal.
func (d *Done) Subscribe(next func(struct{})) *Subscription {
	if d.fired {
		next(struct{}{})
		return closedSubscription()
	}
	return d.subject.Subscribe(next)
}
