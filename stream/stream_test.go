package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect[T any](s Stream[T]) (*[]T, *Subscription) {
	var got []T
	sub := s.Subscribe(func(v T) { got = append(got, v) })
	return &got, sub
}

func TestSubjectDelivery(t *testing.T) {
	s := NewSubject[int]()
	a, suba := collect[int](s)
	s.Next(1)
	b, _ := collect[int](s)
	s.Next(2)
	suba.Unsubscribe()
	suba.Unsubscribe()
	s.Next(3)
	assert.Equal(t, []int{1, 2}, *a)
	assert.Equal(t, []int{2, 3}, *b)
	assert.Equal(t, 1, s.Len())
	s.Close()
	s.Close()
	s.Next(4)
	assert.Equal(t, []int{2, 3}, *b)
	assert.True(t, s.Subscribe(func(int) {}).Closed())
}

func TestBehaviorReplays(t *testing.T) {
	b := NewBehavior("all")
	first, _ := collect[string](b)
	b.Next("md")
	second, _ := collect[string](b)
	assert.Equal(t, []string{"all", "md"}, *first)
	assert.Equal(t, []string{"md"}, *second)
	assert.Equal(t, "md", b.Value())
}

func TestColdChain(t *testing.T) {
	src := Of(1, 2, 3, 4, 5, 6)
	evens := Map(Filter[int](src, func(v int) bool { return v%2 == 0 }), func(v int) int { return v * 10 })
	var tapped []int
	s := Tap(evens, func(v int) { tapped = append(tapped, v) })
	got, sub := collect[int](s)
	assert.Equal(t, []int{20, 40, 60}, *got)
	assert.Equal(t, *got, tapped)
	assert.True(t, sub.Closed(), "cold source completes")
	again, _ := collect[int](s)
	assert.Equal(t, []int{20, 40, 60}, *again, "every subscription replays")
}

func TestMerge(t *testing.T) {
	hot := NewSubject[int]()
	m := Merge[int](Of(1, 2), hot)
	got, sub := collect[int](m)
	hot.Next(3)
	assert.Equal(t, []int{1, 2, 3}, *got)
	assert.False(t, sub.Closed())
	sub.Unsubscribe()
	hot.Next(4)
	assert.Equal(t, []int{1, 2, 3}, *got)
	assert.Equal(t, 0, hot.Len())
}

func TestDebounceCoalesces(t *testing.T) {
	q := NewQueue()
	src := NewSubject[string]()
	got, _ := collect(Debounce[string](src, q))
	src.Next("deactivate sm")
	src.Next("activate md")
	assert.Empty(t, *got, "nothing is delivered before the queue drains")
	assert.Equal(t, 1, q.Pending())
	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, []string{"activate md"}, *got)
	src.Next("activate lg")
	q.Drain()
	assert.Equal(t, []string{"activate md", "activate lg"}, *got)
}

func TestDebounceAfterUnsubscribe(t *testing.T) {
	q := NewQueue()
	src := NewSubject[int]()
	got, sub := collect(Debounce[int](src, q))
	src.Next(1)
	sub.Unsubscribe()
	q.Drain()
	assert.Empty(t, *got)
}

func TestQueueDrainsNestedTasks(t *testing.T) {
	q := NewQueue()
	var order []int
	q.Schedule(func() {
		order = append(order, 1)
		q.Schedule(func() { order = append(order, 3) })
	})
	q.Schedule(func() { order = append(order, 2) })
	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, q.Pending())
}

func TestDistinct(t *testing.T) {
	src := Of(1, 1, 2, 2, 2, 1, 3)
	got, _ := collect(Distinct[int](src, func(a, b int) bool { return a == b }))
	assert.Equal(t, []int{1, 2, 1, 3}, *got)
}

func TestTakeUntil(t *testing.T) {
	src := NewSubject[int]()
	var done Done
	got, sub := collect(TakeUntil[int, struct{}](src, &done))
	src.Next(1)
	done.Fire()
	src.Next(2)
	assert.Equal(t, []int{1}, *got)
	assert.True(t, sub.Closed())
	assert.Equal(t, 0, src.Len())
	late, latesub := collect(TakeUntil[int, struct{}](src, &done))
	src.Next(3)
	assert.Empty(t, *late)
	assert.True(t, latesub.Closed())
}

func TestShareRefCount(t *testing.T) {
	src := NewSubject[int]()
	connects := 0
	counted := Func[int](func(next func(int)) *Subscription {
		connects++
		return src.Subscribe(next)
	})
	shared := Share[int](counted)
	a, suba := collect(shared)
	b, subb := collect(shared)
	require.Equal(t, 1, connects)
	src.Next(1)
	suba.Unsubscribe()
	src.Next(2)
	assert.Equal(t, []int{1}, *a)
	assert.Equal(t, []int{1, 2}, *b)
	assert.Equal(t, 1, src.Len(), "connection survives while subscribers remain")
	subb.Unsubscribe()
	assert.Equal(t, 0, src.Len())
	collect(shared)
	assert.Equal(t, 2, connects, "reconnects after the last subscriber left")
}

func TestSignalAndEmpty(t *testing.T) {
	got, _ := collect(Signal[int](Of(1, 2)))
	assert.Len(t, *got, 2)
	none, sub := collect(Empty[int]())
	assert.Empty(t, *none)
	assert.True(t, sub.Closed())
}
