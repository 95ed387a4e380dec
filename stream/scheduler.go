package stream

// Scheduler runs tasks at a later point in time, but on the goroutine which
// delivers stream values.
type Scheduler interface {
	Schedule(task func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(task func())

// Schedule calls f.
func (f SchedulerFunc) Schedule(task func()) {
	f(task)
}

// Immediate is a scheduler running tasks right away. Debouncing with it
// degrades to forwarding every value.
var Immediate Scheduler = SchedulerFunc(func(task func()) { task() })

// Queue is a FIFO task queue. Tasks are executed by Drain, in the order they
// were scheduled. It is the deterministic stand-in for a microtask queue:
// the owner of the queue drains it after finishing its current synchronous
// work.
//
// The zero value is an empty queue.
type Queue struct {
	tasks []func()
}

// NewQueue creates an empty task queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule appends a task to the queue.
func (q *Queue) Schedule(task func()) {
	q.tasks = append(q.tasks, task)
}

// Pending returns the number of queued tasks.
func (q *Queue) Pending() int {
	return len(q.tasks)
}

// Drain executes queued tasks until the queue is empty, including tasks
// scheduled by running tasks. It returns the number of tasks executed.
func (q *Queue) Drain() int {
	n := 0
	for len(q.tasks) > 0 {
		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		task()
		n++
	}
	return n
}
