package async

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned for work submitted to a closed Queue.
var ErrQueueClosed = errors.New("async: queue closed")

// Queue runs submitted jobs one at a time, in submission order, on a single
// goroutine. Posting never blocks the caller.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

// NewQueue starts a serial queue.
func NewQueue() *Queue {
	q := &Queue{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go q.loop()
	return q
}

// Post schedules fn. It reports false when the queue is closed and fn was dropped.
func (q *Queue) Post(fn func()) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	q.signal()
	return true
}

// Close stops accepting work, runs what is already pending and waits for the
// queue goroutine to exit. It must not be called from a job running on q.
func (q *Queue) Close() {
	q.mu.Lock()
	already := q.closed
	q.closed = true
	q.mu.Unlock()

	if !already {
		q.signal()
	}
	<-q.stopped
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) loop() {
	defer close(q.stopped)
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			<-q.wake
			continue
		}
		job := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		job()
	}
}

// Submit schedules fn on q and returns a Task for its result.
//
// A job whose context is already done when its turn comes is skipped and
// resolves with the context error. Once started, fn receives a context that
// is no longer cancelled by the caller, so a write in progress is allowed to
// finish.
func Submit[T any](q *Queue, ctx context.Context, fn Func[T]) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := newTask[T](cancel)

	ok := q.Post(func() {
		defer cancel()
		if err := ctx.Err(); err != nil {
			var zero T
			t.complete(zero, err)
			return
		}
		t.complete(call(context.WithoutCancel(ctx), fn))
	})
	if !ok {
		cancel()
		var zero T
		t.complete(zero, ErrQueueClosed)
	}
	return t
}
