package async

import (
	"context"
	"errors"
	"fmt"
)

// ErrPanic is returned by a task whose work function panicked.
var ErrPanic = errors.New("async: task panicked")

// Func is the unit of work a Task runs.
type Func[T any] func(ctx context.Context) (T, error)

// Task is the pending result of a unit of work running in the background.
// A Task completes exactly once, with either a value or an error.
//
// The same Task can be consumed in two styles: awaited (Await, Result) or
// through a completion callback (Then).
type Task[T any] struct {
	done   chan struct{}
	value  T
	err    error
	cancel context.CancelFunc
}

func newTask[T any](cancel context.CancelFunc) *Task[T] {
	return &Task[T]{done: make(chan struct{}), cancel: cancel}
}

// Run starts fn in its own goroutine and returns a Task tracking it.
// The context passed to fn is cancelled when the task is cancelled or completes.
func Run[T any](ctx context.Context, fn Func[T]) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := newTask[T](cancel)
	go func() {
		defer cancel()
		t.complete(call(ctx, fn))
	}()
	return t
}

// Completed returns a Task that is already resolved with value and err.
func Completed[T any](value T, err error) *Task[T] {
	t := newTask[T](nil)
	t.complete(value, err)
	return t
}

// Failed returns a Task that is already resolved with err.
func Failed[T any](err error) *Task[T] {
	var zero T
	return Completed(zero, err)
}

// Map returns a Task resolving to fn applied to the outcome of t.
// Cancelling the returned Task cancels t.
func Map[T, U any](t *Task[T], fn func(T, error) (U, error)) *Task[U] {
	out := newTask[U](t.cancel)
	go func() {
		<-t.done
		out.complete(fn(t.value, t.err))
	}()
	return out
}

// Done is closed once the task has completed.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Await blocks until the task completes or ctx is done.
// When ctx ends first the work keeps running; only the wait is abandoned.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the task completes.
func (t *Task[T]) Result() (T, error) {
	<-t.done
	return t.value, t.err
}

// Then registers a completion callback. fn runs on its own goroutine once
// the task completes.
func (t *Task[T]) Then(fn func(T, error)) {
	go func() {
		<-t.done
		fn(t.value, t.err)
	}()
}

// Cancel requests cancellation of the underlying work. It is best effort:
// work that already committed its side effects still completes.
func (t *Task[T]) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}

func (t *Task[T]) complete(value T, err error) {
	t.value, t.err = value, err
	close(t.done)
}

func call[T any](ctx context.Context, fn Func[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value, err = zero, fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(ctx)
}
