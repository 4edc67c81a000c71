// Package future provides small promise-style combinators for running
// functions asynchronously and collecting their results.
package future

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Future holds the eventual result of a function started with Go.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn in its own goroutine and returns a Future for its result.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn()
	}()
	return f
}

// Wait blocks until the future settles or ctx is canceled. On cancellation the
// underlying goroutine keeps running; its result is simply abandoned.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done reports whether the future has settled without blocking.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Chain returns a future that applies fn to the result of f once it settles.
// If f fails, fn is not called and the error is passed through.
func Chain[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	return Go(func() (U, error) {
		<-f.done
		if f.err != nil {
			var zero U
			return zero, f.err
		}
		return fn(f.val)
	})
}

// All runs every fn concurrently, at most limit at a time (limit <= 0 means
// unbounded), and returns results in argument order. The first error cancels
// the derived context and is returned; remaining results are discarded.
func All[T any](ctx context.Context, limit int, fns ...func(context.Context) (T, error)) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	results := make([]T, len(fns))
	for i, fn := range fns {
		g.Go(func() error {
			v, err := fn(ctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// First runs every fn concurrently and returns the result of the first one to
// settle, success or failure. The derived context is canceled as soon as a
// winner is picked, signalling the losers to stop.
func First[T any](ctx context.Context, fns ...func(context.Context) (T, error)) (T, error) {
	type settled struct {
		val T
		err error
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan settled, len(fns))
	for _, fn := range fns {
		go func() {
			v, err := fn(ctx)
			ch <- settled{val: v, err: err}
		}()
	}

	select {
	case s := <-ch:
		return s.val, s.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
