package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Future is the pending result of an asynchronous call.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn in a new goroutine and returns its future.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Done is closed once the call has finished.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until the call finishes or ctx ends. Giving up does not stop
// the call; cancel the context it was started with for that.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Wait blocks until the call finishes.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.val, f.err
}

// Gather awaits every future and returns their values in order. The first
// error is returned.
func Gather[T any](ctx context.Context, futures ...*Future[T]) ([]T, error) {
	out := make([]T, len(futures))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range futures {
		g.Go(func() error {
			v, err := f.Await(ctx)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DefaultConcurrency is the Map limit used when limit is not positive.
const DefaultConcurrency = 10

// Map calls fn for every input with at most limit calls in flight and returns
// the outputs in input order. The first error cancels the remaining calls.
func Map[I, O any](ctx context.Context, limit int, inputs []I, fn func(context.Context, I) (O, error)) ([]O, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	out := make([]O, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range inputs {
		g.Go(func() error {
			v, err := fn(ctx, in)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
