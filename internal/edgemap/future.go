package edgemap

import "context"

// Source yields an edge map once one is available. Lasso tools hold a Source
// rather than a *Map so they can be created before decoding finishes.
type Source interface {
	// EdgeMap returns the map and true once it is ready to query.
	EdgeMap() (*Map, bool)
}

// Future is an edge map whose construction runs in the background.
//
// Create one with Go or Static. A nil *Future never becomes ready. A Future
// is safe for concurrent use.
type Future struct {
	done chan struct{}
	m    *Map
	err  error
}

// Go starts load in a new goroutine and returns a Future for its result.
// A load that returns neither a map nor an error resolves to ErrEmptyImage.
func Go(ctx context.Context, load func(context.Context) (*Map, error)) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		m, err := load(ctx)
		if err == nil && m == nil {
			err = ErrEmptyImage
		}
		if err != nil {
			m = nil
		}
		f.m, f.err = m, err
	}()
	return f
}

// Static returns an already resolved Future holding m.
func Static(m *Map) *Future {
	f := &Future{done: make(chan struct{}), m: m}
	if m == nil {
		f.err = ErrEmptyImage
	}
	close(f.done)
	return f
}

// Failed returns an already resolved Future that failed with err.
func Failed(err error) *Future {
	if err == nil {
		err = ErrEmptyImage
	}
	f := &Future{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Ready reports whether construction has finished, successfully or not.
func (f *Future) Ready() bool {
	if f == nil {
		return false
	}
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// EdgeMap returns the map without blocking. It reports false while
// construction is still running or after it failed.
func (f *Future) EdgeMap() (*Map, bool) {
	if !f.Ready() {
		return nil, false
	}
	return f.m, f.m != nil
}

// Err returns the construction error, or nil while construction is running
// or after it succeeded.
func (f *Future) Err() error {
	if !f.Ready() {
		return nil
	}
	return f.err
}

// Wait blocks until construction finishes or ctx is done.
func (f *Future) Wait(ctx context.Context) (*Map, error) {
	if f == nil {
		return nil, ErrEmptyImage
	}
	select {
	case <-f.done:
		return f.m, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
