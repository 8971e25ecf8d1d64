// Package search coalesces rapid query input into a single backend request.
// Unlike a bare timer debounce, each accepted fire cancels the previous
// in-flight request and late responses from superseded generations are
// discarded, so a slow early request can never overwrite newer results.
package search

import (
	"context"
	"sync"
	"time"
)

// Fetch runs one search request. Implementations must honor ctx cancellation.
type Fetch[T any] func(ctx context.Context, query string) (T, error)

// Result is one delivered search outcome. Generation increases with every
// fired request; consumers keeping their own last-seen generation can drop
// anything older.
type Result[T any] struct {
	Query      string
	Generation uint64
	Value      T
	Err        error
}

// Debouncer coalesces Input calls into debounced Fetch invocations.
type Debouncer[T any] struct {
	window  time.Duration
	fetch   Fetch[T]
	results chan Result[T]
	ctx     context.Context

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	gen     uint64
	cancel  context.CancelFunc
	closed  bool
}

// NewDebouncer creates a debouncer bound to ctx. When ctx is cancelled all
// in-flight work stops and no further results are delivered.
func NewDebouncer[T any](ctx context.Context, window time.Duration, fetch Fetch[T]) *Debouncer[T] {
	if window <= 0 {
		window = 350 * time.Millisecond
	}
	return &Debouncer[T]{
		window:  window,
		fetch:   fetch,
		results: make(chan Result[T], 1),
		ctx:     ctx,
	}
}

// Results delivers search outcomes for current generations only. The channel
// is closed by Close, so consumers can range over it.
func (d *Debouncer[T]) Results() <-chan Result[T] {
	return d.results
}

// Close stops pending timers, aborts any in-flight request, and closes the
// results channel. Input and Flush must not be called after Close.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
	}
	// Anything still in flight is now stale.
	d.gen++
	close(d.results)
}

// Input registers a keystroke. The fetch fires once input pauses for the
// debounce window; keystrokes inside the window restart it.
func (d *Debouncer[T]) Input(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = query
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// Flush fires the pending query immediately, skipping the remaining window.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.cancel != nil {
		// Abort the superseded in-flight request.
		d.cancel()
	}
	reqCtx, cancel := context.WithCancel(d.ctx)
	d.cancel = cancel
	d.gen++
	gen := d.gen
	query := d.pending
	d.mu.Unlock()

	go func() {
		value, err := d.fetch(reqCtx, query)

		d.mu.Lock()
		defer d.mu.Unlock()
		if d.closed || gen != d.gen || d.ctx.Err() != nil {
			return
		}
		// Latest wins: replace an unconsumed older result instead of blocking.
		select {
		case <-d.results:
		default:
		}
		d.results <- Result[T]{Query: query, Generation: gen, Value: value, Err: err}
	}()
}
