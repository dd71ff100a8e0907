package catalogclient

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"videocatalog-backend/pkg/filterstate"
)

// DefaultDebounce is how long filter changes must be stable before a
// refetch fires.
const DefaultDebounce = 300 * time.Millisecond

// Fetcher is the transport used by a Lister. *Client satisfies it.
type Fetcher interface {
	List(ctx context.Context, resource string, query url.Values) (*Page, error)
}

// Lister owns a filter state machine for one resource and keeps the
// fetched page in step with it. Dispatches are coalesced by a debounce
// timer; when a fetch starts it cancels any in-flight predecessor, so
// only the newest request's result is ever delivered. Cancellations are
// swallowed, not reported.
type Lister struct {
	fetcher  Fetcher
	resource string
	schema   filterstate.Schema
	debounce time.Duration

	onResult func(filterstate.State, *Page)
	onError  func(error)

	mu     sync.Mutex
	state  filterstate.State
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// ListerOption configures a Lister.
type ListerOption func(*Lister)

// WithDebounce overrides the debounce interval. Zero disables
// debouncing entirely.
func WithDebounce(d time.Duration) ListerOption {
	return func(l *Lister) { l.debounce = d }
}

// WithFetcher substitutes the transport, for tests.
func WithFetcher(f Fetcher) ListerOption {
	return func(l *Lister) { l.fetcher = f }
}

// NewLister builds a Lister for one resource. onResult receives the
// state a page was fetched for together with the page; onError receives
// transport and API failures, never cancellations. Either callback may
// be nil.
func NewLister(
	client *Client,
	resource string,
	schema filterstate.Schema,
	onResult func(filterstate.State, *Page),
	onError func(error),
	opts ...ListerOption,
) *Lister {
	l := &Lister{
		resource: resource,
		schema:   schema,
		debounce: DefaultDebounce,
		onResult: onResult,
		onError:  onError,
		state:    schema.Default(),
	}
	if client != nil {
		l.fetcher = client
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current filter state.
func (l *Lister) State() filterstate.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// Dispatch applies an action and schedules a debounced refetch. A
// dispatch that leaves the state unchanged does nothing.
func (l *Lister) Dispatch(a filterstate.Action) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	next := l.schema.Reduce(l.state, a)
	if next.Equal(l.state) {
		return
	}
	l.state = next

	l.scheduleLocked()
}

// Refresh refetches the current state immediately, bypassing the
// debounce window.
func (l *Lister) Refresh() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.startFetchLocked()
}

func (l *Lister) scheduleLocked() {
	if l.timer != nil {
		l.timer.Stop()
	}
	if l.debounce <= 0 {
		l.startFetchLocked()
		return
	}
	l.timer = time.AfterFunc(l.debounce, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			return
		}
		l.startFetchLocked()
	})
}

// startFetchLocked cancels the in-flight request, if any, and launches
// a fetch for the current state. Caller holds l.mu.
func (l *Lister) startFetchLocked() {
	if l.cancel != nil {
		l.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	state := l.state.Clone()
	query := l.schema.ToQuery(state)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		page, err := l.fetcher.List(ctx, l.resource, query)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			if l.onError != nil {
				l.onError(err)
			}
			return
		}

		// A newer request may have started while this one was in
		// flight; its cancellation usually catches that, but check
		// again so a completed-but-stale result is still dropped.
		select {
		case <-ctx.Done():
			return
		default:
		}

		if l.onResult != nil {
			l.onResult(state, page)
		}
	}()
}

// Close cancels pending work and waits for the in-flight fetch, if
// any, to finish. The Lister must not be used afterwards.
func (l *Lister) Close() {
	l.mu.Lock()
	l.closed = true
	if l.timer != nil {
		l.timer.Stop()
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()

	l.wg.Wait()
}
