// Package poll provides a generic subscription to a no-argument async
// producer, re-invoked on a fixed interval. The core is
// framework-agnostic: UI layers consume the Updates channel through a
// thin adapter.
package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hansajasandeepabadalge/naiterm/internal/xslog"
)

const DefaultInterval = 30 * time.Second

// Snapshot is the latest observed state of a poller. A failed
// invocation sets Err but keeps the previous Data: stale-but-present
// data is preferred over clearing on a transient failure.
type Snapshot[T any] struct {
	Data T
	Err  error

	// Ready latches true once the first invocation completes, success
	// or failure, and never unlatches.
	Ready bool

	// Refreshing is true while a manual Refetch is in flight.
	Refreshing bool

	// UpdatedAt is when Data was last replaced by a successful fetch.
	UpdatedAt time.Time
}

type Poller[T any] struct {
	fetch    func(ctx context.Context) (T, error)
	interval time.Duration
	onError  func(error)
	logger   *slog.Logger

	mu       sync.Mutex
	snapshot Snapshot[T]
	updates  chan Snapshot[T]
	closed   bool
	cancel   context.CancelFunc
	ticker   *time.Ticker

	// gen invalidates results from superseded invocations: a slow,
	// stale response must not overwrite newer state after the poller
	// has moved on.
	gen uint64
}

type Option[T any] func(*Poller[T])

func WithInterval[T any](d time.Duration) Option[T] {
	return func(p *Poller[T]) { p.interval = d }
}

func WithOnError[T any](fn func(error)) Option[T] {
	return func(p *Poller[T]) { p.onError = fn }
}

func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(p *Poller[T]) { p.logger = logger }
}

func New[T any](fetch func(ctx context.Context) (T, error), opts ...Option[T]) *Poller[T] {
	p := &Poller[T]{
		fetch:    fetch,
		interval: DefaultInterval,
		logger:   slog.Default(),
		updates:  make(chan Snapshot[T], 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start invokes the fetch function immediately, then re-invokes it
// every interval until Stop is called or ctx is done. Start is a no-op
// on a poller that is already running or already stopped.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil || p.closed {
		p.mu.Unlock()
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.ticker = time.NewTicker(p.interval)
	p.mu.Unlock()

	p.logger.Debug("poller started", xslog.Interval(p.interval))

	go p.run(ctx)
}

func (p *Poller[T]) run(ctx context.Context) {
	p.invoke(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.ticker.C:
			p.invoke(ctx)
		}
	}
}

func (p *Poller[T]) invoke(ctx context.Context) {
	p.mu.Lock()
	gen := p.gen
	p.mu.Unlock()

	start := time.Now()
	data, err := p.fetch(ctx)
	elapsed := time.Since(start)

	p.mu.Lock()
	if gen != p.gen || ctx.Err() != nil {
		// superseded or stopped mid-flight: discard
		p.mu.Unlock()
		return
	}

	p.snapshot.Ready = true
	p.snapshot.Refreshing = false
	if err != nil {
		p.snapshot.Err = err
	} else {
		p.snapshot.Data = data
		p.snapshot.Err = nil
		p.snapshot.UpdatedAt = time.Now()
	}
	snapshot := p.snapshot
	p.mu.Unlock()

	if err != nil {
		p.logger.Warn("poll failed", xslog.Duration(elapsed), xslog.Error(err))
		if p.onError != nil {
			p.onError(err)
		}
	} else {
		p.logger.Debug("poll complete", xslog.Duration(elapsed))
	}

	p.publish(snapshot)
}

// publish delivers the snapshot without blocking: a slow consumer only
// ever misses intermediate states, never the latest one. The mutex
// excludes Stop, so a send never races the channel close.
func (p *Poller[T]) publish(snapshot Snapshot[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	for {
		select {
		case p.updates <- snapshot:
			return
		default:
			select {
			case <-p.updates:
			default:
			}
		}
	}
}

// Refetch triggers an out-of-band invocation immediately. It does not
// reset the interval timer.
func (p *Poller[T]) Refetch(ctx context.Context) {
	p.mu.Lock()
	if p.cancel == nil {
		p.mu.Unlock()
		return
	}
	p.snapshot.Refreshing = true
	snapshot := p.snapshot
	p.mu.Unlock()

	p.publish(snapshot)
	go p.invoke(ctx)
}

// Stop cancels the in-flight invocation's context, stops the timer,
// and closes the Updates channel. No new invocations are scheduled
// after Stop returns; a fetch that ignores its context may still be
// running, but its late result is discarded by the generation guard.
// A stopped poller cannot be restarted.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	if p.cancel == nil {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	p.cancel = nil
	p.ticker.Stop()
	p.gen++
	p.closed = true
	close(p.updates)
	p.mu.Unlock()

	cancel()
}

// Snapshot returns the latest observed state.
func (p *Poller[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Updates emits the snapshot after every completed invocation. Stop
// closes the channel, which is the consumer's signal to stop reading.
func (p *Poller[T]) Updates() <-chan Snapshot[T] {
	return p.updates
}
