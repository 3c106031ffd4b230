package fetch

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Resolution is the outcome of one request issued by a Loader. It is
// delivered through LoaderParams.Notify and handed back to Loader.Apply.
type Resolution[T any] struct {
	seq   uint64
	state State[T]
}

// Address returns the address the request was issued for.
func (r Resolution[T]) Address() string {
	return r.state.Address
}

// State returns the terminal state carried by the resolution.
func (r Resolution[T]) State() State[T] {
	return r.state
}

// LoaderParams holds configuration for creating a Loader.
type LoaderParams[T any] struct {
	Client *Client

	// Notify is called from the request goroutine once the request
	// completes. The receiver must pass the resolution to Apply on its own
	// thread. When nil, the loader applies resolutions itself.
	Notify func(Resolution[T])

	// OnChange observes every accepted transition, pending first and then
	// exactly one terminal state per activation. It must not call back
	// into the Loader.
	OnChange func(State[T])

	Logger *slog.Logger
}

// Loader keeps the State of the most recently activated address. Only the
// latest request's resolution is authoritative; resolutions of superseded
// requests are discarded by Apply.
type Loader[T any] struct {
	client   *Client
	notify   func(Resolution[T])
	onChange func(State[T])
	logger   *slog.Logger

	// emitMu serialises transitions with their OnChange calls.
	emitMu sync.Mutex

	mu      sync.Mutex
	state   State[T]
	active  bool
	seq     uint64
	cancel  context.CancelFunc
	closed  bool
	pending errgroup.Group
}

// NewLoader creates an idle Loader.
func NewLoader[T any](p LoaderParams[T]) *Loader[T] {
	l := &Loader[T]{
		client:   p.Client,
		notify:   p.Notify,
		onChange: p.OnChange,
		logger:   p.Logger,
	}
	if l.client == nil {
		l.client = NewClient(ClientParams{Logger: p.Logger})
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// Load activates address. If address is already the active one nothing
// happens and Load returns false; otherwise any outstanding request is
// cancelled, the state becomes pending and one request is issued.
func (l *Loader[T]) Load(ctx context.Context, address string) bool {
	l.emitMu.Lock()
	defer l.emitMu.Unlock()

	l.mu.Lock()
	if l.closed || (l.active && l.state.Address == address) {
		l.mu.Unlock()
		return false
	}
	l.mu.Unlock()

	l.activate(ctx, address)
	return true
}

// Reload starts a new activation for the current address. It returns
// false when nothing has been loaded yet.
func (l *Loader[T]) Reload(ctx context.Context) bool {
	l.emitMu.Lock()
	defer l.emitMu.Unlock()

	l.mu.Lock()
	if l.closed || !l.active {
		l.mu.Unlock()
		return false
	}
	address := l.state.Address
	l.mu.Unlock()

	l.activate(ctx, address)
	return true
}

// activate must be called with emitMu held.
func (l *Loader[T]) activate(ctx context.Context, address string) {
	reqCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	l.cancel = cancel
	l.active = true
	l.state = pending[T](address)
	state := l.state
	l.mu.Unlock()

	l.logger.Debug("fetch activated", "address", address, "seq", seq)
	l.emit(state)

	l.pending.Go(func() error {
		defer cancel()

		var data T
		meta, err := l.client.GetJSON(reqCtx, address, &data)
		res := Resolution[T]{seq: seq}
		if err != nil {
			res.state = failed[T](address, err, meta)
		} else {
			res.state = succeeded(address, data, meta)
		}

		if l.notify != nil {
			l.notify(res)
		} else {
			l.Apply(res)
		}
		return nil
	})
}

// Apply installs res if it belongs to the current activation and the
// state is still pending. Stale or duplicate resolutions are dropped and
// Apply returns false.
func (l *Loader[T]) Apply(res Resolution[T]) bool {
	l.emitMu.Lock()
	defer l.emitMu.Unlock()

	l.mu.Lock()
	if res.seq != l.seq || l.state.Status != StatusPending || !res.state.Status.Terminal() {
		current := l.seq
		l.mu.Unlock()
		l.logger.Debug("dropping stale fetch resolution",
			"address", res.state.Address, "seq", res.seq, "current", current)
		return false
	}
	l.state = res.state
	l.mu.Unlock()

	l.emit(res.state)
	return true
}

func (l *Loader[T]) emit(s State[T]) {
	if l.onChange != nil {
		l.onChange(s)
	}
}

// State returns the current state. Before the first Load it is a pending
// state with an empty address.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Address returns the active address, or "" before the first Load.
func (l *Loader[T]) Address() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Address
}

// Close cancels the outstanding request and waits for request goroutines
// to finish. Later calls to Load and Reload do nothing.
func (l *Loader[T]) Close() error {
	l.mu.Lock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()
	return l.pending.Wait()
}
