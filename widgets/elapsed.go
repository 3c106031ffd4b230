package widgets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/jonboulle/clockwork"
)

// ElapsedParams holds configuration for creating an Elapsed.
type ElapsedParams struct {
	// Clock drives the ticker. Defaults to the real clock.
	Clock clockwork.Clock
	// Unit is appended to the count. Defaults to "seconds elapsed".
	Unit string
	// OnTick is called from the ticker goroutine after each increment.
	OnTick func(seconds int)
}

// Elapsed counts whole seconds since Start.
type Elapsed struct {
	clock  clockwork.Clock
	unit   string
	onTick func(int)

	mu      sync.Mutex
	seconds int
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewElapsed creates a stopped Elapsed at zero.
func NewElapsed(p ElapsedParams) *Elapsed {
	e := &Elapsed{clock: p.Clock, unit: p.Unit, onTick: p.OnTick}
	if e.clock == nil {
		e.clock = clockwork.NewRealClock()
	}
	if e.unit == "" {
		e.unit = "seconds elapsed"
	}
	return e
}

// Start begins incrementing once per second. Calling Start while running
// does nothing.
func (e *Elapsed) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := e.clock.NewTicker(time.Second)
	done := make(chan struct{})
	e.cancel = cancel
	e.done = done

	go e.run(ctx, ticker, done)
}

func (e *Elapsed) run(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	// A cancelled parent context leaves the ticker stopped and restartable.
	defer func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.done == done {
			e.cancel()
			e.cancel, e.done = nil, nil
		}
	}()
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			e.mu.Lock()
			if ctx.Err() != nil {
				e.mu.Unlock()
				return
			}
			e.seconds++
			n := e.seconds
			e.mu.Unlock()
			if e.onTick != nil {
				e.onTick(n)
			}
		}
	}
}

// Stop cancels the ticker and waits for it to exit. No increment happens
// after Stop returns.
func (e *Elapsed) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the ticker is active.
func (e *Elapsed) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancel != nil
}

// Seconds returns the number of ticks so far.
func (e *Elapsed) Seconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seconds
}

// Label returns the count with its unit, e.g. "3 seconds elapsed".
func (e *Elapsed) Label() string {
	return fmt.Sprintf("%d %s", e.Seconds(), e.unit)
}

// Draw renders the label on one row.
func (e *Elapsed) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, e)
	writeText(&s, 0, 0, int(ctx.Max.Width), e.Label(), vaxis.Style{Attribute: vaxis.AttrDim}, false)
	return s, nil
}
