package internal

import (
	"github.com/deevus/garten/internal/fetch"
	"github.com/jonboulle/clockwork"
)

// Services holds the collaborators the UI needs from the outside world.
type Services struct {
	Fetch *fetch.Client
	Clock clockwork.Clock
}

// NewServices creates a Services container. A nil clock means the real clock.
func NewServices(client *fetch.Client, clock clockwork.Clock) *Services {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Services{
		Fetch: client,
		Clock: clock,
	}
}
