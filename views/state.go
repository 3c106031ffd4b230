package views

import (
	"encoding/json"

	"github.com/deevus/garten/internal/fetch"
)

// FetchResolved is a custom vaxis event posted by the items loader when a
// request completes. It is applied on the UI loop via ItemsView.Apply.
type FetchResolved struct {
	Resolution fetch.Resolution[json.RawMessage]
}

// TimerTicked is posted by the elapsed-time ticker after each increment,
// triggering a redraw.
type TimerTicked struct {
	Seconds int
}
