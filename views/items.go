package views

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/list"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/garten/internal/fetch"
	"github.com/deevus/garten/widgets"
	"github.com/dustin/go-humanize"
)

const (
	// summaryRows is the height of the summary table plus the blank row below it.
	summaryRows = 5
	// historyRow holds the latency graph within the summary.
	historyRow = 3
	// historySize is how many request durations the summary graph keeps.
	historySize = 60
)

// ItemsViewParams holds configuration for creating an ItemsView.
type ItemsViewParams struct {
	// Context bounds requests started from key events. Defaults to
	// context.Background.
	Context   context.Context
	Client    *fetch.Client
	Addresses []string
	PostEvent func(vaxis.Event)
	Logger    *slog.Logger
}

// ItemsView fetches a JSON document from one of the configured addresses
// and shows it pretty-printed below a short summary.
type ItemsView struct {
	ctx       context.Context
	loader    *fetch.Loader[json.RawMessage]
	addresses []string
	current   int
	logger    *slog.Logger

	postMu    sync.Mutex
	postEvent func(vaxis.Event)

	// mu guards lines, list and history, which Apply may touch from a
	// request goroutine when no PostEvent is set.
	mu      sync.Mutex
	lines   []string
	list    list.Dynamic
	history *widgets.LatencyHistory
}

// NewItemsView creates an ItemsView. Nothing is fetched until Load.
func NewItemsView(p ItemsViewParams) *ItemsView {
	iv := &ItemsView{
		ctx:       p.Context,
		addresses: p.Addresses,
		logger:    p.Logger,
		postEvent: p.PostEvent,
		history:   widgets.NewLatencyHistory(historySize),
	}
	if iv.ctx == nil {
		iv.ctx = context.Background()
	}
	if iv.logger == nil {
		iv.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	iv.loader = fetch.NewLoader(fetch.LoaderParams[json.RawMessage]{
		Client:   p.Client,
		Notify:   iv.notify,
		OnChange: iv.logTransition,
		Logger:   iv.logger,
	})
	iv.resetList()
	return iv
}

// SetPostEvent sets the function used to hand resolutions to the UI loop.
func (iv *ItemsView) SetPostEvent(fn func(vaxis.Event)) {
	iv.postMu.Lock()
	defer iv.postMu.Unlock()
	iv.postEvent = fn
}

func (iv *ItemsView) notify(res fetch.Resolution[json.RawMessage]) {
	iv.postMu.Lock()
	post := iv.postEvent
	iv.postMu.Unlock()

	if post == nil {
		iv.Apply(FetchResolved{Resolution: res})
		return
	}
	post(FetchResolved{Resolution: res})
}

func (iv *ItemsView) logTransition(s fetch.State[json.RawMessage]) {
	attrs := []any{"address", s.Address, "status", s.Status.String()}
	if s.Status.Terminal() {
		attrs = append(attrs, "took", s.Took)
	}
	if s.Err != nil {
		attrs = append(attrs, "error", s.Err)
	}
	iv.logger.Debug("items state changed", attrs...)
}

// Load activates the current address. It returns false when that address
// is already active or there are no addresses.
func (iv *ItemsView) Load(ctx context.Context) bool {
	if len(iv.addresses) == 0 {
		return false
	}
	return iv.loader.Load(ctx, iv.addresses[iv.current])
}

// Reload fetches the current address again.
func (iv *ItemsView) Reload(ctx context.Context) bool {
	return iv.loader.Reload(ctx)
}

// NextAddress switches to the following configured address and loads it.
func (iv *ItemsView) NextAddress(ctx context.Context) bool {
	return iv.switchTo(ctx, iv.current+1)
}

// PrevAddress switches to the preceding configured address and loads it.
func (iv *ItemsView) PrevAddress(ctx context.Context) bool {
	return iv.switchTo(ctx, iv.current-1)
}

func (iv *ItemsView) switchTo(ctx context.Context, i int) bool {
	n := len(iv.addresses)
	if n < 2 {
		return false
	}
	iv.current = (i + n) % n
	return iv.Load(ctx)
}

// Address returns the currently selected address.
func (iv *ItemsView) Address() string {
	if len(iv.addresses) == 0 {
		return ""
	}
	return iv.addresses[iv.current]
}

// Apply installs a resolution delivered through PostEvent. Resolutions of
// superseded requests are ignored and Apply returns false.
func (iv *ItemsView) Apply(ev FetchResolved) bool {
	if !iv.loader.Apply(ev.Resolution) {
		return false
	}

	st := ev.Resolution.State()
	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.history.Record(st.Took, st.Status == fetch.StatusFailed)
	if st.Status == fetch.StatusSucceeded {
		iv.lines = dumpLines(st.Data)
	} else {
		iv.lines = nil
	}
	iv.resetList()
	return true
}

// dumpLines pretty-prints raw with a two-space indent, keeping key order.
func dumpLines(raw json.RawMessage) []string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return strings.Split(string(raw), "\n")
	}
	return strings.Split(buf.String(), "\n")
}

func (iv *ItemsView) resetList() {
	iv.list = list.Dynamic{DrawCursor: true, Builder: iv.buildLine}
}

// State returns the loader's current state.
func (iv *ItemsView) State() fetch.State[json.RawMessage] {
	return iv.loader.State()
}

// Loaded reports whether the current address has been fetched successfully.
func (iv *ItemsView) Loaded() bool {
	return iv.loader.State().Status == fetch.StatusSucceeded
}

// Lines returns the pretty-printed document, one entry per line.
func (iv *ItemsView) Lines() []string {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return append([]string(nil), iv.lines...)
}

// Latencies returns the durations of recently completed requests, oldest
// first.
func (iv *ItemsView) Latencies() []time.Duration {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.history.Durations()
}

// Close cancels any outstanding request and waits for it to finish.
func (iv *ItemsView) Close() error {
	return iv.loader.Close()
}

// buildLine is called with mu held from Draw.
func (iv *ItemsView) buildLine(i uint, cursor uint) vxfw.Widget {
	if int(i) >= len(iv.lines) {
		return nil
	}
	return richtext.New([]vaxis.Segment{{Text: iv.lines[i]}})
}

func (iv *ItemsView) summary(st fetch.State[json.RawMessage], width uint16) *widgets.Table {
	address := st.Address
	if len(iv.addresses) > 1 {
		address = fmt.Sprintf("%s  (%d/%d)", address, iv.current+1, len(iv.addresses))
	}
	keyStyle := vaxis.Style{Attribute: vaxis.AttrDim}
	return &widgets.Table{
		Columns: []widgets.TableColumn{
			{Width: 8, Style: keyStyle},
			{Width: max(int(width)-9, 0)},
		},
		Rows: [][]string{
			{"address", address},
			{"size", humanize.Bytes(uint64(st.Size))},
			{"took", st.Took.Round(time.Millisecond).String()},
			{"history", ""},
		},
	}
}

// Draw renders the fetch state: a loading line, an error message, or the
// summary table followed by the scrollable document.
func (iv *ItemsView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	st := iv.loader.State()

	switch st.Status {
	case fetch.StatusPending:
		return drawLoadingState(ctx, iv)
	case fetch.StatusFailed:
		return drawErrorState(ctx, iv, st.Err)
	}

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, iv)

	tableSurf, err := iv.summary(st, ctx.Max.Width).Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: min(summaryRows-1, ctx.Max.Height)}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, tableSurf)

	iv.mu.Lock()
	defer iv.mu.Unlock()

	if ctx.Max.Height > historyRow && ctx.Max.Width > 9 {
		histSurf, err := iv.history.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width - 9, Height: 1}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(9, historyRow, histSurf)
	}

	if ctx.Max.Height <= summaryRows {
		return s, nil
	}

	listSurf, err := iv.list.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: ctx.Max.Height - summaryRows}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, summaryRows, listSurf)

	return s, nil
}

// HandleEvent switches addresses with [ and ], reloads with r and
// otherwise scrolls the document.
func (iv *ItemsView) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	if key, ok := ev.(vaxis.Key); ok {
		switch {
		case key.Matches(']'):
			iv.NextAddress(iv.ctx)
			return vxfw.ConsumeAndRedraw(), nil
		case key.Matches('['):
			iv.PrevAddress(iv.ctx)
			return vxfw.ConsumeAndRedraw(), nil
		case key.Matches('r'):
			iv.Reload(iv.ctx)
			return vxfw.ConsumeAndRedraw(), nil
		}
	}

	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.list.HandleEvent(ev, phase)
}
