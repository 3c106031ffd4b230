package app

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/garten/internal"
	"github.com/deevus/garten/internal/fetch"
	"github.com/deevus/garten/views"
	"github.com/deevus/garten/widgets"
)

// DefaultTitle is shown in the header when Params.Title is empty.
const DefaultTitle = "Garten"

// Focus identifies the unit that receives key events.
type Focus int

const (
	FocusEcho Focus = iota
	FocusItems
	FocusCounter
	focusCount
)

func (f Focus) String() string {
	switch f {
	case FocusEcho:
		return "echo"
	case FocusItems:
		return "items"
	case FocusCounter:
		return "counter"
	default:
		return "unknown"
	}
}

// Params holds configuration for creating an App.
type Params struct {
	Title       string
	Services    *internal.Services
	Addresses   []string
	CounterStep int
	Logger      *slog.Logger
}

// App is the root vxfw widget for garten.
type App struct {
	title  string
	logger *slog.Logger

	navBar  *widgets.NavBar
	echo    *widgets.TextEcho
	items   *views.ItemsView
	counter *widgets.Counter
	elapsed *widgets.Elapsed
	focus   Focus

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	postEvent func(vaxis.Event)
	closed    bool
}

// New creates the root App widget.
func New(p Params) *App {
	a := &App{
		title:  p.Title,
		logger: p.Logger,
		navBar: widgets.NewNavBar(widgets.DefaultNavLinks),
		echo:   widgets.NewTextEcho(),
	}
	if a.title == "" {
		a.title = DefaultTitle
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	svc := p.Services
	if svc == nil {
		svc = internal.NewServices(fetch.NewClient(fetch.ClientParams{Logger: a.logger}), nil)
	}

	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.items = views.NewItemsView(views.ItemsViewParams{
		Context:   a.ctx,
		Client:    svc.Fetch,
		Addresses: p.Addresses,
		Logger:    a.logger,
	})
	a.counter = widgets.NewCounter(p.CounterStep)
	a.logger.Debug("counter changed", "value", a.counter.Value(), "step", a.counter.Step())
	a.counter.OnChange = func(v int) {
		a.logger.Debug("counter changed", "value", v)
	}
	a.elapsed = widgets.NewElapsed(widgets.ElapsedParams{
		Clock: svc.Clock,
		OnTick: func(seconds int) {
			a.post(views.TimerTicked{Seconds: seconds})
		},
	})
	a.setFocus(FocusEcho)
	return a
}

// SetPostEvent sets the function used to post events to the vaxis event loop.
// Must be called before the app receives vxfw.Init.
func (a *App) SetPostEvent(fn func(vaxis.Event)) {
	a.mu.Lock()
	a.postEvent = fn
	a.mu.Unlock()
	a.items.SetPostEvent(a.post)
}

// post forwards ev to the event loop. Events posted after Close are dropped.
func (a *App) post(ev vaxis.Event) {
	a.mu.Lock()
	fn := a.postEvent
	closed := a.closed
	a.mu.Unlock()
	if closed || fn == nil {
		return
	}
	fn(ev)
}

// Title returns the header title.
func (a *App) Title() string { return a.title }

// NavBar returns the header navigation links.
func (a *App) NavBar() *widgets.NavBar { return a.navBar }

// Echo returns the text echo unit.
func (a *App) Echo() *widgets.TextEcho { return a.echo }

// Items returns the data view.
func (a *App) Items() *views.ItemsView { return a.items }

// Counter returns the counter unit.
func (a *App) Counter() *widgets.Counter { return a.counter }

// Elapsed returns the elapsed-time unit.
func (a *App) Elapsed() *widgets.Elapsed { return a.elapsed }

// Focus returns the unit that currently receives key events.
func (a *App) Focus() Focus { return a.focus }

func (a *App) setFocus(f Focus) {
	a.focus = (f + focusCount) % focusCount
	a.echo.Focused = a.focus == FocusEcho
	a.counter.Focused = a.focus == FocusCounter
}

func (a *App) focused() vxfw.Widget {
	switch a.focus {
	case FocusItems:
		return a.items
	case FocusCounter:
		return a.counter
	default:
		return a.echo
	}
}

// Close stops the ticker and cancels any outstanding fetch. It waits for
// both to finish.
func (a *App) Close() error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	a.cancel()
	a.elapsed.Stop()
	return a.items.Close()
}

// Draw lays out the header, the echo, the data view, the counter, the
// elapsed time and an empty footer.
//
//	row 0         title + nav links
//	rows 2-3      text echo
//	rows 5..h-5   items view
//	row h-3       counter
//	row h-2       elapsed
//	row h-1       footer
func (a *App) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, a)
	width := ctx.Max.Width
	height := int(ctx.Max.Height)

	place := func(w vxfw.Widget, col uint16, row, rows int) error {
		if rows <= 0 || row < 0 || row+rows > height || col >= width {
			return nil
		}
		surf, err := w.Draw(ctx.WithMax(vxfw.Size{Width: width - col, Height: uint16(rows)}))
		if err != nil {
			return err
		}
		s.AddChild(int(col), row, surf)
		return nil
	}

	title := richtext.New([]vaxis.Segment{
		{Text: a.title, Style: vaxis.Style{Attribute: vaxis.AttrBold}},
	})
	if err := place(title, 0, 0, 1); err != nil {
		return vxfw.Surface{}, err
	}
	titleWidth := 0
	for _, ch := range ctx.Characters(a.title) {
		titleWidth += ch.Width
	}
	if err := place(a.navBar, uint16(titleWidth+1), 0, 1); err != nil {
		return vxfw.Surface{}, err
	}

	if err := place(a.echo, 0, 2, 2); err != nil {
		return vxfw.Surface{}, err
	}
	if err := place(a.items, 0, 5, height-9); err != nil {
		return vxfw.Surface{}, err
	}
	if err := place(a.counter, 0, height-3, 1); err != nil {
		return vxfw.Surface{}, err
	}
	if err := place(a.elapsed, 0, height-2, 1); err != nil {
		return vxfw.Surface{}, err
	}

	return s, nil
}

// CaptureEvent handles global keybindings before the focused unit sees them.
func (a *App) CaptureEvent(ev vaxis.Event) (vxfw.Command, error) {
	key, ok := ev.(vaxis.Key)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches('c', vaxis.ModCtrl):
		return vxfw.QuitCmd{}, nil
	case key.Matches('q') && a.focus != FocusEcho:
		return vxfw.QuitCmd{}, nil
	case key.Matches(vaxis.KeyTab):
		a.setFocus(a.focus + 1)
	case key.Matches(vaxis.KeyTab, vaxis.ModShift):
		a.setFocus(a.focus - 1)
	default:
		return nil, nil
	}
	return vxfw.ConsumeAndRedraw(), nil
}

// HandleEvent starts the fetch and the ticker on Init, applies posted
// results and otherwise delegates to the focused unit.
func (a *App) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	switch ev := ev.(type) {
	case vxfw.Init:
		a.items.Load(a.ctx)
		a.elapsed.Start(a.ctx)
		return vxfw.RedrawCmd{}, nil
	case views.FetchResolved:
		if !a.items.Apply(ev) {
			return nil, nil
		}
		if st := a.items.State(); st.Err != nil {
			a.logger.Warn("items fetch failed", "address", st.Address, "error", st.Err)
		}
		return vxfw.RedrawCmd{}, nil
	case views.TimerTicked:
		return vxfw.RedrawCmd{}, nil
	default:
		type handler interface {
			HandleEvent(vaxis.Event, vxfw.EventPhase) (vxfw.Command, error)
		}
		if h, ok := a.focused().(handler); ok {
			return h.HandleEvent(ev, phase)
		}
	}
	return nil, nil
}
