package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/dustin/go-humanize"
)

// Counter holds an integer that grows by a fixed step each time its
// Increase button is activated.
type Counter struct {
	step  int
	value int

	// Focused draws the button highlighted.
	Focused bool
	// OnChange is called with the new value after every increase.
	OnChange func(value int)
}

// NewCounter creates a Counter starting at zero.
func NewCounter(step int) *Counter {
	return &Counter{step: step}
}

// Increase adds the step to the current value.
func (c *Counter) Increase() {
	c.value += c.step
	if c.OnChange != nil {
		c.OnChange(c.value)
	}
}

// Value returns the current count.
func (c *Counter) Value() int {
	return c.value
}

// Step returns the per-activation increment.
func (c *Counter) Step() int {
	return c.step
}

// Label returns the count as displayed, e.g. "Count: 1,200".
func (c *Counter) Label() string {
	return "Count: " + humanize.Comma(int64(c.value))
}

// Draw renders "Count: N  [ Increase ]" on one row.
func (c *Counter) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, c)

	button := vaxis.Style{Attribute: vaxis.AttrBold}
	if c.Focused {
		button.Attribute |= vaxis.AttrReverse
	}

	col := 0
	col = writeText(&s, uint16(col), 0, int(ctx.Max.Width), c.Label()+"  ", vaxis.Style{}, false)
	writeText(&s, uint16(col), 0, int(ctx.Max.Width)-col, "[ Increase ]", button, false)
	return s, nil
}

// HandleEvent increases the count on Enter, Space or '+'.
func (c *Counter) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	key, ok := ev.(vaxis.Key)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches(vaxis.KeyEnter), key.Matches(' '), key.Matches('+'):
		c.Increase()
		return vxfw.ConsumeAndRedraw(), nil
	}
	return nil, nil
}
