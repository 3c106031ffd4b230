package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/textfield"
)

// TextEcho is a single-line text input that echoes its value below it.
type TextEcho struct {
	field *textfield.TextField
	value string

	// Focused draws the prompt highlighted.
	Focused bool
}

// NewTextEcho creates an empty TextEcho.
func NewTextEcho() *TextEcho {
	te := &TextEcho{field: &textfield.TextField{}}
	te.field.OnChange = func(v string) (vxfw.Command, error) {
		te.Set(v)
		return vxfw.ConsumeAndRedraw(), nil
	}
	return te
}

// Set replaces the current value.
func (te *TextEcho) Set(v string) {
	te.value = v
	te.field.Value = v
}

// Value returns the current value.
func (te *TextEcho) Value() string {
	return te.value
}

// Label returns the echo line, e.g. "You typed: abc".
func (te *TextEcho) Label() string {
	return "You typed: " + te.value
}

// Draw renders the prompt and input field on the first row and the echo
// on the second.
func (te *TextEcho) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 2, te)
	width := int(ctx.Max.Width)

	prompt := vaxis.Style{Attribute: vaxis.AttrDim}
	if te.Focused {
		prompt = vaxis.Style{Attribute: vaxis.AttrBold}
	}
	col := writeText(&s, 0, 0, width, "> ", prompt, false)
	if col < width {
		fieldSurf, err := te.field.Draw(ctx.WithMax(vxfw.Size{Width: uint16(width - col), Height: 1}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(col, 0, fieldSurf)
	}

	writeText(&s, 0, 1, width, te.Label(), vaxis.Style{}, false)
	return s, nil
}

// HandleEvent passes key events to the input field, which reports every
// edit back through Set.
func (te *TextEcho) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	return te.field.HandleEvent(ev, phase)
}
