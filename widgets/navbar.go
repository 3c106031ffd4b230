package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// NavLink is one static navigation entry.
type NavLink struct {
	Icon  string
	Label string
}

// DefaultNavLinks are the header links. None of them navigate anywhere.
var DefaultNavLinks = []NavLink{
	{Icon: "⌂", Label: "Home"},
	{Icon: "♣", Label: "Items"},
	{Icon: "⛁", Label: "Cart"},
}

// NavBar is a horizontal row of icon + label links.
type NavBar struct {
	links []NavLink
}

// NewNavBar creates a NavBar with the given links.
func NewNavBar(links []NavLink) *NavBar {
	return &NavBar{links: links}
}

// Links returns the configured links.
func (nb *NavBar) Links() []NavLink {
	return nb.links
}

const navSeparator = " │ "

// Draw renders the links as a single row: " ⌂ Home │ ♣ Items │ ⛁ Cart "
// Icons are drawn in bold, separators dimmed.
func (nb *NavBar) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, nb)

	col := uint16(0)
	put := func(text string, style vaxis.Style) {
		for _, ch := range ctx.Characters(text) {
			if col+uint16(ch.Width) > ctx.Max.Width {
				return
			}
			s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: style})
			col += uint16(ch.Width)
		}
	}

	for i, l := range nb.links {
		if i > 0 {
			put(navSeparator, vaxis.Style{Attribute: vaxis.AttrDim})
		}
		put(" ", vaxis.Style{})
		put(l.Icon, vaxis.Style{Attribute: vaxis.AttrBold})
		put(" "+l.Label+" ", vaxis.Style{})
	}

	return s, nil
}
