package widgets_test

import (
	"strings"
	"testing"

	"github.com/deevus/garten/widgets"
)

func TestNavBar_Links(t *testing.T) {
	nb := widgets.NewNavBar(widgets.DefaultNavLinks)
	links := nb.Links()
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}
	want := []string{"Home", "Items", "Cart"}
	for i, l := range links {
		if l.Label != want[i] {
			t.Errorf("link %d: expected %s, got %s", i, want[i], l.Label)
		}
		if l.Icon == "" {
			t.Errorf("link %d: expected an icon", i)
		}
	}
}

func TestNavBar_Draw(t *testing.T) {
	nb := widgets.NewNavBar(widgets.DefaultNavLinks)
	ctx := testDrawContext(80, 1)

	s, err := nb.Draw(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size.Height != 1 {
		t.Errorf("expected surface height=1, got %d", s.Size.Height)
	}
	if s.Size.Width != 80 {
		t.Errorf("expected surface width=80, got %d", s.Size.Width)
	}

	got := rowText(s, 0)
	if got != " ⌂ Home  │  ♣ Items  │  ⛁ Cart" {
		t.Errorf("unexpected nav row %q", got)
	}
}

func TestNavBar_Draw_Narrow(t *testing.T) {
	nb := widgets.NewNavBar(widgets.DefaultNavLinks)
	ctx := testDrawContext(10, 1)

	s, err := nb.Draw(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := rowText(s, 0)
	if !strings.HasPrefix(got, " ⌂ Home") {
		t.Errorf("expected first link to be drawn, got %q", got)
	}
	if strings.Contains(got, "Cart") {
		t.Errorf("expected later links to be clipped, got %q", got)
	}
}
