package widgets_test

import (
	"testing"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/deevus/garten/widgets"
)

func TestCounter_StartsAtZero(t *testing.T) {
	c := widgets.NewCounter(3)
	if c.Value() != 0 {
		t.Errorf("expected 0, got %d", c.Value())
	}
	if c.Label() != "Count: 0" {
		t.Errorf("unexpected label %q", c.Label())
	}
	if c.Step() != 3 {
		t.Errorf("expected step 3, got %d", c.Step())
	}
}

func TestCounter_Increase(t *testing.T) {
	c := widgets.NewCounter(3)
	for i := 0; i < 3; i++ {
		c.Increase()
	}
	if c.Value() != 9 {
		t.Errorf("expected 9, got %d", c.Value())
	}
}

func TestCounter_Label_Grouping(t *testing.T) {
	c := widgets.NewCounter(1200)
	c.Increase()
	if c.Label() != "Count: 1,200" {
		t.Errorf("unexpected label %q", c.Label())
	}
}

func TestCounter_OnChange(t *testing.T) {
	c := widgets.NewCounter(2)
	var seen []int
	c.OnChange = func(v int) { seen = append(seen, v) }

	c.Increase()
	c.Increase()

	if len(seen) != 2 || seen[0] != 2 || seen[1] != 4 {
		t.Errorf("unexpected OnChange values %v", seen)
	}
}

func TestCounter_HandleEvent(t *testing.T) {
	c := widgets.NewCounter(5)

	for _, key := range []vaxis.Key{
		{Keycode: vaxis.KeyEnter},
		{Keycode: ' '},
		{Keycode: '+'},
	} {
		cmd, err := c.HandleEvent(key, vxfw.EventPhase(0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd == nil {
			t.Errorf("expected command for key %q", key.Keycode)
		}
	}
	if c.Value() != 15 {
		t.Errorf("expected 15, got %d", c.Value())
	}

	cmd, _ := c.HandleEvent(vaxis.Key{Keycode: 'x'}, vxfw.EventPhase(0))
	if cmd != nil {
		t.Errorf("expected nil command for unhandled key, got %T", cmd)
	}
	if c.Value() != 15 {
		t.Errorf("expected value unchanged, got %d", c.Value())
	}
}

func TestCounter_Draw(t *testing.T) {
	c := widgets.NewCounter(1)
	c.Increase()

	s, err := c.Draw(testDrawContext(40, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size.Height != 1 {
		t.Errorf("expected height=1, got %d", s.Size.Height)
	}
	if got := rowText(s, 0); got != "Count: 1  [ Increase ]" {
		t.Errorf("unexpected row %q", got)
	}
}
