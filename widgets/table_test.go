package widgets_test

import (
	"testing"

	"github.com/deevus/garten/widgets"
)

func TestTable_Draw_AlignedColumns(t *testing.T) {
	tbl := &widgets.Table{
		Columns: []widgets.TableColumn{
			{Width: 10},
			{Width: 6, AlignRight: true},
			{Width: 8, AlignRight: true},
		},
		Header: []string{"ADDRESS", "SIZE", "TOOK"},
		Rows: [][]string{
			{"/todos/1", "83 B", "12ms"},
			{"/cart", "1.2 kB", "140ms"},
		},
		Gap: 2,
	}

	surf, err := tbl.Draw(testDrawContext(40, 10))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// header + 2 data rows
	if surf.Size.Height != 3 {
		t.Fatalf("expected height=3, got %d", surf.Size.Height)
	}

	if g := cellText(surf.Buffer[0]); g != "A" {
		t.Errorf("header col 0: expected 'A', got %q", g)
	}

	// "SIZE" right-aligned in width 6 starting at col 12 (10+2 gap) -> col 14.
	if g := cellText(surf.Buffer[14]); g != "S" {
		t.Errorf("header SIZE col 14: expected 'S', got %q", g)
	}

	// "83 B" is 4 chars right-aligned in 6 -> col 14 on row 1.
	if g := cellText(surf.Buffer[40+14]); g != "8" {
		t.Errorf("row1 size col 14: expected '8', got %q", g)
	}

	// "1.2 kB" fills the column exactly -> col 12 on row 2.
	if g := cellText(surf.Buffer[80+12]); g != "1" {
		t.Errorf("row2 size col 12: expected '1', got %q", g)
	}
}

func TestTable_Draw_NoHeader(t *testing.T) {
	tbl := &widgets.Table{
		Columns: []widgets.TableColumn{
			{Width: 8},
			{Width: 6},
		},
		Rows: [][]string{
			{"address", "http://x"},
		},
	}

	surf, err := tbl.Draw(testDrawContext(30, 5))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if surf.Size.Height != 1 {
		t.Errorf("expected height=1 (no header), got %d", surf.Size.Height)
	}
}

func TestTable_Draw_TruncatesLongText(t *testing.T) {
	tbl := &widgets.Table{
		Columns: []widgets.TableColumn{
			{Width: 4},
		},
		Rows: [][]string{
			{"toolongname"},
		},
	}

	surf, err := tbl.Draw(testDrawContext(20, 5))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if g := cellText(surf.Buffer[0]); g != "t" {
		t.Errorf("col 0: expected 't', got %q", g)
	}
	if g := cellText(surf.Buffer[3]); g != "l" {
		t.Errorf("col 3: expected 'l', got %q", g)
	}
	if g := cellText(surf.Buffer[4]); g != "" {
		t.Errorf("col 4: expected empty, got %q", g)
	}
}

func TestTable_Draw_ClipsRowsToHeight(t *testing.T) {
	tbl := &widgets.Table{
		Columns: []widgets.TableColumn{{Width: 5}},
		Header:  []string{"KEY"},
		Rows:    [][]string{{"a"}, {"b"}, {"c"}},
	}

	surf, err := tbl.Draw(testDrawContext(10, 2))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if surf.Size.Height != 2 {
		t.Fatalf("expected height=2, got %d", surf.Size.Height)
	}
	if got := rowText(surf, 1); got != "a" {
		t.Errorf("expected first data row, got %q", got)
	}
}
