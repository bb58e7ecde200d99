package shaping

import "testing"

func shapeLTR(text string) Line {
	return Monospace{}.Shape(text, 0, AlignLeft)
}

func TestShapeASCIIPositions(t *testing.T) {
	line := shapeLTR("abc")
	cells := line.Cells()
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	for i, c := range cells {
		if c.X != i || c.Width != 1 || c.RTL {
			t.Fatalf("cell %d: got X=%d Width=%d RTL=%v", i, c.X, c.Width, c.RTL)
		}
	}
	if line.Width() != 3 {
		t.Fatalf("Width() = %d, want 3", line.Width())
	}
	for off := 0; off <= 3; off++ {
		if x := line.IndexToX(off); x != off {
			t.Fatalf("IndexToX(%d) = %d, want %d", off, x, off)
		}
	}
}

func TestShapeRTLRightAligned(t *testing.T) {
	line := Monospace{}.Shape("שלום", 10, AlignRight)
	// 4 characters of width 1 right-aligned in 10 cells: text occupies
	// x 6..9 and the logical start of the line sits at the right edge.
	if got := line.IndexToX(0); got != 10 {
		t.Fatalf("IndexToX(0) = %d, want 10", got)
	}
	if got := line.IndexToX(8); got != 6 {
		t.Fatalf("IndexToX(8) = %d, want 6", got)
	}
	cells := line.Cells()
	if cells[0].X != 9 {
		t.Fatalf("first logical cell at X=%d, want 9", cells[0].X)
	}
	if cells[3].X != 6 {
		t.Fatalf("last logical cell at X=%d, want 6", cells[3].X)
	}
	for i, c := range cells {
		if !c.RTL {
			t.Fatalf("cell %d not marked RTL", i)
		}
	}
}

func TestShapeMixedDirection(t *testing.T) {
	// LTR paragraph with an embedded Hebrew run: the run's cells display
	// reversed while the rest keeps logical order.
	line := shapeLTR("abc שלום")
	cells := line.Cells()
	if len(cells) != 8 {
		t.Fatalf("expected 8 cells, got %d", len(cells))
	}
	for i := 0; i < 4; i++ { // "abc "
		if cells[i].X != i {
			t.Fatalf("cell %d at X=%d, want %d", i, cells[i].X, i)
		}
	}
	if cells[4].X != 7 { // ש is visually rightmost of its run
		t.Fatalf("ש at X=%d, want 7", cells[4].X)
	}
	if cells[7].X != 4 { // ם is visually leftmost of its run
		t.Fatalf("ם at X=%d, want 4", cells[7].X)
	}
}

func TestShapeDigitsInRTLParagraph(t *testing.T) {
	// Digits keep left-to-right order; in an RTL paragraph the digit run
	// as a whole moves to the visual left.
	line := shapeLTR("שלום 123")
	cells := line.Cells()
	if cells[5].Text != "1" || cells[5].X != 0 {
		t.Fatalf("digit run start: got %q at X=%d, want \"1\" at 0", cells[5].Text, cells[5].X)
	}
	if cells[7].Text != "3" || cells[7].X != 2 {
		t.Fatalf("digit run end: got %q at X=%d, want \"3\" at 2", cells[7].Text, cells[7].X)
	}
	if cells[0].X != 7 { // ש rightmost
		t.Fatalf("ש at X=%d, want 7", cells[0].X)
	}
}

func TestXToIndexMidpoint(t *testing.T) {
	line := shapeLTR("ab")
	cases := []struct {
		x        int
		off      int
		trailing bool
	}{
		{-5, 0, false},
		{0, 0, false},
		{1, 1, false},
		{2, 1, true},
		{99, 1, true},
	}
	for _, c := range cases {
		off, tr := line.XToIndex(c.x)
		if off != c.off || tr != c.trailing {
			t.Fatalf("XToIndex(%d) = (%d, %v), want (%d, %v)", c.x, off, tr, c.off, c.trailing)
		}
	}
}

func TestXToIndexWideCluster(t *testing.T) {
	line := shapeLTR("日")
	if off, tr := line.XToIndex(0); off != 0 || tr {
		t.Fatalf("left half: got (%d, %v)", off, tr)
	}
	if off, tr := line.XToIndex(1); off != 0 || !tr {
		t.Fatalf("right half: got (%d, %v), want trailing", off, tr)
	}
}

func TestXToIndexRTL(t *testing.T) {
	line := shapeLTR("שלום")
	// Leftmost cell is the logically last character; its left half means
	// "after that character".
	off, tr := line.XToIndex(0)
	if off != 6 || !tr {
		t.Fatalf("XToIndex(0) = (%d, %v), want (6, true)", off, tr)
	}
	// Past the right edge lands before the logically first character.
	off, tr = line.XToIndex(99)
	if off != 0 || tr {
		t.Fatalf("XToIndex(99) = (%d, %v), want (0, false)", off, tr)
	}
}

func TestCursorStepLTR(t *testing.T) {
	line := shapeLTR("abc")
	off, tr := line.CursorStep(0, false, +1)
	if off != 1 || tr {
		t.Fatalf("step right from 0: got (%d, %v)", off, tr)
	}
	off, tr = line.CursorStep(2, false, +1)
	if off != 2 || !tr {
		t.Fatalf("step right from 2: got (%d, %v), want trailing after c", off, tr)
	}
	// At the visual edges the input comes back unchanged.
	if off, tr = line.CursorStep(3, false, +1); off != 3 || tr {
		t.Fatalf("step right at end: got (%d, %v)", off, tr)
	}
	if off, tr = line.CursorStep(0, false, -1); off != 0 || tr {
		t.Fatalf("step left at start: got (%d, %v)", off, tr)
	}
}

func TestCursorStepRTL(t *testing.T) {
	line := shapeLTR("שש")
	// Logical start is the visual right edge; stepping visually left
	// advances logically.
	off, tr := line.CursorStep(0, false, -1)
	if off != 0 || !tr {
		t.Fatalf("step left from 0: got (%d, %v), want (0, true)", off, tr)
	}
	// Trailing input resolves to the following boundary first.
	off, tr = line.CursorStep(0, true, -1)
	if off != 2 || !tr {
		t.Fatalf("step left from after first char: got (%d, %v), want (2, true)", off, tr)
	}
	// Logical end is the visual left edge.
	if off, tr = line.CursorStep(4, false, -1); off != 4 || tr {
		t.Fatalf("step left at logical end: got (%d, %v)", off, tr)
	}
}

func TestCursorStepEmpty(t *testing.T) {
	line := shapeLTR("")
	if off, tr := line.CursorStep(0, false, +1); off != 0 || tr {
		t.Fatalf("empty line step: got (%d, %v)", off, tr)
	}
	if x := line.IndexToX(0); x != 0 {
		t.Fatalf("empty line IndexToX = %d", x)
	}
}
