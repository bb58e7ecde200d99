package editor

import (
	"os"
	"path/filepath"
	"testing"

	"vised/config"
	"vised/layout"
	"vised/shaping"

	"github.com/gdamore/tcell/v2"
)

func newTestEditor(t *testing.T, content string) *Editor {
	t.Helper()

	scr := tcell.NewSimulationScreen("UTF-8")
	if err := scr.Init(); err != nil {
		t.Fatal(err)
	}
	scr.SetSize(40, 10)

	path := filepath.Join(t.TempDir(), "test.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	e := New(config.Default())
	e.screen = scr
	if err := e.openFile(path); err != nil {
		t.Fatal(err)
	}

	lcfg := layout.DefaultConfig()
	lcfg.ViewportWidth = 40
	lcfg.LTRCharWidth = 1
	lcfg.RTLCharWidth = 1
	lcfg.LineHeight = 1
	e.layout = layout.New(e.buf, shaping.Monospace{}, lcfg)
	return e
}

func cellAt(t *testing.T, scr tcell.Screen, x, y int) rune {
	t.Helper()
	sim := scr.(tcell.SimulationScreen)
	cells, w, _ := sim.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func TestRenderShowsContent(t *testing.T) {
	e := newTestEditor(t, "hello\n")
	e.render()
	e.screen.Show()

	// Gutter is 2 cells plus 1 padding, so text starts at x=3.
	want := "hello"
	for i, ch := range want {
		if got := cellAt(t, e.screen, 3+i, 0); got != ch {
			t.Fatalf("cell (%d,0) = %q, want %q", 3+i, got, ch)
		}
	}
	if got := cellAt(t, e.screen, 2, 0); got != '1' {
		t.Fatalf("line number cell = %q, want '1'", got)
	}
}

func TestRenderRTLRightAligned(t *testing.T) {
	e := newTestEditor(t, "שלום\n")
	e.render()
	e.screen.Show()

	// Text area is 37 cells wide starting at x=3; the RTL line right-aligns
	// with its logically first character in the rightmost cell.
	if got := cellAt(t, e.screen, 39, 0); got != 'ש' {
		t.Fatalf("rightmost cell = %q, want ש", got)
	}
	if got := cellAt(t, e.screen, 36, 0); got != 'ם' {
		t.Fatalf("cell 36 = %q, want ם", got)
	}
}

func TestArrowLeftInRTLAdvancesLogically(t *testing.T) {
	e := newTestEditor(t, "שלום\n")
	e.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if _, col := e.buf.CursorPos(); col != 1 {
		t.Fatalf("col = %d, want 1", col)
	}
	// At the logical end (visual left edge) another left press crosses no
	// line because there is only one.
	e.buf.SetCursor(0, 4, false)
	e.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if line, col := e.buf.CursorPos(); line != 0 || col != 4 {
		t.Fatalf("cursor = (%d,%d), want (0,4)", line, col)
	}
}

func TestWrapToggleKeepsCursor(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "x"
	}
	e := newTestEditor(t, long+"\n")
	e.buf.SetCursor(0, 50, false)

	if got := e.layout.TotalVisualLines(); got != 2 {
		t.Fatalf("wrapped rows = %d, want 2", got)
	}
	e.toggleWrap()
	if got := e.layout.TotalVisualLines(); got != 1 {
		t.Fatalf("unwrapped rows = %d, want 1", got)
	}
	if _, col := e.buf.CursorPos(); col != 50 {
		t.Fatalf("cursor col = %d after toggle, want 50", col)
	}
	e.toggleWrap()
	if got := e.layout.TotalVisualLines(); got != 2 {
		t.Fatalf("re-wrapped rows = %d, want 2", got)
	}
}

func TestVerticalMovementAcrossWrap(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "x"
	}
	e := newTestEditor(t, long+"\n")
	e.buf.SetCursor(0, 3, false)

	e.moveVertical(+1, false)
	if _, col := e.buf.CursorPos(); col != 43 {
		t.Fatalf("col after down = %d, want 43 (same x on next row)", col)
	}
	e.moveVertical(-1, false)
	if _, col := e.buf.CursorPos(); col != 3 {
		t.Fatalf("col after up = %d, want 3", col)
	}
}

func TestClickSetsCursor(t *testing.T) {
	e := newTestEditor(t, "hello\nworld\n")
	e.render()

	ev := tcell.NewEventMouse(5, 1, tcell.Button1, tcell.ModNone)
	e.handleMouse(ev)
	if line, col := e.buf.CursorPos(); line != 1 || col != 2 {
		t.Fatalf("cursor = (%d,%d), want (1,2)", line, col)
	}

	// Click below the content lands at the end of the last line.
	e.mouseDown = false
	e.handleMouse(tcell.NewEventMouse(0, 8, tcell.Button1, tcell.ModNone))
	if line, col := e.buf.CursorPos(); line != 1 || col != 5 {
		t.Fatalf("cursor = (%d,%d), want (1,5)", line, col)
	}
}

func TestTypingUpdatesBufferAndLayout(t *testing.T) {
	e := newTestEditor(t, "ab\n")
	e.buf.SetCursor(0, 1, false)
	e.handleKey(tcell.NewEventKey(tcell.KeyRune, 'ש', tcell.ModNone))
	if e.buf.Line(0) != "aשb" {
		t.Fatalf("line = %q", e.buf.Line(0))
	}
	if _, col := e.buf.CursorPos(); col != 2 {
		t.Fatalf("col = %d, want 2", col)
	}

	e.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if e.buf.LineCount() != 2 {
		t.Fatalf("lines = %d, want 2", e.buf.LineCount())
	}
	if got := e.layout.TotalVisualLines(); got != 2 {
		t.Fatalf("visual lines = %d, want 2", got)
	}
}

func TestSelectionCopyCutPaste(t *testing.T) {
	e := newTestEditor(t, "hello\n")
	e.buf.SetCursor(0, 1, false)
	e.buf.SetCursor(0, 4, true)

	e.cutSelection()
	if e.buf.Line(0) != "ho" {
		t.Fatalf("line after cut = %q", e.buf.Line(0))
	}

	e.paste()
	if e.buf.Line(0) != "hello" {
		t.Fatalf("line after paste = %q", e.buf.Line(0))
	}
}

func TestDirtyQuitNeedsConfirm(t *testing.T) {
	e := newTestEditor(t, "x\n")
	e.buf.InsertRune('y')
	e.handleKey(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone))
	if e.quit {
		t.Fatal("quit on first Ctrl+Q with unsaved changes")
	}
	e.handleKey(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone))
	if !e.quit {
		t.Fatal("second Ctrl+Q did not quit")
	}
}
