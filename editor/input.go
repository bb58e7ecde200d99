package editor

import (
	"time"

	"vised/clipboardx"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyCtrlQ {
		e.quitPending = false
	}

	extend := ev.Modifiers()&tcell.ModShift != 0

	// Alt+Z toggles soft wrap, like most GUI editors.
	if ev.Key() == tcell.KeyRune && ev.Rune() == 'z' && ev.Modifiers()&tcell.ModAlt != 0 {
		e.toggleWrap()
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		e.handleQuit()
	case tcell.KeyCtrlS:
		e.saveFile()
	case tcell.KeyCtrlA:
		e.selectAll()
	case tcell.KeyCtrlC:
		e.copySelection()
	case tcell.KeyCtrlX:
		e.cutSelection()
	case tcell.KeyCtrlV:
		e.paste()

	case tcell.KeyLeft:
		e.layout.MoveCursor(e.buf, -1, extend)
		e.ensureCursorVisible()
	case tcell.KeyRight:
		e.layout.MoveCursor(e.buf, +1, extend)
		e.ensureCursorVisible()
	case tcell.KeyUp:
		e.moveVertical(-1, extend)
	case tcell.KeyDown:
		e.moveVertical(+1, extend)
	case tcell.KeyHome:
		line, _ := e.buf.CursorPos()
		e.buf.SetCursor(line, 0, extend)
		e.ensureCursorVisible()
	case tcell.KeyEnd:
		line, _ := e.buf.CursorPos()
		e.buf.SetCursor(line, e.buf.LineLen(line), extend)
		e.ensureCursorVisible()
	case tcell.KeyPgUp:
		e.movePage(-1, extend)
	case tcell.KeyPgDn:
		e.movePage(+1, extend)

	case tcell.KeyEnter:
		before := e.buf.LineCount()
		line, _ := e.buf.CursorPos()
		e.buf.InsertNewline()
		e.afterEdit(before, line)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		before := e.buf.LineCount()
		e.buf.Backspace()
		line, _ := e.buf.CursorPos()
		e.afterEdit(before, line)
	case tcell.KeyDelete:
		e.deleteForward()
	case tcell.KeyTab:
		e.insertTab()

	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return
		}
		before := e.buf.LineCount()
		line, _ := e.buf.CursorPos()
		e.buf.InsertRune(ev.Rune())
		e.afterEdit(before, line)
	}
}

// moveVertical steps one visual row, keeping the cursor's x position. Hit
// testing against the adjacent row handles wrap and bidi alignment in one
// place.
func (e *Editor) moveVertical(dir int, extend bool) {
	line, col := e.buf.CursorPos()
	pos := e.layout.LogicalToVisual(line, col)

	target := pos.Row + dir
	if target < 0 || target >= e.layout.TotalVisualLines() {
		return
	}
	nl, nc := e.layout.PixelToLogical(pos.X, target*e.layout.LineHeight())
	e.buf.SetCursor(nl, nc, extend)
	e.ensureCursorVisible()
}

func (e *Editor) movePage(dir int, extend bool) {
	_, h := e.screen.Size()
	textH := h - 1
	if textH < 1 {
		textH = 1
	}

	line, col := e.buf.CursorPos()
	pos := e.layout.LogicalToVisual(line, col)
	target := pos.Row + dir*textH
	if target < 0 {
		target = 0
	}
	if max := e.layout.TotalVisualLines() - 1; target > max {
		target = max
	}

	nl, nc := e.layout.PixelToLogical(pos.X, target*e.layout.LineHeight())
	e.buf.SetCursor(nl, nc, extend)
	e.scrollBy(dir * textH)
	e.ensureCursorVisible()
}

func (e *Editor) selectAll() {
	last := e.buf.LineCount() - 1
	e.buf.SetCursor(0, 0, false)
	e.buf.SetCursor(last, e.buf.LineLen(last), true)
}

func (e *Editor) copySelection() {
	if !e.buf.HasSelection() {
		return
	}
	if clipboardx.Write(e.buf.SelectedText()) {
		e.setTemporaryMessage("Copied")
	} else {
		e.setTemporaryError("Clipboard unavailable")
	}
}

func (e *Editor) cutSelection() {
	if !e.buf.HasSelection() {
		return
	}
	clipboardx.Write(e.buf.SelectedText())
	before := e.buf.LineCount()
	e.buf.DeleteSelection()
	line, _ := e.buf.CursorPos()
	e.afterEdit(before, line)
}

func (e *Editor) paste() {
	text := clipboardx.Read()
	if text == "" {
		return
	}
	before := e.buf.LineCount()
	line, _ := e.buf.CursorPos()
	e.buf.InsertText(text)
	e.afterEdit(before, line)
}

// deleteForward removes the character after the cursor by stepping over it
// logically and backspacing.
func (e *Editor) deleteForward() {
	if e.buf.HasSelection() {
		before := e.buf.LineCount()
		e.buf.DeleteSelection()
		line, _ := e.buf.CursorPos()
		e.afterEdit(before, line)
		return
	}

	line, col := e.buf.CursorPos()
	if col < e.buf.LineLen(line) {
		e.buf.SetCursor(line, col+1, false)
	} else if line < e.buf.LineCount()-1 {
		e.buf.SetCursor(line+1, 0, false)
	} else {
		return
	}
	before := e.buf.LineCount()
	e.buf.Backspace()
	cl, _ := e.buf.CursorPos()
	e.afterEdit(before, cl)
}

func (e *Editor) insertTab() {
	before := e.buf.LineCount()
	line, _ := e.buf.CursorPos()
	for i := 0; i < e.cfg.TabSize; i++ {
		e.buf.InsertRune(' ')
	}
	e.afterEdit(before, line)
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	mx, my := ev.Position()

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		e.scrollBy(-3)
		return
	case ev.Buttons()&tcell.WheelDown != 0:
		e.scrollBy(3)
		return
	}

	_, h := e.screen.Size()
	if my >= h-1 {
		return // status bar
	}

	docY := (e.scrollRow + my) * e.layout.LineHeight()

	if ev.Buttons()&tcell.Button1 != 0 {
		line, col := e.layout.PixelToLogical(mx, docY)
		// A drag extends from the press point; a fresh press collapses.
		e.buf.SetCursor(line, col, e.mouseDown)
		e.mouseDown = true
		return
	}
	e.mouseDown = false
}

// handleFileChange reacts to watcher events for the open file. Clean
// buffers reload silently; dirty buffers only flag the conflict.
func (e *Editor) handleFileChange(ev *FileWatchEvent) {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if e.buf.Dirty {
		e.externallyModified = true
		return
	}
	// Editors that write via rename fire several events back to back;
	// give the writer a moment to finish.
	time.Sleep(10 * time.Millisecond)
	e.reloadFile()
}
