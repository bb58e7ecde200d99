// Package editor wires the buffer, layout engine, highlighter and terminal
// screen into an interactive editing session.
package editor

import (
	"fmt"
	"time"

	"vised/buffer"
	"vised/config"
	"vised/highlight"
	"vised/layout"
	"vised/shaping"
	"vised/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

type Editor struct {
	screen tcell.Screen
	buf    *buffer.Buffer
	cfg    *config.Config

	layout    *layout.Engine
	statusBar *ui.StatusBar
	highlight *highlight.Highlighter

	scrollRow int // topmost visible visual row

	quit        bool
	quitPending bool // true after first Ctrl+Q with unsaved changes

	mouseDown bool

	fileWatcher *fsnotify.Watcher

	externallyModified bool

	statusMessage        string
	statusMessageTime    time.Time
	statusMessageIsError bool
}

// FileWatchEvent carries file system change notifications to the event loop.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

func New(cfg *config.Config) *Editor {
	return &Editor{
		cfg:       cfg,
		highlight: highlight.New(),
		statusBar: ui.NewStatusBar(),
	}
}

func (e *Editor) Run(path string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.EnablePaste()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
	e.screen = screen

	if err := e.openFile(path); err != nil {
		return err
	}

	lcfg := layout.DefaultConfig()
	// Terminal cells: every unit is one cell, one row.
	w, _ := screen.Size()
	lcfg.ViewportWidth = w
	lcfg.LTRCharWidth = 1
	lcfg.RTLCharWidth = 1
	lcfg.LineHeight = 1
	lcfg.WrapEnabled = e.cfg.WordWrap
	e.layout = layout.New(e.buf, shaping.Monospace{}, lcfg)

	e.startWatching()
	defer e.stopWatching()

	for !e.quit {
		e.render()
		e.screen.Show()

		switch ev := e.screen.PollEvent().(type) {
		case *tcell.EventKey:
			e.handleKey(ev)
		case *tcell.EventMouse:
			e.handleMouse(ev)
		case *tcell.EventPaste:
			// Paste arrives as individual rune events between the
			// start/end markers; nothing to do here.
		case *tcell.EventResize:
			w, _ := e.screen.Size()
			e.layout.SetViewport(w, 1, 1)
			e.screen.Sync()
		case *FileWatchEvent:
			e.handleFileChange(ev)
		}
	}
	return nil
}

func (e *Editor) openFile(path string) error {
	buf, err := buffer.NewBufferFromFile(path, e.cfg.TabSize)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	buf.Language = highlight.DetectLanguage(path)
	e.buf = buf
	return nil
}

func (e *Editor) saveFile() {
	if err := e.buf.Save(); err != nil {
		e.setTemporaryError("Save failed: " + err.Error())
		return
	}
	e.externallyModified = false
	e.setTemporaryMessage("Saved " + e.buf.Path)
}

// reloadFile replaces buffer content from disk, keeping the cursor as close
// to its position as the new content allows.
func (e *Editor) reloadFile() {
	line, col := e.buf.CursorPos()
	fresh, err := buffer.NewBufferFromFile(e.buf.Path, e.cfg.TabSize)
	if err != nil {
		e.setTemporaryError("Reload failed: " + err.Error())
		return
	}
	fresh.Language = e.buf.Language
	e.buf = fresh
	e.buf.SetCursor(line, col, false)
	e.layout.Rebind(e.buf)
	e.externallyModified = false
	e.setTemporaryMessage("Reloaded from disk")
}

func (e *Editor) handleQuit() {
	if e.buf.Dirty && !e.quitPending {
		e.quitPending = true
		e.setTemporaryError("Unsaved changes; Ctrl+Q again to discard")
		return
	}
	e.quit = true
}

// toggleWrap flips soft wrap. The cursor is a logical position, so it stays
// on the same character; only its visual row changes.
func (e *Editor) toggleWrap() {
	on := !e.layout.WrapEnabled()
	e.layout.SetWrapEnabled(on)
	e.cfg.WordWrap = on
	e.ensureCursorVisible()
	if on {
		e.setTemporaryMessage("Word wrap on")
	} else {
		e.setTemporaryMessage("Word wrap off")
	}
}

func (e *Editor) setTemporaryMessage(msg string) {
	e.statusMessage = msg
	e.statusMessageTime = time.Now()
	e.statusMessageIsError = false
}

func (e *Editor) setTemporaryError(msg string) {
	e.statusMessage = msg
	e.statusMessageTime = time.Now()
	e.statusMessageIsError = true
}

// afterEdit refreshes derived state once a mutation went through. Edits
// that change the line count shift every index below them, so the whole
// wrap cache goes; single-line edits drop one entry.
func (e *Editor) afterEdit(linesBefore, editedLine int) {
	if e.buf.LineCount() != linesBefore {
		e.layout.InvalidateAll()
	} else {
		e.layout.InvalidateLine(editedLine)
	}
	e.ensureCursorVisible()
}

// ensureCursorVisible scrolls so the cursor's visual row is on screen.
func (e *Editor) ensureCursorVisible() {
	line, col := e.buf.CursorPos()
	pos := e.layout.LogicalToVisual(line, col)

	_, h := e.screen.Size()
	textH := h - 1 // status bar
	if textH < 1 {
		textH = 1
	}

	if pos.Row < e.scrollRow {
		e.scrollRow = pos.Row
	}
	if pos.Row >= e.scrollRow+textH {
		e.scrollRow = pos.Row - textH + 1
	}
	if e.scrollRow < 0 {
		e.scrollRow = 0
	}
}

func (e *Editor) scrollBy(rows int) {
	e.scrollRow += rows
	max := e.layout.TotalVisualLines() - 1
	if e.scrollRow > max {
		e.scrollRow = max
	}
	if e.scrollRow < 0 {
		e.scrollRow = 0
	}
}
