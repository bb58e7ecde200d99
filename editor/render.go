package editor

import (
	"strconv"
	"strings"
	"time"

	"vised/buffer"
	"vised/config"
	"vised/highlight"
	"vised/textdir"
	"vised/textenc"

	"github.com/gdamore/tcell/v2"
)

const statusMessageDuration = 3 * time.Second

// gutterWidth is the line-number column width for the current buffer.
func (e *Editor) gutterWidth() int {
	return len(strconv.Itoa(e.buf.LineCount())) + 1
}

func (e *Editor) render() {
	theme := e.cfg.GetTheme()
	defaultStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	e.screen.SetStyle(defaultStyle)
	e.screen.Clear()

	screenW, screenH := e.screen.Size()
	textH := screenH - 1
	if textH < 1 {
		textH = 1
	}

	e.layout.SetViewport(screenW, 1, 1)
	e.layout.SetOrigin(e.gutterWidth(), 1)

	styled := e.highlight.Lines(strings.Join(e.buf.Lines, "\n"), e.buf.Language)

	curLine, curCol := e.buf.CursorPos()
	selStart, selEnd, hasSel := e.selectionRange()

	line, rowInLine := e.rowToLine(e.scrollRow)
	for y := 0; y < textH && line < e.buf.LineCount(); y++ {
		e.renderRow(y, line, rowInLine, styled, theme, defaultStyle, curLine, selStart, selEnd, hasSel)
		rowInLine++
		if rowInLine >= e.layout.VisualLineCount(line) {
			line++
			rowInLine = 0
		}
	}

	e.renderScrollbar(screenW-1, textH, theme)

	// Cursor
	pos := e.layout.LogicalToVisual(curLine, curCol)
	if sy := pos.Row - e.scrollRow; sy >= 0 && sy < textH && pos.X < screenW {
		e.screen.ShowCursor(pos.X, sy)
	} else {
		e.screen.HideCursor()
	}

	e.renderStatusBar(screenW, screenH, curLine, curCol, theme)
}

// rowToLine maps a document visual row to (logical line, row within line).
func (e *Editor) rowToLine(row int) (int, int) {
	acc := 0
	for i := 0; i < e.buf.LineCount(); i++ {
		n := e.layout.VisualLineCount(i)
		if row < acc+n {
			return i, row - acc
		}
		acc += n
	}
	return e.buf.LineCount(), 0
}

func (e *Editor) selectionRange() (start, end buffer.Cursor, ok bool) {
	if !e.buf.HasSelection() {
		return buffer.Cursor{}, buffer.Cursor{}, false
	}
	sl, sc, el, ec := e.buf.SelectionBounds()
	return buffer.Cursor{Line: sl, Col: sc}, buffer.Cursor{Line: el, Col: ec}, true
}

func (e *Editor) renderRow(y, line, rowInLine int, styled []highlight.StyledLine,
	theme *config.ColorScheme, defaultStyle tcell.Style, curLine int,
	selStart, selEnd buffer.Cursor, hasSel bool) {

	// Line number on the first row of each logical line only.
	if rowInLine == 0 {
		numStyle := defaultStyle.Foreground(theme.LineNumber)
		if line == curLine {
			numStyle = defaultStyle.Foreground(theme.LineNumberActive)
		}
		num := strconv.Itoa(line + 1)
		start := e.gutterWidth() - 1 - len(num)
		for i, ch := range num {
			e.screen.SetContent(start+i, y, ch, nil, numStyle)
		}
	}

	lineText := e.buf.Line(line)
	cells, seg := e.layout.RowCells(line, rowInLine)
	segBase := textenc.CharToByteIndex(lineText, seg.Start)

	var byteStyles []tcell.Style
	if line < len(styled) {
		byteStyles = styleBytes(styled[line], lineText, defaultStyle)
	}

	for _, c := range cells {
		style := defaultStyle
		off := segBase + c.Off
		if off < len(byteStyles) {
			style = byteStyles[off]
		}

		col := textenc.ByteToCharIndex(lineText, off)
		if hasSel && inSelection(buffer.Cursor{Line: line, Col: col}, selStart, selEnd) {
			style = style.Background(theme.Selection)
		}

		r := []rune(c.Text)
		if len(r) == 0 || r[0] == '\t' {
			e.screen.SetContent(c.X, y, ' ', nil, style)
			continue
		}
		e.screen.SetContent(c.X, y, r[0], r[1:], style)
	}
}

// styleBytes expands a styled line into one style per byte of line text.
func styleBytes(sl highlight.StyledLine, lineText string, def tcell.Style) []tcell.Style {
	out := make([]tcell.Style, len(lineText))
	for i := range out {
		out[i] = def
	}
	off := 0
	for _, tok := range sl.Tokens {
		for i := 0; i < len(tok.Text) && off < len(out); i++ {
			out[off] = tok.Style
			off++
		}
	}
	return out
}

// inSelection reports start <= c < end.
func inSelection(c, start, end buffer.Cursor) bool {
	if c.Before(start) {
		return false
	}
	return c.Before(end)
}

func (e *Editor) renderScrollbar(x, textH int, theme *config.ColorScheme) {
	total := e.layout.TotalVisualLines()
	if total <= textH {
		return
	}

	style := tcell.StyleDefault.Foreground(theme.Scrollbar).Background(theme.Background)
	thumbH := textH * textH / total
	if thumbH < 1 {
		thumbH = 1
	}
	thumbY := e.scrollRow * (textH - thumbH) / (total - textH)

	for y := 0; y < textH; y++ {
		ch := '│'
		if y >= thumbY && y < thumbY+thumbH {
			ch = '█'
		}
		e.screen.SetContent(x, y, ch, nil, style)
	}
}

func (e *Editor) renderStatusBar(screenW, screenH, curLine, curCol int, theme *config.ColorScheme) {
	s := e.statusBar
	s.Theme = theme
	s.Filename = e.buf.Path
	s.Dirty = e.buf.Dirty
	s.Line = curLine
	s.Col = curCol
	s.Language = e.buf.Language
	s.Encoding = e.buf.Encoding
	s.LineEnd = e.buf.LineEnding
	s.Direction = textdir.Detect(e.buf.Line(curLine)).String()
	s.Wrap = e.layout.WrapEnabled()

	s.SelChars, s.SelLines = 0, 0
	if e.buf.HasSelection() {
		s.SelChars = textenc.RuneCount(e.buf.SelectedText())
		sl, _, el, _ := e.buf.SelectionBounds()
		s.SelLines = el - sl + 1
	}

	s.Message = ""
	if e.statusMessage != "" && time.Since(e.statusMessageTime) < statusMessageDuration {
		s.Message = e.statusMessage
		s.IsError = e.statusMessageIsError
	} else if e.externallyModified {
		s.Message = "File changed on disk; save to overwrite"
		s.IsError = true
	}

	s.Render(e.screen, 0, screenH-1, screenW)
}
