package layout

import (
	"vised/shaping"
	"vised/textenc"
)

// VisualStep moves the cursor one grapheme visually within its logical
// line; dir is -1 for left, +1 for right. The returned flag is false when
// the cursor is already at the line's visual edge, in which case the column
// is returned unchanged.
func (e *Engine) VisualStep(line, col, dir int) (int, bool) {
	text := e.buf.Line(line)
	off := textenc.CharToByteIndex(text, col)

	// Step over the whole logical line, unconstrained: visual order within
	// a line does not depend on where soft wrap cuts it.
	shaped := e.shaper.Shape(text, 0, shaping.AlignLeft)
	newOff, trailing := shaped.CursorStep(off, false, dir)
	if trailing {
		newOff += textenc.CharLenAt(text, newOff)
	}
	if newOff == off {
		return col, false
	}
	return textenc.ByteToCharIndex(text, newOff), true
}

// MoveCursor applies the horizontal arrow-key policy: an active selection
// collapses to its left or right bound unless extending; otherwise the
// cursor steps visually, crossing to the adjacent logical line at a visual
// edge. At the buffer's first or last line the edge step is a no-op.
func (e *Engine) MoveCursor(buf Buffer, dir int, extend bool) {
	if !extend && buf.HasSelection() {
		sl, sc, el, ec := buf.SelectionBounds()
		if dir < 0 {
			buf.SetCursor(sl, sc, false)
		} else {
			buf.SetCursor(el, ec, false)
		}
		return
	}

	line, col := buf.CursorPos()
	if newCol, moved := e.VisualStep(line, col, dir); moved {
		buf.SetCursor(line, newCol, extend)
		return
	}

	if dir < 0 {
		if line > 0 {
			prev := line - 1
			buf.SetCursor(prev, textenc.RuneCount(buf.Line(prev)), extend)
		} else if extend {
			// Extending past the visual edge of the first line pins the
			// selection to the document start.
			buf.SetCursor(0, 0, true)
		}
	} else if dir > 0 && line < buf.LineCount()-1 {
		buf.SetCursor(line+1, 0, extend)
	}
}
