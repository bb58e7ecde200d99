package layout

import (
	"vised/shaping"
	"vised/textenc"
)

// VisualPos locates a logical position on screen: the visual row counted
// from the top of the document and the x pixel from the viewport's left
// edge. Callers subtract their scroll offset to get screen coordinates.
type VisualPos struct {
	Row int
	X   int
}

// LogicalToVisual maps a (line, col) position to its visual row and x.
// A column sitting exactly on a wrap boundary belongs to the following
// row, matching where typed text would appear.
func (e *Engine) LogicalToVisual(line, col int) VisualPos {
	row := 0
	for i := 0; i < line && i < e.buf.LineCount(); i++ {
		row += e.VisualLineCount(i)
	}

	text := e.buf.Line(line)
	info := e.LineSegments(line)
	segIdx := len(info.Segments) - 1
	for i, s := range info.Segments {
		if col >= s.Start && col < s.End {
			segIdx = i
			break
		}
	}
	seg := info.Segments[segIdx]

	shaped, segText := e.shapeSegment(text, seg)
	off := textenc.CharToByteIndex(segText, col-seg.Start)
	return VisualPos{
		Row: row + segIdx,
		X:   e.origin() + shaped.IndexToX(off),
	}
}

// LogicalToPixelSpan returns the x extent of a column range within its
// visual row, for drawing highlights. The range must not cross a wrap
// boundary; it is clipped to the segment containing colStart. x1 and x2
// are ordered left to right even when the shaped text is RTL.
func (e *Engine) LogicalToPixelSpan(line, colStart, colEnd int) (x1, x2 int) {
	text := e.buf.Line(line)
	info := e.LineSegments(line)
	segIdx := len(info.Segments) - 1
	for i, s := range info.Segments {
		if colStart >= s.Start && colStart < s.End {
			segIdx = i
			break
		}
	}
	seg := info.Segments[segIdx]
	if colEnd > seg.End {
		colEnd = seg.End
	}
	if colEnd < colStart {
		colEnd = colStart
	}

	shaped, segText := e.shapeSegment(text, seg)
	a := e.origin() + shaped.IndexToX(textenc.CharToByteIndex(segText, colStart-seg.Start))
	b := e.origin() + shaped.IndexToX(textenc.CharToByteIndex(segText, colEnd-seg.Start))
	if a > b {
		a, b = b, a
	}
	return a, b
}

// PixelToLogical maps a document-relative pixel position to the nearest
// logical (line, col). y below the last visual row resolves to the end of
// the last line; x past a row's text resolves to the row's trailing edge.
func (e *Engine) PixelToLogical(xPx, yPx int) (line, col int) {
	if e.buf.LineCount() == 0 {
		return 0, 0
	}

	row := 0
	if yPx > 0 {
		row = yPx / e.cfg.LineHeight
	}

	acc := 0
	for i := 0; i < e.buf.LineCount(); i++ {
		n := e.VisualLineCount(i)
		if row < acc+n {
			return i, e.columnAt(i, row-acc, xPx)
		}
		acc += n
	}

	last := e.buf.LineCount() - 1
	return last, textenc.RuneCount(e.buf.Line(last))
}

// columnAt hit-tests one visual row of a line at x.
func (e *Engine) columnAt(line, rowInLine, xPx int) int {
	text := e.buf.Line(line)
	info := e.LineSegments(line)
	if rowInLine < 0 {
		rowInLine = 0
	}
	if rowInLine >= len(info.Segments) {
		rowInLine = len(info.Segments) - 1
	}
	seg := info.Segments[rowInLine]

	shaped, segText := e.shapeSegment(text, seg)
	off, trailing := shaped.XToIndex(xPx - e.origin())
	if trailing {
		off += textenc.CharLenAt(segText, off)
	}
	return seg.Start + textenc.ByteToCharIndex(segText, off)
}

// RowCells shapes one visual row and returns its grapheme cells with
// viewport-relative x coordinates, plus the column range the row covers.
// Renderers draw from these without re-deriving wrap or bidi order.
func (e *Engine) RowCells(line, rowInLine int) ([]shaping.Cell, Segment) {
	text := e.buf.Line(line)
	info := e.LineSegments(line)
	if rowInLine < 0 || rowInLine >= len(info.Segments) {
		return nil, Segment{}
	}
	seg := info.Segments[rowInLine]

	shaped, _ := e.shapeSegment(text, seg)
	cells := shaped.Cells()
	out := make([]shaping.Cell, len(cells))
	for i, c := range cells {
		c.X += e.origin()
		out[i] = c
	}
	return out, seg
}
