// Package layout maps logical buffer lines to visual rows and pixels: it
// computes and caches line wrap, steps the cursor through bidirectional text
// in visual order, and converts between logical columns and pixel
// coordinates for hit-testing and highlight drawing.
package layout

import (
	"vised/shaping"
	"vised/textdir"
	"vised/textenc"
)

// Accessor is the read-only view of the text buffer the engine consumes.
// The engine never owns line content, only derived caches keyed by index.
type Accessor interface {
	Line(i int) string
	LineCount() int
}

// Buffer extends Accessor with the cursor and selection state the movement
// policy drives.
type Buffer interface {
	Accessor
	CursorPos() (line, col int)
	SetCursor(line, col int, extend bool)
	HasSelection() bool
	SelectionBounds() (startLine, startCol, endLine, endCol int)
}

// Segment is a contiguous character-column range [Start, End) of one
// logical line that renders as a single visual row.
type Segment struct {
	Start, End int
}

// WrapInfo describes how one logical line breaks into visual rows.
// Segments are in logical order, non-overlapping, contiguous, and cover
// exactly [0, lineLen).
type WrapInfo struct {
	Line     int
	Segments []Segment
}

func (w WrapInfo) Wrapped() bool { return len(w.Segments) > 1 }

// Config carries the engine's construction-time settings. Every field has
// a named default; nothing is materialized lazily.
type Config struct {
	ViewportWidth int  // text area width in pixels
	LTRCharWidth  int  // average glyph advance for LTR-majority content
	RTLCharWidth  int  // average glyph advance for RTL-majority content
	LineHeight    int  // height of one visual row in pixels
	GutterWidth   int  // line-number gutter width in pixels
	Padding       int  // fixed padding between gutter and text
	CacheSize     int  // max cached WrapInfo entries
	WrapEnabled   bool // soft wrap on/off
}

// DefaultConfig mirrors the defaults of the rendering layer before it has
// reported real measurements.
func DefaultConfig() Config {
	return Config{
		ViewportWidth: 800,
		LTRCharWidth:  10,
		RTLCharWidth:  10,
		LineHeight:    20,
		GutterWidth:   0,
		Padding:       2,
		CacheSize:     500,
		WrapEnabled:   true,
	}
}

// minWrapChars is the floor of the per-row character limit; even a sliver
// of a viewport keeps a readable number of characters per row.
const minWrapChars = 20

// Engine owns viewport metrics and the wrap cache. It performs no drawing;
// renderers query it and stay stateless with respect to wrap computation.
type Engine struct {
	buf    Accessor
	shaper shaping.Engine
	cfg    Config
	cache  *wrapCache

	recomputes int // wrap computations since construction, for tests
}

func New(buf Accessor, shaper shaping.Engine, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = def.ViewportWidth
	}
	if cfg.LTRCharWidth <= 0 {
		cfg.LTRCharWidth = def.LTRCharWidth
	}
	if cfg.RTLCharWidth <= 0 {
		cfg.RTLCharWidth = def.RTLCharWidth
	}
	if cfg.LineHeight <= 0 {
		cfg.LineHeight = def.LineHeight
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
	}
	return &Engine{
		buf:    buf,
		shaper: shaper,
		cfg:    cfg,
		cache:  newWrapCache(cfg.CacheSize),
	}
}

// Rebind swaps the engine onto a new buffer and drops all cached wrap.
func (e *Engine) Rebind(buf Accessor) {
	e.buf = buf
	e.InvalidateAll()
}

// SetViewport updates the viewport width and the per-direction average
// glyph widths. Any change invalidates the whole cache: wrap results depend
// on all three.
func (e *Engine) SetViewport(widthPx, ltrCharW, rtlCharW int) {
	if widthPx < 1 {
		widthPx = 1
	}
	if ltrCharW < 1 {
		ltrCharW = 1
	}
	if rtlCharW < 1 {
		rtlCharW = 1
	}
	if widthPx == e.cfg.ViewportWidth && ltrCharW == e.cfg.LTRCharWidth && rtlCharW == e.cfg.RTLCharWidth {
		return
	}
	e.cfg.ViewportWidth = widthPx
	e.cfg.LTRCharWidth = ltrCharW
	e.cfg.RTLCharWidth = rtlCharW
	e.InvalidateAll()
}

// SetOrigin updates the horizontal layout origin (gutter width plus fixed
// padding). The origin does not participate in wrap computation, so the
// cache survives.
func (e *Engine) SetOrigin(gutterW, padding int) {
	e.cfg.GutterWidth = gutterW
	e.cfg.Padding = padding
}

// SetWrapEnabled toggles soft wrap. With wrap disabled every line is a
// single segment.
func (e *Engine) SetWrapEnabled(on bool) {
	if on == e.cfg.WrapEnabled {
		return
	}
	e.cfg.WrapEnabled = on
	e.InvalidateAll()
}

func (e *Engine) WrapEnabled() bool { return e.cfg.WrapEnabled }

func (e *Engine) LineHeight() int { return e.cfg.LineHeight }

// InvalidateAll clears the wrap cache. Call on viewport resize, metric
// change, wrap toggle, or full buffer reload.
func (e *Engine) InvalidateAll() {
	e.cache.clear()
}

// InvalidateLine drops one cached entry. Callers must invoke this on every
// mutation of that line's text.
func (e *Engine) InvalidateLine(line int) {
	e.cache.remove(line)
}

// wrapLimit is the per-row character limit. The LTR width estimate sizes
// every line, RTL runs included: exact per-glyph advances are the shaping
// engine's job at render time, and one estimate keeps resize recomputation
// O(1) per line instead of a full shaping pass.
func (e *Engine) wrapLimit() int {
	limit := e.cfg.ViewportWidth / e.cfg.LTRCharWidth
	if limit < minWrapChars {
		limit = minWrapChars
	}
	return limit
}

// LineSegments returns the wrap of one logical line, computing and caching
// it on first query.
func (e *Engine) LineSegments(line int) WrapInfo {
	if info, ok := e.cache.get(line); ok {
		return info
	}
	info := WrapInfo{Line: line, Segments: e.computeSegments(e.buf.Line(line))}
	e.recomputes++
	e.cache.put(line, info)
	return info
}

func (e *Engine) computeSegments(text string) []Segment {
	n := textenc.RuneCount(text)
	if !e.cfg.WrapEnabled {
		return []Segment{{0, n}}
	}
	return wrapSegments(n, e.wrapLimit())
}

// wrapSegments hard-wraps a line of lineLen characters into rows of at most
// limit characters, cutting exactly at the limit boundary. No word-boundary
// awareness: a token longer than limit splits mid-token.
func wrapSegments(lineLen, limit int) []Segment {
	if limit < 1 {
		limit = 1
	}
	if lineLen <= limit {
		return []Segment{{0, lineLen}}
	}
	segs := make([]Segment, 0, (lineLen+limit-1)/limit)
	for start := 0; start < lineLen; start += limit {
		end := start + limit
		if end > lineLen {
			end = lineLen
		}
		segs = append(segs, Segment{start, end})
	}
	return segs
}

// VisualLineCount returns the number of visual rows of one logical line.
func (e *Engine) VisualLineCount(line int) int {
	if info, ok := e.cache.get(line); ok {
		return len(info.Segments)
	}
	// Derive without disturbing the cache; scroll-range sweeps over a
	// large buffer should not evict the viewport's entries.
	return len(e.computeSegments(e.buf.Line(line)))
}

// TotalVisualLines sums the visual rows of every logical line, for
// scroll-range calculation.
func (e *Engine) TotalVisualLines() int {
	total := 0
	for i := 0; i < e.buf.LineCount(); i++ {
		n := e.VisualLineCount(i)
		if n < 1 {
			n = 1
		}
		total += n
	}
	return total
}

// origin is the fixed horizontal layout origin shared by every paragraph
// direction; alignment of RTL runs happens inside the shaped line.
func (e *Engine) origin() int {
	return e.cfg.GutterWidth + e.cfg.Padding
}

// textWidth is the width available to shaped text inside the viewport.
func (e *Engine) textWidth() int {
	w := e.cfg.ViewportWidth - e.origin()
	if w < 0 {
		w = 0
	}
	return w
}

// shapeSegment shapes one visual segment of a line, aligned by the line's
// paragraph direction: RTL paragraphs are right-aligned, LTR left-aligned.
func (e *Engine) shapeSegment(lineText string, seg Segment) (shaping.Line, string) {
	b1 := textenc.CharToByteIndex(lineText, seg.Start)
	b2 := textenc.CharToByteIndex(lineText, seg.End)
	segText := lineText[b1:b2]

	align := shaping.AlignLeft
	if textdir.Detect(lineText) == textdir.RTL {
		align = shaping.AlignRight
	}
	return e.shaper.Shape(segText, e.textWidth(), align), segText
}
