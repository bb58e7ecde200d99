// Package shaping defines the measurement capability the layout engine
// consumes: shape a string, then query pixel extents, map byte offsets to x
// coordinates and back, and step a cursor one visual position. Implementations
// must not require a drawing surface.
package shaping

// Alignment selects where a shaped line sits inside its layout width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Engine shapes one logical line (or line segment) at a time.
type Engine interface {
	// Shape lays out text inside width pixels with the given alignment.
	// width <= 0 means unconstrained (the line's natural advance width).
	Shape(text string, width int, align Alignment) Line
}

// Line is a shaped line. All x coordinates are relative to the layout's
// left edge and account for alignment.
type Line interface {
	// Width returns the advance width of the shaped text.
	Width() int

	// IndexToX returns the x coordinate of the cursor at a byte offset.
	// Offsets inside a multi-byte character resolve to that character's
	// leading edge.
	IndexToX(off int) int

	// XToIndex returns the byte offset of the grapheme under x. The
	// trailing flag reports that the position refers to the spot
	// immediately after that grapheme in logical order.
	XToIndex(x int) (off int, trailing bool)

	// CursorStep moves a cursor one grapheme in visual order; dir is -1
	// for visually left, +1 for visually right. The returned offset equals
	// the resolved input offset when the cursor is already at a visual
	// edge. A true trailing flag means the result refers to the position
	// after the character at the returned offset.
	CursorStep(off int, trailing bool, dir int) (int, bool)

	// Cells returns the shaped grapheme clusters in logical order with
	// their assigned visual positions, for renderers that place glyphs
	// themselves.
	Cells() []Cell
}

// Cell is one shaped grapheme cluster.
type Cell struct {
	Off   int    // byte offset of the cluster in the source text
	Size  int    // byte length of the cluster
	Text  string // the cluster itself
	X     int    // visual x of the cluster's left edge
	Width int    // advance width
	RTL   bool   // cluster belongs to a right-to-left run
}
