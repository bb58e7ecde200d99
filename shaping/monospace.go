package shaping

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/bidi"

	"vised/textdir"
	"vised/textenc"
)

// Monospace shapes text in terminal cell units: every grapheme cluster
// advances by its cell width. Bidirectional runs are reordered with a
// single-level approximation (strong characters form runs, digits stay
// left-to-right, neutrals take the paragraph direction); full Unicode
// Bidirectional Algorithm resolution is deliberately out of scope here.
type Monospace struct{}

func (Monospace) Shape(text string, width int, align Alignment) Line {
	cells := splitCells(text)
	total := 0
	for i := range cells {
		total += cells[i].Width
	}

	origin := 0
	if align == AlignRight && width > total {
		origin = width - total
	}

	visual := orderVisual(cells, textdir.Detect(text) == textdir.RTL)

	x := origin
	for _, ci := range visual {
		cells[ci].X = x
		x += cells[ci].Width
	}

	return &monoLine{text: text, cells: cells, visual: visual, width: total, origin: origin}
}

// splitCells breaks text into grapheme clusters with widths and directions.
func splitCells(text string) []Cell {
	var cells []Cell
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		start, end := g.Positions()
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if w < 1 {
			w = 1 // tabs and control pictures still occupy a cell
		}
		cells = append(cells, Cell{
			Off:   start,
			Size:  end - start,
			Text:  cluster,
			Width: w,
			RTL:   clusterRTL(cluster),
		})
	}
	return cells
}

// clusterRTL classifies a cluster by its first character's bidi class.
// The zero value (LTR) stands in for weak and neutral classes; run
// resolution fixes those up against the paragraph direction.
func clusterRTL(cluster string) bool {
	p, _ := bidi.LookupString(cluster)
	switch p.Class() {
	case bidi.R, bidi.AL, bidi.RLE, bidi.RLO:
		return true
	}
	return false
}

func clusterStrong(cluster string) bool {
	p, _ := bidi.LookupString(cluster)
	switch p.Class() {
	case bidi.L, bidi.LRE, bidi.LRO, bidi.R, bidi.AL, bidi.RLE, bidi.RLO:
		return true
	case bidi.EN, bidi.AN:
		// Digits display left-to-right in every paragraph direction.
		return true
	}
	return false
}

// orderVisual returns cell indices in left-to-right visual order. Runs of
// same-direction cells keep their internal order for LTR and reverse for
// RTL; in an RTL paragraph the run sequence itself is reversed.
func orderVisual(cells []Cell, paraRTL bool) []int {
	n := len(cells)
	visual := make([]int, 0, n)
	if n == 0 {
		return visual
	}

	// Resolve weak/neutral cells to the paragraph direction.
	resolved := make([]bool, n)
	for i := range cells {
		if clusterStrong(cells[i].Text) {
			resolved[i] = cells[i].RTL
		} else {
			resolved[i] = paraRTL
		}
		cells[i].RTL = resolved[i]
	}

	// Split into direction runs.
	type run struct{ start, end int }
	var runs []run
	start := 0
	for i := 1; i <= n; i++ {
		if i == n || resolved[i] != resolved[start] {
			runs = append(runs, run{start, i})
			start = i
		}
	}

	appendRun := func(r run) {
		if resolved[r.start] {
			for i := r.end - 1; i >= r.start; i-- {
				visual = append(visual, i)
			}
		} else {
			for i := r.start; i < r.end; i++ {
				visual = append(visual, i)
			}
		}
	}

	if paraRTL {
		for i := len(runs) - 1; i >= 0; i-- {
			appendRun(runs[i])
		}
	} else {
		for _, r := range runs {
			appendRun(r)
		}
	}
	return visual
}

type monoLine struct {
	text   string
	cells  []Cell // logical order, X assigned
	visual []int  // cell indices in visual order
	width  int
	origin int
}

func (m *monoLine) Width() int { return m.width }

func (m *monoLine) Cells() []Cell { return m.cells }

// stopX returns the x coordinate of cursor stop i. Stops sit at cluster
// edges in visual order; a line of n clusters has n+1 stops.
func (m *monoLine) stopX(i int) int {
	x := m.origin
	for v := 0; v < i && v < len(m.visual); v++ {
		x += m.cells[m.visual[v]].Width
	}
	return x
}

// stopOffset returns the logical byte boundary that cursor stop i refers
// to. The left edge of an LTR cluster is its logical start; the left edge
// of an RTL cluster is its logical end, and symmetrically for right edges.
func (m *monoLine) stopOffset(i int) int {
	n := len(m.visual)
	if n == 0 {
		return 0
	}
	if i < n {
		c := m.cells[m.visual[i]]
		if c.RTL {
			return c.Off + c.Size
		}
		return c.Off
	}
	c := m.cells[m.visual[n-1]]
	if c.RTL {
		return c.Off
	}
	return c.Off + c.Size
}

// stopFor locates the cursor stop for a logical byte offset. Offsets inside
// a cluster round down to the cluster's logical leading edge.
func (m *monoLine) stopFor(off int) int {
	n := len(m.visual)
	for i := 0; i <= n; i++ {
		if m.stopOffset(i) == off {
			return i
		}
	}
	// Not a boundary: find the cluster containing off and use its logical
	// leading edge.
	for v, ci := range m.visual {
		c := m.cells[ci]
		if off >= c.Off && off < c.Off+c.Size {
			if c.RTL {
				return v + 1
			}
			return v
		}
	}
	if n > 0 && off > 0 {
		return n
	}
	return 0
}

func (m *monoLine) IndexToX(off int) int {
	if len(m.visual) == 0 {
		return m.origin
	}
	if off < 0 {
		off = 0
	}
	if off > len(m.text) {
		off = len(m.text)
	}
	return m.stopX(m.stopFor(off))
}

func (m *monoLine) XToIndex(x int) (int, bool) {
	n := len(m.visual)
	if n == 0 {
		return 0, false
	}
	if x < m.stopX(0) {
		c := m.cells[m.visual[0]]
		return c.Off, c.RTL
	}
	if x >= m.stopX(n) {
		c := m.cells[m.visual[n-1]]
		return c.Off, !c.RTL
	}
	for v := 0; v < n; v++ {
		c := m.cells[m.visual[v]]
		left := m.stopX(v)
		if x >= left && x < left+c.Width {
			pastMid := (x - left) >= (c.Width+1)/2
			if c.RTL {
				return c.Off, !pastMid
			}
			return c.Off, pastMid
		}
	}
	c := m.cells[m.visual[n-1]]
	return c.Off, !c.RTL
}

func (m *monoLine) CursorStep(off int, trailing bool, dir int) (int, bool) {
	n := len(m.visual)
	if n == 0 {
		return off, trailing
	}
	resolved := off
	if trailing {
		resolved += textenc.CharLenAt(m.text, off)
	}
	idx := m.stopFor(resolved)
	next := idx + dir
	// Adjacent stops at a run boundary can share a byte offset; skip past
	// duplicates so a step always changes the logical position.
	for next >= 0 && next <= n && m.stopOffset(next) == resolved {
		next += dir
	}
	if next < 0 || next > n {
		return off, trailing
	}

	target := m.stopOffset(next)
	owner := m.cells[m.visual[minInt(next, n-1)]]
	if target == owner.Off+owner.Size && owner.Size == textenc.CharLenAt(m.text, owner.Off) {
		// Report the position after the owning character the way a
		// shaping engine does, so callers exercise trailing resolution.
		return owner.Off, true
	}
	return target, false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
