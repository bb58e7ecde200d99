// Package textdir classifies the paragraph direction of logical lines.
package textdir

import "golang.org/x/text/unicode/bidi"

// Direction is the dominant direction of a whole logical line. It drives
// alignment and which average-glyph-width estimate applies.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "RTL"
	}
	return "LTR"
}

// Detect scans text in logical order and returns the direction implied by
// the first character with a strong bidirectional class. Lines without any
// strong character (digits, punctuation, whitespace) default to LTR.
func Detect(text string) Direction {
	for i := 0; i < len(text); {
		p, sz := bidi.LookupString(text[i:])
		switch p.Class() {
		case bidi.L, bidi.LRE, bidi.LRO:
			return LTR
		case bidi.R, bidi.AL, bidi.RLE, bidi.RLO:
			return RTL
		}
		if sz < 1 {
			sz = 1
		}
		i += sz
	}
	return LTR
}
