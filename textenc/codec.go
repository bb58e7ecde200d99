// Package textenc converts between character columns and UTF-8 byte offsets.
//
// The editor addresses text by character column (rune index) while the
// shaping engine works in byte offsets; every mapping layer funnels through
// these conversions.
package textenc

import "unicode/utf8"

// RuneCount returns the number of characters in s.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// CharToByteIndex returns the byte offset of the col-th character of text,
// which equals the byte length of the UTF-8 encoding of the first col
// characters. col values past the end of text clamp to len(text).
func CharToByteIndex(text string, col int) int {
	if col <= 0 {
		return 0
	}
	// Pure single-byte content: columns and byte offsets coincide.
	if len(text) == utf8.RuneCountInString(text) {
		if col > len(text) {
			return len(text)
		}
		return col
	}
	n := 0
	for i := range text {
		if n == col {
			return i
		}
		n++
	}
	return len(text)
}

// ByteToCharIndex returns the character column for a byte offset. An offset
// falling strictly inside a multi-byte character rounds down to the nearest
// character boundary at or before it; offsets outside [0, len(text)] clamp.
func ByteToCharIndex(text string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(text) {
		return utf8.RuneCountInString(text)
	}
	if len(text) == utf8.RuneCountInString(text) {
		return off
	}
	col := 0
	for i := range text {
		if i >= off {
			if i == off {
				return col
			}
			return col - 1
		}
		col++
	}
	// off lands inside the final character's encoding.
	return col - 1
}

// CharLen reports the encoded byte length of the UTF-8 character whose
// leading byte is b. Continuation and invalid bytes report 1 so that a scan
// always advances.
func CharLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// CharLenAt reports the byte length of the character starting at off,
// clamped to the end of text. Offsets at or past the end report 0.
func CharLenAt(text string, off int) int {
	if off < 0 || off >= len(text) {
		return 0
	}
	n := CharLen(text[off])
	if off+n > len(text) {
		return len(text) - off
	}
	return n
}
