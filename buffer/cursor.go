package buffer

// Cursor is a logical text position: line index plus character column.
type Cursor struct {
	Line, Col int
}

func (c Cursor) Before(other Cursor) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Col < other.Col
}

func (c Cursor) Equal(other Cursor) bool {
	return c.Line == other.Line && c.Col == other.Col
}

// Selection is an anchored range: Anchor stays where the selection began,
// Head follows the cursor. Anchor may come after Head.
type Selection struct {
	Anchor, Head Cursor
}

// Bounds returns the selection endpoints in document order.
func (s Selection) Bounds() (start, end Cursor) {
	if s.Anchor.Before(s.Head) {
		return s.Anchor, s.Head
	}
	return s.Head, s.Anchor
}

func (s Selection) Empty() bool {
	return s.Anchor.Equal(s.Head)
}

// Contains reports whether c falls inside the selection, endpoints included.
func (s Selection) Contains(c Cursor) bool {
	start, end := s.Bounds()
	return !c.Before(start) && !end.Before(c)
}
