package buffer

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"vised/textenc"
)

// Buffer holds one open document as a slice of logical lines. Cursor and
// selection columns count characters, not bytes; conversion to byte offsets
// happens at the edit sites via textenc.
type Buffer struct {
	Lines        []string
	Path         string
	Cursor       Cursor
	Selection    *Selection
	Dirty        bool
	Language     string
	ReadOnly     bool
	TabSize      int
	LineEnding   string // "LF" or "CRLF", detected from file, preserved on save
	Encoding     string // UTF-8, UTF-8 BOM, UTF-16 LE/BE, Latin-1
	LastSaveTime time.Time

	savedSnapshot string
}

func NewBuffer(tabSize int) *Buffer {
	return &Buffer{
		Lines:      []string{""},
		TabSize:    tabSize,
		LineEnding: "LF",
		Encoding:   "UTF-8",
	}
}

const maxFileSize = 100 * 1024 * 1024

func NewBufferFromFile(path string, tabSize int) (*Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			b := NewBuffer(tabSize)
			b.Path = path
			return b, nil
		}
		return nil, err
	}

	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large (%d MB), max supported is %d MB",
			info.Size()/(1024*1024), maxFileSize/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Binary detection: null bytes in the first 8KB make the buffer
	// read-only rather than refusing to open.
	checkLen := len(data)
	if checkLen > 8192 {
		checkLen = 8192
	}
	isBinary := false
	for i := 0; i < checkLen; i++ {
		if data[i] == 0 {
			isBinary = true
			break
		}
	}

	encoding := detectEncoding(data)

	lineEnding := "LF"
	if strings.Contains(string(data), "\r\n") {
		lineEnding = "CRLF"
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimRight(content, "\n")
	lines := strings.Split(content, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}

	return &Buffer{
		Lines:         lines,
		Path:          path,
		TabSize:       tabSize,
		ReadOnly:      isBinary,
		LineEnding:    lineEnding,
		Encoding:      encoding,
		savedSnapshot: strings.Join(lines, "\n"),
	}, nil
}

// detectEncoding checks BOM and validates UTF-8 to determine file encoding.
func detectEncoding(data []byte) string {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return "UTF-8 BOM"
	}
	if len(data) >= 2 {
		if data[0] == 0xFF && data[1] == 0xFE {
			return "UTF-16 LE"
		}
		if data[0] == 0xFE && data[1] == 0xFF {
			return "UTF-16 BE"
		}
	}
	if utf8.Valid(data) {
		return "UTF-8"
	}
	return "Latin-1"
}

// Line returns the text of line i, or "" when i is out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.Lines) {
		return ""
	}
	return b.Lines[i]
}

func (b *Buffer) LineCount() int { return len(b.Lines) }

// LineLen returns the character count of line i.
func (b *Buffer) LineLen(i int) int {
	return textenc.RuneCount(b.Line(i))
}

func (b *Buffer) CursorPos() (line, col int) {
	return b.Cursor.Line, b.Cursor.Col
}

// SetCursor moves the cursor to a clamped (line, col). With extend the
// selection anchor stays put (starting a selection if none is active);
// without it any selection collapses.
func (b *Buffer) SetCursor(line, col int, extend bool) {
	if line < 0 {
		line = 0
	}
	if line >= len(b.Lines) {
		line = len(b.Lines) - 1
	}
	if col < 0 {
		col = 0
	}
	if max := b.LineLen(line); col > max {
		col = max
	}

	if extend {
		if b.Selection == nil {
			b.Selection = &Selection{Anchor: b.Cursor}
		}
		b.Cursor = Cursor{Line: line, Col: col}
		b.Selection.Head = b.Cursor
		if b.Selection.Empty() {
			b.Selection = nil
		}
		return
	}
	b.Selection = nil
	b.Cursor = Cursor{Line: line, Col: col}
}

func (b *Buffer) HasSelection() bool {
	return b.Selection != nil && !b.Selection.Empty()
}

// SelectionBounds returns the normalized selection range, or the cursor
// position twice when nothing is selected.
func (b *Buffer) SelectionBounds() (startLine, startCol, endLine, endCol int) {
	if !b.HasSelection() {
		return b.Cursor.Line, b.Cursor.Col, b.Cursor.Line, b.Cursor.Col
	}
	start, end := b.Selection.Bounds()
	return start.Line, start.Col, end.Line, end.Col
}

// byteCol converts a character column of line i to a byte offset.
func (b *Buffer) byteCol(i, col int) int {
	return textenc.CharToByteIndex(b.Line(i), col)
}

func (b *Buffer) InsertRune(ch rune) {
	if b.ReadOnly {
		return
	}
	b.DeleteSelection()
	line := b.Lines[b.Cursor.Line]
	at := b.byteCol(b.Cursor.Line, b.Cursor.Col)
	b.Lines[b.Cursor.Line] = line[:at] + string(ch) + line[at:]
	b.Cursor.Col++
	b.Dirty = true
}

func (b *Buffer) InsertNewline() {
	if b.ReadOnly {
		return
	}
	b.DeleteSelection()
	line := b.Lines[b.Cursor.Line]
	at := b.byteCol(b.Cursor.Line, b.Cursor.Col)

	rest := line[at:]
	b.Lines[b.Cursor.Line] = line[:at]
	b.Lines = append(b.Lines, "")
	copy(b.Lines[b.Cursor.Line+2:], b.Lines[b.Cursor.Line+1:])
	b.Lines[b.Cursor.Line+1] = rest

	b.Cursor.Line++
	b.Cursor.Col = 0
	b.Dirty = true
}

// Backspace deletes the selection if active, otherwise the character before
// the cursor, joining lines at column zero.
func (b *Buffer) Backspace() {
	if b.ReadOnly {
		return
	}
	if b.HasSelection() {
		b.DeleteSelection()
		return
	}
	if b.Cursor.Col > 0 {
		line := b.Lines[b.Cursor.Line]
		from := b.byteCol(b.Cursor.Line, b.Cursor.Col-1)
		to := b.byteCol(b.Cursor.Line, b.Cursor.Col)
		b.Lines[b.Cursor.Line] = line[:from] + line[to:]
		b.Cursor.Col--
		b.Dirty = true
		return
	}
	if b.Cursor.Line > 0 {
		prev := b.Cursor.Line - 1
		b.Cursor.Col = b.LineLen(prev)
		b.Lines[prev] += b.Lines[b.Cursor.Line]
		b.Lines = append(b.Lines[:b.Cursor.Line], b.Lines[b.Cursor.Line+1:]...)
		b.Cursor.Line = prev
		b.Dirty = true
	}
}

// DeleteSelection removes the selected range and collapses the cursor to
// its start. A no-op without an active selection.
func (b *Buffer) DeleteSelection() {
	if !b.HasSelection() {
		return
	}
	start, end := b.Selection.Bounds()

	if start.Line == end.Line {
		line := b.Lines[start.Line]
		from := b.byteCol(start.Line, start.Col)
		to := b.byteCol(start.Line, end.Col)
		b.Lines[start.Line] = line[:from] + line[to:]
	} else {
		head := b.Lines[start.Line][:b.byteCol(start.Line, start.Col)]
		tail := b.Lines[end.Line][b.byteCol(end.Line, end.Col):]
		b.Lines[start.Line] = head + tail
		b.Lines = append(b.Lines[:start.Line+1], b.Lines[end.Line+1:]...)
	}

	b.Cursor = start
	b.Selection = nil
	b.Dirty = true
}

// SelectedText returns the selection's content with lines joined by "\n".
func (b *Buffer) SelectedText() string {
	if !b.HasSelection() {
		return ""
	}
	start, end := b.Selection.Bounds()

	if start.Line == end.Line {
		line := b.Lines[start.Line]
		return line[b.byteCol(start.Line, start.Col):b.byteCol(start.Line, end.Col)]
	}

	var sb strings.Builder
	sb.WriteString(b.Lines[start.Line][b.byteCol(start.Line, start.Col):])
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.Lines[i])
	}
	sb.WriteByte('\n')
	sb.WriteString(b.Lines[end.Line][:b.byteCol(end.Line, end.Col)])
	return sb.String()
}

// InsertText inserts possibly multi-line text at the cursor.
func (b *Buffer) InsertText(text string) {
	if b.ReadOnly || text == "" {
		return
	}
	b.DeleteSelection()

	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	line := b.Lines[b.Cursor.Line]
	at := b.byteCol(b.Cursor.Line, b.Cursor.Col)
	head, tail := line[:at], line[at:]

	if len(parts) == 1 {
		b.Lines[b.Cursor.Line] = head + parts[0] + tail
		b.Cursor.Col += textenc.RuneCount(parts[0])
		b.Dirty = true
		return
	}

	b.Lines[b.Cursor.Line] = head + parts[0]
	rest := make([]string, 0, len(b.Lines)+len(parts)-1)
	rest = append(rest, b.Lines[:b.Cursor.Line+1]...)
	rest = append(rest, parts[1:]...)
	rest = append(rest, b.Lines[b.Cursor.Line+1:]...)
	b.Lines = rest

	last := b.Cursor.Line + len(parts) - 1
	b.Lines[last] += tail
	b.Cursor.Line = last
	b.Cursor.Col = textenc.RuneCount(parts[len(parts)-1])
	b.Dirty = true
}

func (b *Buffer) Save() error {
	if b.Path == "" || b.ReadOnly {
		return nil
	}

	eol := "\n"
	if b.LineEnding == "CRLF" {
		eol = "\r\n"
	}
	content := strings.Join(b.Lines, eol) + eol

	if err := os.WriteFile(b.Path, []byte(content), 0644); err != nil {
		return fmt.Errorf("save %s: %w", b.Path, err)
	}
	b.MarkSaved()
	b.LastSaveTime = time.Now()
	return nil
}

func (b *Buffer) currentSnapshot() string {
	return strings.Join(b.Lines, "\n")
}

func (b *Buffer) MarkSaved() {
	b.savedSnapshot = b.currentSnapshot()
	b.Dirty = false
}

func (b *Buffer) RecomputeDirty() {
	b.Dirty = b.currentSnapshot() != b.savedSnapshot
}
