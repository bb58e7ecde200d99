package buffer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInsertRuneMultiByte(t *testing.T) {
	b := NewBuffer(4)
	for _, ch := range "aש日" {
		b.InsertRune(ch)
	}
	if b.Lines[0] != "aש日" {
		t.Fatalf("line = %q", b.Lines[0])
	}
	if b.Cursor.Col != 3 {
		t.Fatalf("cursor col = %d, want 3 (characters, not bytes)", b.Cursor.Col)
	}
}

func TestBackspaceMultiByte(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"aשb"}
	b.Cursor = Cursor{Line: 0, Col: 2}
	b.Backspace()
	if b.Lines[0] != "ab" || b.Cursor.Col != 1 {
		t.Fatalf("got %q col %d", b.Lines[0], b.Cursor.Col)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"שלום", "world"}
	b.Cursor = Cursor{Line: 1, Col: 0}
	b.Backspace()
	if len(b.Lines) != 1 || b.Lines[0] != "שלוםworld" {
		t.Fatalf("lines = %q", b.Lines)
	}
	if b.Cursor.Line != 0 || b.Cursor.Col != 4 {
		t.Fatalf("cursor = %+v, want col 4", b.Cursor)
	}
}

func TestInsertNewlineSplits(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"abcd"}
	b.Cursor = Cursor{Line: 0, Col: 2}
	b.InsertNewline()
	if len(b.Lines) != 2 || b.Lines[0] != "ab" || b.Lines[1] != "cd" {
		t.Fatalf("lines = %q", b.Lines)
	}
	if b.Cursor.Line != 1 || b.Cursor.Col != 0 {
		t.Fatalf("cursor = %+v", b.Cursor)
	}
}

func TestSetCursorExtendBuildsSelection(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"hello"}
	b.SetCursor(0, 1, false)
	b.SetCursor(0, 4, true)
	if !b.HasSelection() {
		t.Fatal("no selection after extend")
	}
	sl, sc, el, ec := b.SelectionBounds()
	if sl != 0 || sc != 1 || el != 0 || ec != 4 {
		t.Fatalf("bounds = (%d,%d)-(%d,%d)", sl, sc, el, ec)
	}

	// Extending back to the anchor dissolves the selection.
	b.SetCursor(0, 1, true)
	if b.HasSelection() {
		t.Fatal("zero-width selection survived")
	}

	b.SetCursor(0, 4, true)
	b.SetCursor(0, 0, false)
	if b.HasSelection() {
		t.Fatal("plain SetCursor kept the selection")
	}
}

func TestSetCursorClamps(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"ab", "שלום"}
	b.SetCursor(9, 99, false)
	if b.Cursor.Line != 1 || b.Cursor.Col != 4 {
		t.Fatalf("cursor = %+v, want line 1 col 4", b.Cursor)
	}
	b.SetCursor(-1, -1, false)
	if b.Cursor.Line != 0 || b.Cursor.Col != 0 {
		t.Fatalf("cursor = %+v, want origin", b.Cursor)
	}
}

func TestDeleteSelectionMultiLine(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"hello", "middle", "world"}
	b.SetCursor(0, 2, false)
	b.SetCursor(2, 3, true)
	b.DeleteSelection()
	if len(b.Lines) != 1 || b.Lines[0] != "held" {
		t.Fatalf("lines = %q", b.Lines)
	}
	if b.Cursor != (Cursor{Line: 0, Col: 2}) {
		t.Fatalf("cursor = %+v", b.Cursor)
	}
	if b.HasSelection() {
		t.Fatal("selection survived deletion")
	}
}

func TestSelectedText(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"aשb", "cd"}
	b.SetCursor(0, 1, false)
	b.SetCursor(1, 1, true)
	if got := b.SelectedText(); got != "שb\nc" {
		t.Fatalf("SelectedText = %q", got)
	}
}

func TestInsertTextMultiLine(t *testing.T) {
	b := NewBuffer(4)
	b.Lines = []string{"abef"}
	b.Cursor = Cursor{Line: 0, Col: 2}
	b.InsertText("cd\nשלום")
	if len(b.Lines) != 2 || b.Lines[0] != "abcd" || b.Lines[1] != "שלוםef" {
		t.Fatalf("lines = %q", b.Lines)
	}
	if b.Cursor.Line != 1 || b.Cursor.Col != 4 {
		t.Fatalf("cursor = %+v", b.Cursor)
	}
}

func TestNewBufferFromFileCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("one\r\ntwo\r\n"), 0644); err != nil {
		t.Fatal(err)
	}
	b, err := NewBufferFromFile(path, 4)
	if err != nil {
		t.Fatal(err)
	}
	if b.LineEnding != "CRLF" {
		t.Fatalf("LineEnding = %q", b.LineEnding)
	}
	if len(b.Lines) != 2 || b.Lines[0] != "one" || b.Lines[1] != "two" {
		t.Fatalf("lines = %q", b.Lines)
	}
	if b.Encoding != "UTF-8" {
		t.Fatalf("encoding = %q", b.Encoding)
	}
}

func TestNewBufferFromFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	b, err := NewBufferFromFile(path, 4)
	if err != nil {
		t.Fatal(err)
	}
	if b.Path != path || len(b.Lines) != 1 || b.Lines[0] != "" {
		t.Fatalf("buffer = %+v", b)
	}
	if b.Dirty {
		t.Fatal("new file starts dirty")
	}
}

func TestDetectEncoding(t *testing.T) {
	cases := []struct {
		data []byte
		want string
	}{
		{[]byte("plain"), "UTF-8"},
		{[]byte{0xEF, 0xBB, 0xBF, 'a'}, "UTF-8 BOM"},
		{[]byte{0xFF, 0xFE, 0, 0}, "UTF-16 LE"},
		{[]byte{0xFE, 0xFF, 0, 0}, "UTF-16 BE"},
		{[]byte{'a', 0xE9, 'b'}, "Latin-1"},
	}
	for _, c := range cases {
		if got := detectEncoding(c.data); got != c.want {
			t.Fatalf("detectEncoding(%v) = %q, want %q", c.data, got, c.want)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	b := NewBuffer(4)
	b.Path = path
	b.Lines = []string{"שלום", "world"}
	b.Dirty = true
	if err := b.Save(); err != nil {
		t.Fatal(err)
	}
	if b.Dirty {
		t.Fatal("dirty after save")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "שלום\nworld\n" {
		t.Fatalf("saved %q", data)
	}
}
