// Package highlight tokenizes buffer content with chroma and caches the
// result per document revision.
package highlight

import (
	"crypto/sha256"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gdamore/tcell/v2"
)

type Token struct {
	Text  string
	Style tcell.Style
}

type StyledLine struct {
	Tokens []Token
}

// Highlighter keeps the styled lines of the last seen document revision.
// The buffer is tokenized whole; a revision is its content hash, so any
// edit recomputes once and repeated renders hit the cache.
type Highlighter struct {
	key   [32]byte
	lines []StyledLine
}

func New() *Highlighter {
	return &Highlighter{}
}

// Lines returns one StyledLine per logical line of code.
func (h *Highlighter) Lines(code, lang string) []StyledLine {
	key := sha256.Sum256(append([]byte(lang+"\x00"), code...))
	if key == h.key && h.lines != nil {
		return h.lines
	}

	h.key = key
	h.lines = tokenize(code, lang)
	return h.lines
}

func (h *Highlighter) Invalidate() {
	h.lines = nil
}

func tokenize(code, lang string) []StyledLine {
	raw := strings.Split(code, "\n")

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		out := make([]StyledLine, len(raw))
		for i, line := range raw {
			out[i] = StyledLine{Tokens: []Token{{Text: line, Style: tcell.StyleDefault}}}
		}
		return out
	}

	out := make([]StyledLine, len(raw))
	cur := 0
	for _, tok := range iter.Tokens() {
		style := tokenStyle(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				cur++
			}
			if cur >= len(out) {
				break
			}
			if part != "" {
				out[cur].Tokens = append(out[cur].Tokens, Token{Text: part, Style: style})
			}
		}
	}
	return out
}

// DetectLanguage maps a filename to a chroma lexer name, or "" when no
// lexer matches.
func DetectLanguage(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if cfg == nil {
		return ""
	}
	return cfg.Name
}

func tokenStyle(t chroma.TokenType) tcell.Style {
	base := tcell.StyleDefault

	switch t.Category() {
	case chroma.Keyword:
		return base.Foreground(tcell.ColorBlue).Bold(true)
	case chroma.Comment:
		return base.Foreground(tcell.ColorGray).Italic(true)
	case chroma.Operator, chroma.Punctuation:
		return base.Foreground(tcell.ColorWhite)
	}

	switch t.SubCategory() {
	case chroma.LiteralString:
		return base.Foreground(tcell.ColorGreen)
	case chroma.LiteralNumber:
		return base.Foreground(tcell.ColorDarkCyan)
	}

	switch t {
	case chroma.NameBuiltin, chroma.NameBuiltinPseudo:
		return base.Foreground(tcell.ColorBlue)
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return base.Foreground(tcell.ColorYellow)
	case chroma.NameClass, chroma.NameException, chroma.NameDecorator:
		return base.Foreground(tcell.ColorFuchsia)
	}

	return base.Foreground(tcell.ColorWhite)
}
