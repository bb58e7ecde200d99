package ui

import (
	"fmt"

	"vised/config"

	"github.com/gdamore/tcell/v2"
)

type StatusBar struct {
	Filename  string
	Dirty     bool
	Line      int
	Col       int
	Language  string
	Encoding  string
	LineEnd   string
	Direction string // "LTR" or "RTL", direction of the cursor's line
	Wrap      bool
	Message   string // temporary status message
	IsError   bool
	Theme     *config.ColorScheme
	SelChars  int
	SelLines  int
}

func NewStatusBar() *StatusBar {
	return &StatusBar{
		Encoding:  "UTF-8",
		LineEnd:   "LF",
		Direction: "LTR",
		Wrap:      true,
	}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorWhite).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range " EDIT " {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, modeStyle)
			col++
		}
	}
	if col < x+width {
		screen.SetContent(col, y, ' ', nil, style)
		col++
	}

	if s.Message != "" {
		msgStyle := style
		if s.IsError {
			msgStyle = style.Foreground(tcell.ColorRed)
		}
		for _, ch := range s.Message {
			if col < x+width {
				screen.SetContent(col, y, ch, nil, msgStyle)
				col++
			}
		}
		return
	}

	fname := s.Filename
	if fname == "" {
		fname = "untitled"
	}
	if s.Dirty {
		fname += " *"
	}
	for _, ch := range fname {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}

	wrap := "Wrap"
	if !s.Wrap {
		wrap = "NoWrap"
	}
	var right string
	if s.SelChars > 0 {
		right = fmt.Sprintf("Sel: %d chars, %d lines │ Ln %d, Col %d │ %s │ %s │ %s │ %s │ %s ",
			s.SelChars, s.SelLines, s.Line+1, s.Col+1, s.Direction, wrap, s.Language, s.Encoding, s.LineEnd)
	} else {
		right = fmt.Sprintf("Ln %d, Col %d │ %s │ %s │ %s │ %s │ %s ",
			s.Line+1, s.Col+1, s.Direction, wrap, s.Language, s.Encoding, s.LineEnd)
	}
	rightRunes := []rune(right)
	rightStart := x + width - len(rightRunes)
	if rightStart > col+2 {
		for i, ch := range rightRunes {
			screen.SetContent(rightStart+i, y, ch, nil, style)
		}
	}
}
