package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	TabSize  int    `json:"tab_size"`
	Theme    string `json:"theme"`
	WordWrap bool   `json:"word_wrap"`
}

type ColorScheme struct {
	Name             string
	Background       tcell.Color
	Foreground       tcell.Color
	Selection        tcell.Color
	LineNumber       tcell.Color
	LineNumberActive tcell.Color
	StatusBarBg      tcell.Color
	StatusBarFg      tcell.Color
	StatusBarModeBg  tcell.Color
	Scrollbar        tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:             "Dark",
		Background:       tcell.ColorBlack,
		Foreground:       tcell.ColorWhite,
		Selection:        tcell.ColorDarkBlue,
		LineNumber:       tcell.ColorGray,
		LineNumberActive: tcell.ColorWhite,
		StatusBarBg:      tcell.ColorDarkBlue,
		StatusBarFg:      tcell.ColorWhite,
		StatusBarModeBg:  tcell.ColorBlue,
		Scrollbar:        tcell.ColorGray,
	},
	"light": {
		Name:             "Light",
		Background:       tcell.ColorWhite,
		Foreground:       tcell.ColorBlack,
		Selection:        tcell.ColorLightBlue,
		LineNumber:       tcell.ColorGray,
		LineNumberActive: tcell.ColorBlack,
		StatusBarBg:      tcell.ColorLightBlue,
		StatusBarFg:      tcell.ColorBlack,
		StatusBarModeBg:  tcell.ColorBlue,
		Scrollbar:        tcell.ColorGray,
	},
	"monokai": {
		Name:             "Monokai",
		Background:       tcell.NewRGBColor(39, 40, 34),
		Foreground:       tcell.NewRGBColor(248, 248, 242),
		Selection:        tcell.NewRGBColor(73, 72, 62),
		LineNumber:       tcell.NewRGBColor(144, 144, 128),
		LineNumberActive: tcell.NewRGBColor(248, 248, 242),
		StatusBarBg:      tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:      tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg:  tcell.NewRGBColor(102, 217, 239),
		Scrollbar:        tcell.NewRGBColor(144, 144, 128),
	},
	"nord": {
		Name:             "Nord",
		Background:       tcell.NewRGBColor(46, 52, 64),
		Foreground:       tcell.NewRGBColor(236, 239, 244),
		Selection:        tcell.NewRGBColor(67, 76, 94),
		LineNumber:       tcell.NewRGBColor(76, 86, 106),
		LineNumberActive: tcell.NewRGBColor(236, 239, 244),
		StatusBarBg:      tcell.NewRGBColor(67, 76, 94),
		StatusBarFg:      tcell.NewRGBColor(236, 239, 244),
		StatusBarModeBg:  tcell.NewRGBColor(136, 192, 208),
		Scrollbar:        tcell.NewRGBColor(76, 86, 106),
	},
}

func Default() *Config {
	return &Config{
		TabSize:  4,
		Theme:    "monokai",
		WordWrap: true,
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vised", "settings.json")
}

func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
