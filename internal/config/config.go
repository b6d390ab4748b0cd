package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

const DefaultNewBufferSize = 1024

type Theme struct {
	CursorBackground string `toml:"cursor_background"`
	CursorForeground string `toml:"cursor_foreground"`
	TitleColor       string `toml:"title_color"`
	ModifiedColor    string `toml:"modified_color"`
	ModeColor        string `toml:"mode_color"`
	SeparatorColor   string `toml:"separator_color"`
	CellColor        string `toml:"cell_color"`
	DetailColor      string `toml:"detail_color"`
	HelpColor        string `toml:"help_color"`
	StatusColor      string `toml:"status_color"`
	ErrorColor       string `toml:"error_color"`
	BorderColor      string `toml:"border_color"`
}

type Editor struct {
	NewBufferSize int `toml:"new_buffer_size"`
}

type Config struct {
	Theme  Theme  `toml:"theme"`
	Editor Editor `toml:"editor"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme: Theme{
			CursorBackground: "#FFFFFF",
			CursorForeground: "#000000",
			TitleColor:       "#FFFFFF",
			ModifiedColor:    "#FF0000",
			ModeColor:        "#FF00FF",
			SeparatorColor:   "#0000FF",
			CellColor:        "#DDDDDD",
			DetailColor:      "#888888",
			HelpColor:        "#AAAAAA",
			StatusColor:      "#00AA00",
			ErrorColor:       "#FF0000",
			BorderColor:      "#0000FF",
		},
		Editor: Editor{
			NewBufferSize: DefaultNewBufferSize,
		},
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bytedit.toml"
	}
	return filepath.Join(home, ".config", "bytedit", "bytedit.toml")
}

// Load reads path over the defaults. A missing file is not an error.
// An empty path means ConfigPath().
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), err
	}

	if cfg.Editor.NewBufferSize <= 0 {
		cfg.Editor.NewBufferSize = DefaultNewBufferSize
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

type Styles struct {
	Cursor    lipgloss.Style
	Title     lipgloss.Style
	Modified  lipgloss.Style
	Mode      lipgloss.Style
	Separator lipgloss.Style
	Cell      lipgloss.Style
	Detail    lipgloss.Style
	Help      lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Prompt    lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Cursor: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.CursorBackground)).
			Foreground(lipgloss.Color(theme.CursorForeground)),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TitleColor)).
			Bold(true),
		Modified: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ModifiedColor)),
		Mode: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ModeColor)).
			Bold(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.SeparatorColor)),
		Cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.CellColor)),
		Detail: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.DetailColor)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.HelpColor)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.StatusColor)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ErrorColor)).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.BorderColor)).
			Padding(0, 1),
	}
}
