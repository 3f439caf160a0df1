package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"hexedit/internal/editing"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrBytesPerLine  = errors.New("bytes_per_line must be at least 1")
	ErrNoColumns     = errors.New("at least one column is required")
	ErrConfigExists  = errors.New("config file already exists")
)

// Column names accepted in the columns list.
const (
	ColumnHex    = "hex"
	ColumnBinary = "binary"
	ColumnASCII  = "ascii"
)

type Editing struct {
	FillChar  string `toml:"fill_char"`
	CanResize bool   `toml:"can_resize"`
	Cyclic    bool   `toml:"cyclic"`
	// Length pads or truncates the opened file to a fixed size. Zero keeps
	// the file's own length.
	Length       uint64   `toml:"length"`
	BytesPerLine int      `toml:"bytes_per_line"`
	Columns      []string `toml:"columns"`
	ReadOnly     bool     `toml:"read_only"`
	LogFile      string   `toml:"log_file"`
	LogLevel     string   `toml:"log_level"`
}

type Theme struct {
	Background          string `toml:"background"`
	OffsetForeground    string `toml:"offset_foreground"`
	LegendBackground    string `toml:"legend_background"`
	LegendHighlight     string `toml:"legend_highlight"`
	CaretInsert         string `toml:"caret_insert"`
	CaretOverwrite      string `toml:"caret_overwrite"`
	SecondaryCaret      string `toml:"secondary_caret"`
	SelectionBackground string `toml:"selection_background"`
	ChangedForeground   string `toml:"changed_foreground"`
	ZeroForeground      string `toml:"zero_foreground"`
	BorderColor         string `toml:"border_color"`
	DisabledColor       string `toml:"disabled_color"`
}

type Config struct {
	Editing Editing `toml:"editing"`
	Theme   Theme   `toml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Editing: Editing{
			FillChar:     "0",
			CanResize:    true,
			BytesPerLine: 16,
			Columns:      []string{ColumnHex, ColumnASCII},
			LogLevel:     "info",
		},
		Theme: Theme{
			Background:          "#000000",
			OffsetForeground:    "#5F87FF",
			LegendBackground:    "#0000FF",
			LegendHighlight:     "#FF0000",
			CaretInsert:         "#FF0000",
			CaretOverwrite:      "#FFFF00",
			SecondaryCaret:      "#444444",
			SelectionBackground: "#FFAA00",
			ChangedForeground:   "#FF5F5F",
			ZeroForeground:      "#666666",
			BorderColor:         "#0000FF",
			DisabledColor:       "#666666",
		},
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hexedit.toml"
	}
	return filepath.Join(home, ".config", "hexedit", "hexedit.toml")
}

// Load reads the user's config file, falling back to defaults when there is
// none.
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// WriteDefault writes the default settings to path so they can be edited.
// An existing file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	return DefaultConfig().SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
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

// Validate rejects settings the editor cannot start with.
func (c *Config) Validate() error {
	if err := editing.ValidateFillChar(c.Editing.FillChar); err != nil {
		return fmt.Errorf("editing.fill_char: %w", err)
	}
	if c.Editing.BytesPerLine < 1 {
		return fmt.Errorf("editing.bytes_per_line %d: %w", c.Editing.BytesPerLine, ErrBytesPerLine)
	}
	if len(c.Editing.Columns) == 0 {
		return ErrNoColumns
	}
	for _, name := range c.Editing.Columns {
		switch name {
		case ColumnHex, ColumnBinary, ColumnASCII:
		default:
			return fmt.Errorf("editing.columns: %w %q", ErrUnknownColumn, name)
		}
	}
	if c.Editing.LogLevel != "" {
		if _, err := log.ParseLevel(c.Editing.LogLevel); err != nil {
			return fmt.Errorf("editing.log_level: %w", err)
		}
	}
	return nil
}

// Level is the configured log level, info when unset.
func (e Editing) Level() log.Level {
	lvl, err := log.ParseLevel(e.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// EngineOptions maps the editing section onto engine options.
func (e Editing) EngineOptions(logger *log.Logger) editing.Options {
	return editing.Options{
		FillChar:  e.FillChar,
		CanResize: e.CanResize && e.Length == 0,
		IsCyclic:  e.Cyclic,
		Logger:    logger,
	}
}

type Styles struct {
	Background      lipgloss.Style
	Offset          lipgloss.Style
	Legend          lipgloss.Style
	LegendHighlight lipgloss.Style
	CaretInsert     lipgloss.Style
	CaretOverwrite  lipgloss.Style
	SecondaryCaret  lipgloss.Style
	Selection       lipgloss.Style
	Changed         lipgloss.Style
	Zero            lipgloss.Style
	Border          lipgloss.Style
	Disabled        lipgloss.Style
	Normal          lipgloss.Style
	Status          lipgloss.Style
	HelpTitle       lipgloss.Style
	HelpKey         lipgloss.Style
	HelpDesc        lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Background)),
		Offset: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.OffsetForeground)),
		Legend: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		LegendHighlight: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color(theme.LegendHighlight)).
			Bold(true),
		CaretInsert: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.CaretInsert)).
			Foreground(lipgloss.Color("#FFFFFF")),
		CaretOverwrite: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.CaretOverwrite)).
			Foreground(lipgloss.Color("#000000")),
		SecondaryCaret: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.SecondaryCaret)),
		Selection: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.SelectionBackground)).
			Foreground(lipgloss.Color("#000000")),
		Changed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ChangedForeground)).
			Bold(true),
		Zero: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ZeroForeground)),
		Border: lipgloss.NewStyle().
			BorderForeground(lipgloss.Color(theme.BorderColor)),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.DisabledColor)),
		Normal: lipgloss.NewStyle(),
		Status: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		HelpTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.LegendHighlight)).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")),
	}
}
