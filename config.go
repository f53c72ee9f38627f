package thicket

import (
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables shared by every widget a Scene builds: screen
// geometry, menu timings, window decoration and text reveal speed. Zero
// values in a loaded file keep the defaults.
type Config struct {
	Screen ScreenConfig `toml:"screen" yaml:"screen"`
	Menu   MenuConfig   `toml:"menu" yaml:"menu"`
	Window WindowConfig `toml:"window" yaml:"window"`
	Text   TextConfig   `toml:"text" yaml:"text"`
	Debug  bool         `toml:"debug" yaml:"debug"`
}

// ScreenConfig sizes the logical screen.
type ScreenConfig struct {
	Width  int     `toml:"width" yaml:"width"`
	Height int     `toml:"height" yaml:"height"`
	Title  string  `toml:"title" yaml:"title"`
	Scale  float64 `toml:"scale" yaml:"scale"`
}

// MenuConfig holds cursor, scrolling and keyboard timings, in seconds.
type MenuConfig struct {
	CursorMoveDuration float64 `toml:"cursor_move_duration" yaml:"cursor_move_duration"`
	ScrollDuration     float64 `toml:"scroll_duration" yaml:"scroll_duration"`
	KeyRepeatDelay     float64 `toml:"key_repeat_delay" yaml:"key_repeat_delay"`
	KeyRepeatInterval  float64 `toml:"key_repeat_interval" yaml:"key_repeat_interval"`
	InputTimeout       float64 `toml:"input_timeout" yaml:"input_timeout"`
	CursorImage        string  `toml:"cursor_image" yaml:"cursor_image"`
	SelectSound        string  `toml:"select_sound" yaml:"select_sound"`
}

// WindowConfig describes window decoration.
type WindowConfig struct {
	Padding         float64 `toml:"padding" yaml:"padding"`
	Border          string  `toml:"border" yaml:"border"`
	Background      string  `toml:"background" yaml:"background"`
	BackgroundColor string  `toml:"background_color" yaml:"background_color"`
	OpenDuration    float64 `toml:"open_duration" yaml:"open_duration"`
}

// TextConfig controls text rendering and reveal.
type TextConfig struct {
	CharacterDelay float64 `toml:"character_delay" yaml:"character_delay"`
	FontSize       float64 `toml:"font_size" yaml:"font_size"`
	Color          string  `toml:"color" yaml:"color"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Screen: ScreenConfig{Width: 320, Height: 240, Title: "thicket", Scale: 2},
		Menu: MenuConfig{
			CursorMoveDuration: 0.2,
			ScrollDuration:     0.25,
			KeyRepeatDelay:     0.4,
			KeyRepeatInterval:  0.05,
			InputTimeout:       1,
		},
		Window: WindowConfig{
			Padding:         6,
			BackgroundColor: "#f8f8f8",
			OpenDuration:    0.2,
		},
		Text: TextConfig{
			CharacterDelay: 0.05,
			FontSize:       10,
			Color:          "#202020",
		},
	}
}

// LoadConfig reads name from fsys and decodes it over DefaultConfig. The
// format is chosen by extension: .toml, or .yaml/.yml.
func LoadConfig(fsys fs.FS, name string) (Config, error) {
	cfg := DefaultConfig()
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", name, err)
	}
	if err := cfg.Decode(data, path.Ext(name)); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", name, err)
	}
	return cfg, nil
}

// Decode unmarshals data over c. ext selects the format and includes the
// leading dot.
func (c *Config) Decode(data []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa" (the # is optional).
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// colorOr parses s, falling back to def when s is empty or malformed.
func colorOr(s string, def Color) Color {
	if s == "" {
		return def
	}
	c, err := ParseHexColor(s)
	if err != nil {
		return def
	}
	return c
}
