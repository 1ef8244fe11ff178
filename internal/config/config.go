// Package config loads header configuration files (TOML or YAML).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// Format identifies a configuration encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// File represents a stretchy.toml / stretchy.yaml configuration file.
type File struct {
	Header HeaderFile `toml:"header" yaml:"header"`
	Scroll ScrollFile `toml:"scroll" yaml:"scroll"`
	Log    LogFile    `toml:"log" yaml:"log"`
}

// HeaderFile configures a stretchy header.
type HeaderFile struct {
	Height          float64    `toml:"height" yaml:"height" validate:"gt=0"`
	Background      []string   `toml:"background" yaml:"background" validate:"dive,required"`
	BackgroundColor string     `toml:"background_color" yaml:"background_color" validate:"omitempty,color"`
	Content         string     `toml:"content" yaml:"content"`
	ShowPager       *bool      `toml:"show_pager" yaml:"show_pager"`
	Pager           PagerFile  `toml:"pager" yaml:"pager"`
	Spring          SpringFile `toml:"spring" yaml:"spring"`
}

// PagerFile configures the page-count indicator.
type PagerFile struct {
	Separator string `toml:"separator" yaml:"separator"`
	Color     string `toml:"color" yaml:"color" validate:"omitempty,color"`
}

// SpringFile tunes the settle spring. Zero means default.
type SpringFile struct {
	AngularFrequency float64 `toml:"angular_frequency" yaml:"angular_frequency" validate:"gte=0"`
	DampingRatio     float64 `toml:"damping_ratio" yaml:"damping_ratio" validate:"gte=0"`
}

// ScrollFile configures the scroll container.
type ScrollFile struct {
	EventThrottleMS int   `toml:"event_throttle_ms" yaml:"event_throttle_ms" validate:"gte=0"`
	Enabled         *bool `toml:"enabled" yaml:"enabled"`

	// Programmatic scrolls, such as the return to the top when a drag starts
	ScrollToMS int    `toml:"scroll_to_ms" yaml:"scroll_to_ms" validate:"gte=0"`
	Easing     string `toml:"easing" yaml:"easing" validate:"omitempty,easing"`
}

// LogFile configures logging.
type LogFile struct {
	Level string `toml:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	Human bool   `toml:"human" yaml:"human"`
}

// Default returns a configuration with sensible defaults.
func Default() File {
	showPager := true
	enabled := true
	return File{
		Header: HeaderFile{
			Height:          212,
			BackgroundColor: "transparent",
			ShowPager:       &showPager,
			Pager: PagerFile{
				Separator: " / ",
			},
		},
		Scroll: ScrollFile{
			EventThrottleMS: 16,
			Enabled:         &enabled,
			ScrollToMS:      250,
			Easing:          "cubic-out",
		},
		Log: LogFile{
			Level: "info",
		},
	}
}

// Load reads, decodes and validates a configuration file. Values missing from
// the file keep their defaults.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode decodes and validates configuration bytes in the given format.
func Decode(data []byte, format Format) (*File, error) {
	cfg := Default()
	if err := DecodeInto(data, format, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DecodeInto decodes data onto out, keeping fields the data does not mention.
// Unknown keys are rejected.
func DecodeInto(data []byte, format Format, out any) error {
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("parse toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// Encode writes cfg in the given format.
func Encode(cfg *File, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(cfg)
	case FormatYAML:
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
