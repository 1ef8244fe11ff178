// Package script loads and replays recorded gesture sequences against a
// stretchy scroll view.
//
// A script is a TOML or YAML file:
//
//	width = 375.0
//	[header]
//	height = 212.0
//	background = ["a.png", "b.png", "c.png"]
//
//	[[steps]]
//	do = "down"
//	x = 300.0
//	y = 40.0
//
//	[[steps]]
//	do = "move"
//	x = 120.0
//	y = 40.0
//	after_ms = 120
//
//	[[steps]]
//	do = "settle"
package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agiangrant/stretchy/internal/config"
)

// Step actions.
const (
	ActionDown     = "down"
	ActionMove     = "move"
	ActionUp       = "up"
	ActionCancel   = "cancel"
	ActionScroll   = "scroll"
	ActionScrollTo = "scrollto"
	ActionFrames   = "frames"
	ActionSettle   = "settle"
	ActionGoTo     = "goto"
)

// Script is a replayable gesture sequence plus the header it runs against.
type Script struct {
	// Config optionally names a header configuration file, relative to the
	// script. Its header and scroll sections replace the inline ones.
	Config string `toml:"config" yaml:"config"`

	Width    float64 `toml:"width" yaml:"width" validate:"gt=0"`
	Viewport float64 `toml:"viewport" yaml:"viewport" validate:"gt=0"`

	Header config.HeaderFile `toml:"header" yaml:"header"`
	Scroll config.ScrollFile `toml:"scroll" yaml:"scroll"`
	Steps  []Step            `toml:"steps" yaml:"steps" validate:"min=1,dive"`
}

// Step is one scripted input.
type Step struct {
	Do       string  `toml:"do" yaml:"do" validate:"required,oneof=down move up cancel scroll scrollto frames settle goto"`
	X        float64 `toml:"x" yaml:"x"`
	Y        float64 `toml:"y" yaml:"y"`
	AfterMS  int     `toml:"after_ms" yaml:"after_ms" validate:"gte=0"`
	Frames   int     `toml:"frames" yaml:"frames" validate:"gte=0"`
	Index    int     `toml:"index" yaml:"index"`
	Animated bool    `toml:"animated" yaml:"animated"`
}

// Default returns a script with a phone-sized viewport and the default
// header, and no steps.
func Default() Script {
	def := config.Default()
	return Script{
		Width:    375,
		Viewport: 667,
		Header:   def.Header,
		Scroll:   def.Scroll,
	}
}

// Load reads a script file. The extension picks the format.
func Load(path string) (*Script, error) {
	format, err := config.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}

	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}

	if s.Config != "" {
		ref := s.Config
		if !filepath.IsAbs(ref) {
			ref = filepath.Join(filepath.Dir(path), ref)
		}
		file, err := config.Load(ref)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", path, err)
		}
		s.Header = file.Header
		s.Scroll = file.Scroll
	}
	return s, nil
}

// Decode decodes and validates script bytes.
func Decode(data []byte, format config.Format) (*Script, error) {
	s := Default()
	if err := config.DecodeInto(data, format, &s); err != nil {
		return nil, err
	}
	if err := config.Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
