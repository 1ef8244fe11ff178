// Package tw parses the color values accepted by header configuration.
package tw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for unparseable color strings.
var ErrInvalidColor = errors.New("invalid color")

// Color is a packed RGBA color (0xRRGGBBAA).
type Color uint32

// Transparent is the zero color.
const Transparent Color = 0

// RGBA builds a color from components.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Components returns the color's channels.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	r, g, b, _ := c.Components()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// String returns "transparent" or "#rrggbbaa".
func (c Color) String() string {
	if c == Transparent {
		return "transparent"
	}
	return fmt.Sprintf("#%08x", uint32(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor parses "transparent", "#RGB", "#RRGGBB", "#RRGGBBAA",
// "rgb(r, g, b)" and "rgba(r, g, b, a)" with alpha in 0-1.
// The empty string parses as transparent.
func ParseColor(value string) (Color, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	switch {
	case value == "" || value == "transparent":
		return Transparent, nil

	case strings.HasPrefix(value, "#"):
		return parseHex(value)

	case strings.HasPrefix(value, "rgba(") || strings.HasPrefix(value, "rgb("):
		return parseFunctional(value)
	}

	return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, value)
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(value string) Color {
	c, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(value string) (Color, error) {
	if len(value) == 9 {
		n, err := strconv.ParseUint(value[1:], 16, 32)
		if err != nil {
			return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, value)
		}
		return Color(n), nil
	}

	// #RGB and #RRGGBB
	c, err := colorful.Hex(value)
	if err != nil {
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	r, g, b := c.RGB255()
	return RGBA(r, g, b, 0xFF), nil
}

func parseFunctional(value string) (Color, error) {
	open := strings.IndexByte(value, '(')
	if !strings.HasSuffix(value, ")") {
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	parts := strings.Split(value[open+1:len(value)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, value)
		}
		rgb[i] = uint8(n)
	}

	alpha := uint8(0xFF)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, value)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return RGBA(rgb[0], rgb[1], rgb[2], alpha), nil
}
