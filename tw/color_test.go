package tw

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Color
	}{
		{name: "empty", input: "", want: Transparent},
		{name: "transparent keyword", input: "Transparent", want: Transparent},
		{name: "shorthand hex", input: "#fff", want: 0xFFFFFFFF},
		{name: "full hex", input: "#3b82f6", want: 0x3B82F6FF},
		{name: "shorthand mixed", input: "#a1F", want: 0xAA11FFFF},
		{name: "hex with alpha", input: "#00000080", want: 0x00000080},
		{name: "rgb", input: "rgb(255, 0, 0)", want: 0xFF0000FF},
		{name: "rgba", input: "rgba(0, 0, 255, 0.5)", want: 0x0000FF80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %#08x, want %#08x", tt.input, uint32(got), uint32(tt.want))
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, input := range []string{"blue", "#12", "#12345", "#zzzzzz", "#ggg", "rgb(1,2)", "rgba(1,2,3,4)", "rgb(300,0,0)"} {
		if _, err := ParseColor(input); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", input, err)
		}
	}
}

func TestColorText(t *testing.T) {
	var c Color
	if err := c.UnmarshalText([]byte("#102030")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if c.String() != "#102030ff" {
		t.Errorf("String() = %q", c.String())
	}
	if c.Hex() != "#102030" {
		t.Errorf("Hex() = %q", c.Hex())
	}
	if Transparent.String() != "transparent" {
		t.Errorf("Transparent.String() = %q", Transparent.String())
	}
}
