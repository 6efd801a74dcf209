package convert

import (
	"fmt"
	"strings"
)

// RGB is a validated color with each channel in [0, 255].
type RGB struct {
	R, G, B int
}

// String renders the color as "rgb(R, G, B)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex renders the color as "#rrggbb".
func (c RGB) Hex() string {
	return encodeHex([3]int{c.R, c.G, c.B})
}

// HSL is a rounded hsl() color: hue in [0, 360), saturation and lightness
// as percentages in [0, 100].
type HSL struct {
	H, S, L int
}

// String renders the color as "hsl(H, S%, L%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// Format identifies one of the supported color notations.
type Format int

const (
	FormatHex Format = iota
	FormatRGB
	FormatHSL
)

func (f Format) String() string {
	switch f {
	case FormatHex:
		return "hex"
	case FormatRGB:
		return "rgb"
	case FormatHSL:
		return "hsl"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses a notation name (hex, rgb or hsl, case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "hex":
		return FormatHex, nil
	case "rgb":
		return FormatRGB, nil
	case "hsl":
		return FormatHSL, nil
	default:
		return 0, fmt.Errorf("unknown color format %q (want hex, rgb or hsl)", s)
	}
}
