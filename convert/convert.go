package convert

import "strings"

// HexToHSL converts a hex color to "hsl(H, S%, L%)" by way of RGB.
func HexToHSL(hex string) (string, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return "", err
	}
	c, err := parseRGBString(rgb)
	if err != nil {
		return "", err
	}
	return RGBToHSL(float64(c[0]), float64(c[1]), float64(c[2]))
}

// HSLToHex converts an HSL color to "#rrggbb" by way of RGB.
func HSLToHex(h, s, l float64) (string, error) {
	rgb, err := HSLToRGB(h, s, l)
	if err != nil {
		return "", err
	}
	c, err := parseRGBString(rgb)
	if err != nil {
		return "", err
	}
	return RGBToHex(float64(c[0]), float64(c[1]), float64(c[2]))
}

// Detect reports which notation s is written in. It only inspects the shape
// of s; the matching parser still validates it.
func Detect(s string) (Format, error) {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "rgb("):
		return FormatRGB, nil
	case strings.HasPrefix(lower, "hsl("):
		return FormatHSL, nil
	case looksHex(lower):
		return FormatHex, nil
	default:
		return 0, formatErrorf("unrecognized color %q", s)
	}
}

func looksHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(hexTable, s[i]) < 0 {
			return false
		}
	}
	return true
}

// Convert detects the notation of value and converts it to the target format.
// Converting to the same format normalizes the value: "#FFF" becomes "#ffffff"
// and "rgb(1,2,3)" becomes "rgb(1, 2, 3)".
func Convert(value string, to Format) (string, error) {
	from, err := Detect(value)
	if err != nil {
		return "", err
	}

	switch from {
	case FormatHex:
		switch to {
		case FormatRGB:
			return HexToRGB(value)
		case FormatHSL:
			return HexToHSL(value)
		default:
			c, err := decodeHex(value)
			if err != nil {
				return "", err
			}
			return c.Hex(), nil
		}

	case FormatRGB:
		c, err := ParseRGB(value)
		if err != nil {
			return "", err
		}
		switch to {
		case FormatHex:
			return RGBToHex(float64(c.R), float64(c.G), float64(c.B))
		case FormatHSL:
			return RGBToHSL(float64(c.R), float64(c.G), float64(c.B))
		default:
			return c.String(), nil
		}

	default:
		c, err := ParseHSL(value)
		if err != nil {
			return "", err
		}
		switch to {
		case FormatHex:
			return HSLToHex(float64(c.H), float64(c.S), float64(c.L))
		case FormatRGB:
			return HSLToRGB(float64(c.H), float64(c.S), float64(c.L))
		default:
			return c.String(), nil
		}
	}
}
