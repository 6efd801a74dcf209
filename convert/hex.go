package convert

import "strings"

// hexTable maps digit values to their lowercase hex symbol. Decoding uses the
// symbol's index in the table rather than a radix parser.
const hexTable = "0123456789abcdef"

// HexToRGB converts "#rgb", "#rrggbb", "rgb" or "rrggbb" (any case) to
// "rgb(R, G, B)".
func HexToRGB(hex string) (string, error) {
	c, err := decodeHex(hex)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// RGBToHex converts three integral channels in [0, 255] to "#rrggbb".
func RGBToHex(r, g, b float64) (string, error) {
	c, err := validateRGB(r, g, b)
	if err != nil {
		return "", err
	}
	return encodeHex(c), nil
}

func decodeHex(hex string) (RGB, error) {
	if hex == "" {
		return RGB{}, formatErrorf("empty hex color")
	}

	var digits string
	if hex[0] == '#' {
		if len(hex) != 4 && len(hex) != 7 {
			return RGB{}, formatErrorf("hex color %q must have 3 or 6 digits", hex)
		}
		digits = hex[1:]
	} else {
		if len(hex) != 3 && len(hex) != 6 {
			return RGB{}, formatErrorf("hex color %q must have 3 or 6 digits", hex)
		}
		digits = hex
	}

	digits = strings.ToLower(digits)
	for i := 0; i < len(digits); i++ {
		if strings.IndexByte(hexTable, digits[i]) < 0 {
			return RGB{}, formatErrorf("hex color %q contains non-hex character %q", hex, digits[i])
		}
	}

	if len(digits) == 3 {
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	}

	return RGB{
		R: hexPair(digits[0], digits[1]),
		G: hexPair(digits[2], digits[3]),
		B: hexPair(digits[4], digits[5]),
	}, nil
}

func hexPair(hi, lo byte) int {
	return strings.IndexByte(hexTable, hi)*16 + strings.IndexByte(hexTable, lo)
}

// encodeHex always emits two digits per channel, so 0 becomes "00".
func encodeHex(c [3]int) string {
	var sb strings.Builder
	sb.Grow(7)
	sb.WriteByte('#')
	for _, v := range c {
		sb.WriteByte(hexTable[v/16])
		sb.WriteByte(hexTable[v%16])
	}
	return sb.String()
}
