package convert

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

var (
	rgbPattern = regexp.MustCompile(`(?i)^rgb\((\d+), ?(\d+), ?(\d+)\)$`)
	hslPattern = regexp.MustCompile(`(?i)^hsl\((\d+), ?(\d+)%, ?(\d+)%\)$`)
)

var channelNames = [3]string{"red", "green", "blue"}

// validateRGB checks channels in order. A non-finite or fractional value is a
// format error, an integral value outside [0, 255] a range error.
func validateRGB(r, g, b float64) ([3]int, error) {
	var out [3]int
	for i, v := range [3]float64{r, g, b} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return out, formatErrorf("%s channel %v is not an integer", channelNames[i], v)
		}
		if v < 0 || v > 255 {
			return out, rangeErrorf("%s channel %v must be between 0 and 255", channelNames[i], v)
		}
		out[i] = int(v)
	}
	return out, nil
}

// parseRGBString reads the three integers of an "rgb(R, G, B)" string without
// checking their range.
func parseRGBString(s string) ([3]int, error) {
	m := rgbPattern.FindStringSubmatch(s)
	if m == nil {
		return [3]int{}, formatErrorf("malformed rgb color %q", s)
	}
	return atoi3(s, m[1:])
}

func atoi3(s string, parts []string) ([3]int, error) {
	var out [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return out, rangeErrorf("component %q of %q is too large", p, s)
			}
			return out, formatErrorf("component %q of %q is not a number", p, s)
		}
		out[i] = n
	}
	return out, nil
}

// ParseRGB parses "rgb(R, G, B)" (the space after each comma is optional,
// the "rgb" keyword is case-insensitive) and validates the channel range.
func ParseRGB(s string) (RGB, error) {
	c, err := parseRGBString(s)
	if err != nil {
		return RGB{}, err
	}
	if _, err := validateRGB(float64(c[0]), float64(c[1]), float64(c[2])); err != nil {
		return RGB{}, err
	}
	return RGB{R: c[0], G: c[1], B: c[2]}, nil
}

// ParseHSL parses "hsl(H, S%, L%)" with integral components. Hue must be below
// 360, saturation and lightness at most 100.
func ParseHSL(s string) (HSL, error) {
	m := hslPattern.FindStringSubmatch(s)
	if m == nil {
		return HSL{}, formatErrorf("malformed hsl color %q", s)
	}
	c, err := atoi3(s, m[1:])
	if err != nil {
		return HSL{}, err
	}
	if c[0] >= 360 {
		return HSL{}, rangeErrorf("hue %d must be below 360", c[0])
	}
	if c[1] > 100 || c[2] > 100 {
		return HSL{}, rangeErrorf("saturation and lightness of %q must be at most 100%%", s)
	}
	return HSL{H: c[0], S: c[1], L: c[2]}, nil
}
