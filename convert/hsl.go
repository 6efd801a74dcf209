package convert

import "math"

// hslExact is an unrounded HSL color: hue in degrees, saturation and
// lightness in percent.
type hslExact struct {
	h, s, l float64
}

// RGBToHSL converts three integral channels in [0, 255] to "hsl(H, S%, L%)".
func RGBToHSL(r, g, b float64) (string, error) {
	c, err := validateRGB(r, g, b)
	if err != nil {
		return "", err
	}
	return rgbToHSL(c).round().String(), nil
}

// HSLToRGB converts hue in [0, 360) and saturation/lightness percentages in
// [0, 100] to "rgb(R, G, B)".
func HSLToRGB(h, s, l float64) (string, error) {
	c, err := hslToRGB(h, s, l)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// rgbToHSL normalizes each channel to [0, 1] before deriving hue, lightness
// and saturation. The float64 steps are kept in this order so that values
// close to .5 round the same way on every platform.
func rgbToHSL(c [3]int) hslExact {
	r, g, b := float64(c[0])/255, float64(c[1])/255, float64(c[2])/255
	maxv := max(r, g, b)
	minv := min(r, g, b)

	var h float64
	switch maxv {
	case minv:
		h = 0
	case r:
		h = 60 * (g - b) / (maxv - minv)
		if g < b {
			h += 360
		}
	case g:
		h = 60*(b-r)/(maxv-minv) + 120
	case b:
		h = 60*(r-g)/(maxv-minv) + 240
	}

	l := (maxv + minv) / 2

	var s float64
	switch {
	case l == 0 || maxv == minv:
		s = 0
	case l > 0.5:
		s = (maxv - minv) / (2 - (maxv + minv))
	default:
		s = (maxv - minv) / (maxv + minv)
	}

	return hslExact{h: h, s: s * 100, l: l * 100}
}

func (x hslExact) round() HSL {
	h := roundHalfUp(x.h)
	if h == 360 {
		h = 0
	}
	return HSL{H: h, S: roundHalfUp(x.s), L: roundHalfUp(x.l)}
}

func hslToRGB(h, s, l float64) (RGB, error) {
	for _, v := range [3]float64{h, s, l} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return RGB{}, formatErrorf("hsl component %v is not a finite number", v)
		}
	}

	hn, sn, ln := h/360, s/100, l/100
	if hn < 0 || hn >= 1 {
		return RGB{}, rangeErrorf("hue %v must be in [0, 360)", h)
	}
	if sn < 0 || sn > 1 {
		return RGB{}, rangeErrorf("saturation %v must be in [0, 100]", s)
	}
	if ln < 0 || ln > 1 {
		return RGB{}, rangeErrorf("lightness %v must be in [0, 100]", l)
	}

	r, g, b := hslChannels(hn, sn, ln)
	return RGB{
		R: roundHalfUp(r * 255),
		G: roundHalfUp(g * 255),
		B: roundHalfUp(b * 255),
	}, nil
}

// hslChannels maps normalized h, s, l (all in [0, 1]) to channels in [0, 1].
func hslChannels(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - float64(l*s)
	}
	p := 2*l - q

	r = hueToChannel(p, q, (3*h+1)/3)
	g = hueToChannel(p, q, h)
	b = hueToChannel(p, q, (3*h-1)/3)
	return r, g, b
}

// hueToChannel keeps products in explicit float64 conversions so they are
// never fused into a multiply-add.
func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	} else if t > 1 {
		t--
	}

	switch {
	case t*6 < 1:
		return p + float64((q-p)*6*t)
	case t < 0.5:
		return q
	case t*3 < 2:
		return p + float64((q-p)*6*(2.0/3.0-t))
	default:
		return p
	}
}

// roundHalfUp rounds x.5 upwards. All inputs here are non-negative.
// Comparing the fraction avoids Floor(x+0.5), which rounds
// 0.49999999999999994 up.
func roundHalfUp(x float64) int {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return int(f)
}
