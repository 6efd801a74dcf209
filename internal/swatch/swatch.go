// Package swatch renders a color sample as a PNG labelled with its hex, rgb()
// and hsl() notations.
package swatch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/MeKo-Tech/colorparser/convert"
)

const (
	// DefaultSize is the edge length in pixels of a swatch.
	DefaultSize = 160
	// MinLabelSize is the smallest swatch that still fits the label block.
	MinLabelSize = 140

	lineHeight = 15
	margin     = 6
)

// Options configures Render.
type Options struct {
	Size  int  // edge length in pixels, DefaultSize when zero
	Label bool // draw the three notations onto the swatch
}

// Swatch is a rendered color sample together with its notations.
type Swatch struct {
	Image *image.RGBA
	Hex   string
	RGB   string
	HSL   string
}

// Render converts value (hex, rgb() or hsl()) and draws a square filled with
// the color.
func Render(value string, opts Options) (*Swatch, error) {
	size := opts.Size
	if size == 0 {
		size = DefaultSize
	}
	if size < 1 {
		return nil, fmt.Errorf("invalid swatch size %d", size)
	}
	if opts.Label && size < MinLabelSize {
		return nil, fmt.Errorf("swatch size %d too small for labels (minimum %d)", size, MinLabelSize)
	}

	rgbText, err := convert.Convert(value, convert.FormatRGB)
	if err != nil {
		return nil, err
	}
	c, err := convert.ParseRGB(rgbText)
	if err != nil {
		return nil, err
	}
	hslText, err := convert.Convert(rgbText, convert.FormatHSL)
	if err != nil {
		return nil, err
	}
	hsl, err := convert.ParseHSL(hslText)
	if err != nil {
		return nil, err
	}

	s := &Swatch{
		Image: image.NewRGBA(image.Rect(0, 0, size, size)),
		Hex:   c.Hex(),
		RGB:   rgbText,
		HSL:   hslText,
	}

	fill := color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
	draw.Draw(s.Image, s.Image.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	if opts.Label {
		drawLabel(s.Image, labelColor(hsl), []string{s.Hex, s.RGB, s.HSL})
	}

	return s, nil
}

// labelColor picks black text on light colors and white text on dark ones.
func labelColor(c convert.HSL) color.Color {
	if c.L >= 50 {
		return color.Black
	}
	return color.White
}

func drawLabel(dst draw.Image, col color.Color, lines []string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}

	height := dst.Bounds().Dy()
	y := height - margin - (len(lines)-1)*lineHeight
	for _, line := range lines {
		d.Dot = fixed.P(margin, y)
		d.DrawString(line)
		y += lineHeight
	}
}

// Encode writes the swatch image as PNG.
func (s *Swatch) Encode(w io.Writer) error {
	if err := png.Encode(w, s.Image); err != nil {
		return fmt.Errorf("failed to encode swatch: %w", err)
	}
	return nil
}
