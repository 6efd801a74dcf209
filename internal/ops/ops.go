// Package ops names the six color conversions so every front end (CLI, HTTP,
// MCP, wasm) dispatches them the same way.
package ops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/colorparser/convert"
)

// Op is one named conversion. Exactly one of Text and Triple is set,
// depending on whether the source notation is a hex string or three numbers.
type Op struct {
	Name   string
	From   convert.Format
	To     convert.Format
	Text   func(string) (string, error)
	Triple func(a, b, c float64) (string, error)
}

// All lists the conversions in a stable order.
var All = []Op{
	{Name: "hex-to-rgb", From: convert.FormatHex, To: convert.FormatRGB, Text: convert.HexToRGB},
	{Name: "rgb-to-hex", From: convert.FormatRGB, To: convert.FormatHex, Triple: convert.RGBToHex},
	{Name: "rgb-to-hsl", From: convert.FormatRGB, To: convert.FormatHSL, Triple: convert.RGBToHSL},
	{Name: "hsl-to-rgb", From: convert.FormatHSL, To: convert.FormatRGB, Triple: convert.HSLToRGB},
	{Name: "hex-to-hsl", From: convert.FormatHex, To: convert.FormatHSL, Text: convert.HexToHSL},
	{Name: "hsl-to-hex", From: convert.FormatHSL, To: convert.FormatHex, Triple: convert.HSLToHex},
}

// Lookup finds an operation by name. Underscores are accepted in place of
// dashes ("hex_to_rgb").
func Lookup(name string) (Op, bool) {
	name = strings.ReplaceAll(strings.ToLower(name), "_", "-")
	for _, op := range All {
		if op.Name == name {
			return op, true
		}
	}
	return Op{}, false
}

// Apply runs the operation on a single textual argument. Numeric operations
// take "a,b,c" or the functional notation of their source format.
func (o Op) Apply(arg string) (string, error) {
	if o.Text != nil {
		return o.Text(arg)
	}
	v, err := ParseTriple(arg)
	if err != nil {
		return "", err
	}
	return o.Triple(v[0], v[1], v[2])
}

// ParseTriple parses three comma-separated numbers such as "255,0,0",
// "0, 100, 50", "rgb(255, 0, 0)" or "hsl(0, 100%, 50%)". Errors wrap
// convert.ErrFormat.
func ParseTriple(s string) ([3]float64, error) {
	body := strings.TrimSpace(s)
	lower := strings.ToLower(body)
	if strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "hsl(") {
		if !strings.HasSuffix(body, ")") {
			return [3]float64{}, fmt.Errorf("%w: missing closing parenthesis in %q", convert.ErrFormat, s)
		}
		body = body[4 : len(body)-1]
	}

	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return [3]float64{}, fmt.Errorf("%w: expected 3 comma-separated values, got %d", convert.ErrFormat, len(parts))
	}

	var out [3]float64
	for i, part := range parts {
		part = strings.TrimSuffix(strings.TrimSpace(part), "%")
		val, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("%w: invalid number at position %d: %q", convert.ErrFormat, i, part)
		}
		out[i] = val
	}
	return out, nil
}
