// Package mcptools exposes the color conversions as Model Context Protocol tools.
package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MeKo-Tech/colorparser/convert"
	"github.com/MeKo-Tech/colorparser/internal/ops"
)

// HexInput is the argument of the hex_to_* tools.
type HexInput struct {
	Hex string `json:"hex" jsonschema:"Hex color with 3 or 6 digits, optionally prefixed with #"`
}

// TripleInput is the argument of the rgb_to_* and hsl_to_* tools. For RGB the
// values are the red, green and blue channels (integers 0-255); for HSL they
// are hue in degrees [0, 360) and saturation and lightness in percent.
type TripleInput struct {
	A float64 `json:"a" jsonschema:"Red channel or hue"`
	B float64 `json:"b" jsonschema:"Green channel or saturation percent"`
	C float64 `json:"c" jsonschema:"Blue channel or lightness percent"`
}

// ConvertInput is the argument of convert_color.
type ConvertInput struct {
	Value string `json:"value" jsonschema:"Color in hex, rgb(R, G, B) or hsl(H, S%, L%) notation"`
	To    string `json:"to" jsonschema:"Target notation: hex, rgb or hsl"`
}

// Output is the result of every tool.
type Output struct {
	Result string `json:"result" jsonschema:"Converted color"`
}

// NewServer creates an MCP server with all conversion tools registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "colorparser",
		Version: version,
	}, nil)
	Register(server)
	return server
}

// Register adds one tool per conversion plus convert_color to server.
func Register(server *mcp.Server) {
	for _, op := range ops.All {
		tool := &mcp.Tool{
			Name:        ToolName(op),
			Description: describe(op),
			Annotations: &mcp.ToolAnnotations{
				Title:          fmt.Sprintf("%s to %s", strings.ToUpper(op.From.String()), strings.ToUpper(op.To.String())),
				ReadOnlyHint:   true,
				IdempotentHint: true,
			},
		}
		if op.Text != nil {
			mcp.AddTool(server, tool, textHandler(op))
		} else {
			mcp.AddTool(server, tool, tripleHandler(op))
		}
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_color",
		Description: "Detect the notation of a color (hex, rgb() or hsl()) and convert it to the requested notation.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Convert Color",
			ReadOnlyHint:   true,
			IdempotentHint: true,
		},
	}, convertHandler)
}

// ToolName maps "hex-to-rgb" to "hex_to_rgb".
func ToolName(op ops.Op) string {
	return strings.ReplaceAll(op.Name, "-", "_")
}

func describe(op ops.Op) string {
	var from string
	switch op.From {
	case convert.FormatHex:
		from = "a hex color such as #ff8000 or f80"
	case convert.FormatRGB:
		from = "integer red, green and blue channels (0-255) given as a, b, c"
	default:
		from = "hue in degrees [0, 360), saturation and lightness in percent given as a, b, c"
	}

	var to string
	switch op.To {
	case convert.FormatHex:
		to = "#rrggbb"
	case convert.FormatRGB:
		to = "rgb(R, G, B)"
	default:
		to = "hsl(H, S%, L%)"
	}

	return fmt.Sprintf("Convert %s to %s.", from, to)
}

func textHandler(op ops.Op) mcp.ToolHandlerFor[HexInput, Output] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input HexInput) (*mcp.CallToolResult, Output, error) {
		out, err := op.Text(input.Hex)
		if err != nil {
			return nil, Output{}, fmt.Errorf("%s: %w", ToolName(op), err)
		}
		return nil, Output{Result: out}, nil
	}
}

func tripleHandler(op ops.Op) mcp.ToolHandlerFor[TripleInput, Output] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input TripleInput) (*mcp.CallToolResult, Output, error) {
		out, err := op.Triple(input.A, input.B, input.C)
		if err != nil {
			return nil, Output{}, fmt.Errorf("%s: %w", ToolName(op), err)
		}
		return nil, Output{Result: out}, nil
	}
}

func convertHandler(ctx context.Context, req *mcp.CallToolRequest, input ConvertInput) (*mcp.CallToolResult, Output, error) {
	to, err := convert.ParseFormat(input.To)
	if err != nil {
		return nil, Output{}, err
	}
	out, err := convert.Convert(input.Value, to)
	if err != nil {
		return nil, Output{}, fmt.Errorf("convert_color: %w", err)
	}
	return nil, Output{Result: out}, nil
}
