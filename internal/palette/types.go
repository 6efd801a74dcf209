// Package palette stores batch conversion results in a SQLite database.
package palette

import (
	"fmt"

	"github.com/MeKo-Tech/colorparser/convert"
)

// Metadata describes a palette database.
type Metadata struct {
	Name        string // Human-readable palette identifier
	Description string
	Source      string // File the palette was converted from
	Version     string
}

// ToMap converts Metadata to a map for database insertion.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	if m.Name != "" {
		result["name"] = m.Name
	}
	if m.Description != "" {
		result["description"] = m.Description
	}
	if m.Source != "" {
		result["source"] = m.Source
	}
	if m.Version != "" {
		result["version"] = m.Version
	}

	return result
}

// Entry holds every notation of one input color.
type Entry struct {
	Input string `json:"input" yaml:"input"`
	Hex   string `json:"hex" yaml:"hex"`
	RGB   string `json:"rgb" yaml:"rgb"`
	HSL   string `json:"hsl" yaml:"hsl"`
}

// EntryFor converts input into all three notations.
func EntryFor(input string) (Entry, error) {
	e := Entry{Input: input}

	targets := []struct {
		dst *string
		to  convert.Format
	}{
		{&e.Hex, convert.FormatHex},
		{&e.RGB, convert.FormatRGB},
		{&e.HSL, convert.FormatHSL},
	}
	for _, t := range targets {
		out, err := convert.Convert(input, t.to)
		if err != nil {
			return Entry{}, fmt.Errorf("failed to convert %q to %s: %w", input, t.to, err)
		}
		*t.dst = out
	}

	return e, nil
}
