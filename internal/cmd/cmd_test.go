package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/colorparser/convert"
	"github.com/MeKo-Tech/colorparser/internal/palette"
	"github.com/MeKo-Tech/colorparser/internal/worker"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestJoinArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single", []string{"255,0,0"}, "255,0,0"},
		{"functional", []string{"rgb(1, 2, 3)"}, "rgb(1, 2, 3)"},
		{"three", []string{"255", "128", "0"}, "255,128,0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinArgs(tt.args))
		})
	}
}

func TestOpCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"hex to rgb", []string{"hex-to-rgb", "#ff0000"}, "rgb(255, 0, 0)\n"},
		{"short hex to rgb", []string{"hex-to-rgb", "0f0"}, "rgb(0, 255, 0)\n"},
		{"rgb to hex joined", []string{"rgb-to-hex", "255,128,0"}, "#ff8000\n"},
		{"rgb to hex separate", []string{"rgb-to-hex", "255", "128", "0"}, "#ff8000\n"},
		{"rgb to hsl", []string{"rgb-to-hsl", "rgb(0, 0, 255)"}, "hsl(240, 100%, 50%)\n"},
		{"hsl to rgb", []string{"hsl-to-rgb", "120,100,50"}, "rgb(0, 255, 0)\n"},
		{"hex to hsl", []string{"hex-to-hsl", "#ffffff"}, "hsl(0, 0%, 100%)\n"},
		{"hsl to hex", []string{"hsl-to-hex", "hsl(120, 100%, 25%)"}, "#008000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestOpCommandErrors(t *testing.T) {
	_, err := execute(t, "rgb-to-hex", "256,0,0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, convert.ErrRange))

	_, err = execute(t, "hex-to-rgb", "#gg0000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, convert.ErrFormat))

	_, err = execute(t, "rgb-to-hex", "1", "2")
	assert.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	out, err := execute(t, "convert", "#f80", "--to", "hsl")
	require.NoError(t, err)
	assert.Equal(t, "hsl(32, 100%, 50%)\n", out)

	out, err = execute(t, "convert", "hsl(0, 100%, 50%)", "--to", "hex")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000\n", out)

	_, err = execute(t, "convert", "#f80", "--to", "cmyk")
	assert.Error(t, err)
}

func TestReadTasks(t *testing.T) {
	input := "#f00\n\n  // a comment\n  rgb(0, 128, 0)  \nhsl(240, 100%, 50%)\n"

	tasks, err := readTasks(strings.NewReader(input), "-", convert.FormatHex)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, worker.Task{Index: 1, Input: "#f00", To: convert.FormatHex}, tasks[0])
	assert.Equal(t, worker.Task{Index: 4, Input: "rgb(0, 128, 0)", To: convert.FormatHex}, tasks[1])
	assert.Equal(t, 5, tasks[2].Index)
}

func TestReadTasksMissingFile(t *testing.T) {
	_, err := readTasks(nil, filepath.Join(t.TempDir(), "missing.txt"), convert.FormatRGB)
	assert.Error(t, err)
}

func sampleResults() []worker.Result {
	return []worker.Result{
		{Task: worker.Task{Index: 1, Input: "#f00"}, Output: "rgb(255, 0, 0)"},
		{Task: worker.Task{Index: 3, Input: "nope"}, Err: errors.New("invalid color format: nope")},
	}
}

func TestWriteResultsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, "text", sampleResults()))

	assert.Equal(t, "#f00\trgb(255, 0, 0)\nnope\terror: invalid color format: nope\n", buf.String())
}

func TestWriteResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, "json", sampleResults()))

	var got []batchRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []batchRecord{
		{Line: 1, Input: "#f00", Output: "rgb(255, 0, 0)"},
		{Line: 3, Input: "nope", Error: "invalid color format: nope"},
	}, got)
}

func TestWriteResultsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, "yaml", sampleResults()))

	var got []batchRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "#f00", got[0].Input)
	assert.Equal(t, "rgb(255, 0, 0)", got[0].Output)
	assert.Equal(t, 3, got[1].Line)
	assert.Equal(t, "invalid color format: nope", got[1].Error)
}

func TestWriteResultsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeResults(&buf, "csv", sampleResults()))
}

func TestBatchCommandFailures(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "colors.txt")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte("#f00\nnope\n#00f\n"), 0o644))

	_, err := execute(t, "batch", "--input", in, "--output", out, "--to", "hex",
		"--format", "json", "--workers", "2", "--allow-failures=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 colors failed")

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var got []batchRecord
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "#ff0000", got[0].Output)
	assert.NotEmpty(t, got[1].Error)
	assert.Equal(t, "#0000ff", got[2].Output)
}

func TestBatchCommandSQLite(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "colors.txt")
	db := filepath.Join(dir, "palette.db")
	require.NoError(t, os.WriteFile(in, []byte("#f00\n// skip\nrgb(0, 128, 0)\nnope\n"), 0o644))

	_, err := execute(t, "batch", "--input", in, "--output", db, "--to", "rgb",
		"--format", "sqlite", "--workers", "2", "--allow-failures=true")
	require.NoError(t, err)

	r, err := palette.OpenReader(db)
	require.NoError(t, err)
	defer r.Close()

	entries, err := r.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	e, err := r.Lookup("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "#f00", e.Input)
	assert.Equal(t, "hsl(0, 100%, 50%)", e.HSL)

	meta, err := r.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "colors", meta.Name)
}

func TestSwatchCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "swatch.png")

	_, err := execute(t, "swatch", "#336699", "--output", out, "--size", "32", "--label=false")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeOutput(nil, path, "text", sampleResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#f00\trgb(255, 0, 0)\nnope\terror: invalid color format: nope\n", string(data))
}

func TestWriteOutputReportsFileErrors(t *testing.T) {
	missingDir := filepath.Join(t.TempDir(), "missing", "out.json")
	assert.Error(t, writeOutput(nil, missingDir, "json", sampleResults()))

	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	err := writeOutput(nil, "/dev/full", "text", sampleResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write text output")
}
