package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/colorparser/convert"
	"github.com/MeKo-Tech/colorparser/internal/palette"
	"github.com/MeKo-Tech/colorparser/internal/worker"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert a file of colors",
	Long: `Convert one color per line from --input (or stdin with "-").
Blank lines and lines starting with // are skipped.

Output formats:
  text    input<TAB>output, one per line
  json    array of {line, input, output, error}
  yaml    same records as json
  sqlite  palette database with every notation of each color (needs --output)`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("input", "i", "-", "Input file with one color per line (- for stdin)")
	batchCmd.Flags().StringP("output", "o", "", "Output file (default stdout; required for sqlite)")
	batchCmd.Flags().StringP("to", "t", "rgb", "Target notation: hex, rgb or hsl (ignored for sqlite)")
	batchCmd.Flags().String("format", "text", "Output format: text, json, yaml or sqlite")
	batchCmd.Flags().String("name", "", "Palette name stored in sqlite metadata (default: input file name)")
	batchCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().Bool("progress", false, "Show progress bar during conversion")
	batchCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some colors fail to convert")

	mustBind(batchCmd,
		[2]string{"batch.input", "input"},
		[2]string{"batch.output", "output"},
		[2]string{"batch.to", "to"},
		[2]string{"batch.format", "format"},
		[2]string{"batch.name", "name"},
		[2]string{"batch.workers", "workers"},
		[2]string{"batch.progress", "progress"},
		[2]string{"batch.allow_failures", "allow-failures"},
	)
}

// batchRecord is one converted line in json/yaml output.
type batchRecord struct {
	Line   int    `json:"line" yaml:"line"`
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputPath := viper.GetString("batch.input")
	outputPath := viper.GetString("batch.output")
	format := viper.GetString("batch.format")
	name := viper.GetString("batch.name")
	workers := viper.GetInt("batch.workers")
	showProgress := viper.GetBool("batch.progress")
	allowFailures := viper.GetBool("batch.allow_failures")

	if logger == nil {
		initLogging()
	}

	to, err := convert.ParseFormat(viper.GetString("batch.to"))
	if err != nil {
		return err
	}

	switch format {
	case "text", "json", "yaml":
	case "sqlite":
		if outputPath == "" {
			return fmt.Errorf("--output is required for sqlite format")
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	tasks, err := readTasks(cmd.InOrStdin(), inputPath, to)
	if err != nil {
		return err
	}

	logger.Info("Starting batch conversion",
		"input", inputPath,
		"colors", len(tasks),
		"to", to.String(),
		"format", format,
		"workers", workers,
	)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	progress := worker.NewProgress(len(tasks), showProgress)
	pool := worker.New(worker.Config{
		Workers:    workers,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()
	worker.SortByIndex(results)

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Debug("Conversion failed", "line", r.Task.Index, "input", r.Task.Input, "error", r.Err)
		}
	}
	logger.Info(progress.Summary())

	if format == "sqlite" {
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		}
		if err := writePalette(outputPath, palette.Metadata{
			Name:    name,
			Source:  inputPath,
			Version: Version,
		}, results); err != nil {
			return err
		}
	} else {
		if err := writeOutput(cmd.OutOrStdout(), outputPath, format, results); err != nil {
			return err
		}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("batch conversion interrupted: %w", ctx.Err())
	}
	if failedCount > 0 {
		if allowFailures {
			logger.Warn("Some colors failed to convert, but continuing due to --allow-failures flag", "failed_count", failedCount)
		} else {
			return fmt.Errorf("%d of %d colors failed to convert", failedCount, len(tasks))
		}
	}

	return nil
}

// readTasks reads one task per non-blank, non-comment line. Task.Index is the
// 1-based line number.
func readTasks(stdin io.Reader, path string, to convert.Format) ([]worker.Task, error) {
	r := stdin
	if path != "-" && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var tasks []worker.Task
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		tasks = append(tasks, worker.Task{Index: line, Input: text, To: to})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return tasks, nil
}

func toRecords(results []worker.Result) []batchRecord {
	records := make([]batchRecord, 0, len(results))
	for _, r := range results {
		rec := batchRecord{Line: r.Task.Index, Input: r.Task.Input, Output: r.Output}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		}
		records = append(records, rec)
	}
	return records
}

func writeOutput(stdout io.Writer, path, format string, results []worker.Result) error {
	if path == "" {
		if err := writeResults(stdout, format, results); err != nil {
			return fmt.Errorf("failed to write %s output: %w", format, err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := writeResults(f, format, results); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s output: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

func writeResults(w io.Writer, format string, results []worker.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toRecords(results))

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toRecords(results)); err != nil {
			return err
		}
		return enc.Close()

	case "text":
		bw := bufio.NewWriter(w)
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(bw, "%s\terror: %v\n", r.Task.Input, r.Err)
				continue
			}
			fmt.Fprintf(bw, "%s\t%s\n", r.Task.Input, r.Output)
		}
		return bw.Flush()

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// writePalette stores every successfully converted input with all three notations.
func writePalette(path string, meta palette.Metadata, results []worker.Result) error {
	w, err := palette.New(path, meta)
	if err != nil {
		return fmt.Errorf("failed to create palette: %w", err)
	}

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		entry, err := palette.EntryFor(r.Task.Input)
		if err != nil {
			w.Close()
			return err
		}
		if err := w.Write(entry); err != nil {
			w.Close()
			return fmt.Errorf("failed to write palette entry: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close palette: %w", err)
	}

	logger.Info("Palette written", "output", path)
	return nil
}

