package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MeKo-Tech/colorparser/convert"
)

// Tally counts finished conversions: successes per target notation and
// failures per error kind.
type Tally struct {
	Converted  map[convert.Format]int
	Malformed  int // convert.ErrFormat
	OutOfRange int // convert.ErrRange
	Cancelled  int
	Other      int
}

// Add records one result.
func (t *Tally) Add(r Result) {
	switch {
	case r.Err == nil:
		if t.Converted == nil {
			t.Converted = make(map[convert.Format]int)
		}
		t.Converted[r.Task.To]++
	case errors.Is(r.Err, context.Canceled), errors.Is(r.Err, context.DeadlineExceeded):
		t.Cancelled++
	case convert.Kind(r.Err) == "format":
		t.Malformed++
	case convert.Kind(r.Err) == "range":
		t.OutOfRange++
	default:
		t.Other++
	}
}

// Succeeded is the number of successful conversions.
func (t Tally) Succeeded() int {
	n := 0
	for _, c := range t.Converted {
		n += c
	}
	return n
}

// Failed is the number of rejected or cancelled conversions.
func (t Tally) Failed() int {
	return t.Malformed + t.OutOfRange + t.Cancelled + t.Other
}

// targets renders "hex 2, hsl 1" in notation order, skipping zero counts.
func (t Tally) targets() string {
	var parts []string
	for _, f := range []convert.Format{convert.FormatHex, convert.FormatRGB, convert.FormatHSL} {
		if n := t.Converted[f]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", f, humanize.Comma(int64(n))))
		}
	}
	return strings.Join(parts, ", ")
}

// failures renders the non-zero failure kinds, e.g. "2 malformed, 1 out of range".
func (t Tally) failures() string {
	var parts []string
	for _, k := range []struct {
		n     int
		label string
	}{
		{t.Malformed, "malformed"},
		{t.OutOfRange, "out of range"},
		{t.Cancelled, "cancelled"},
		{t.Other, "other"},
	} {
		if k.n > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", humanize.Comma(int64(k.n)), k.label))
		}
	}
	return strings.Join(parts, ", ")
}

// Progress reports batch conversion progress on a single terminal line.
type Progress struct {
	start   time.Time
	out     io.Writer
	enabled bool

	mu        sync.Mutex
	total     int
	completed int
	tally     Tally
}

// NewProgress creates a tracker for total conversions. Nothing is printed
// unless enabled.
func NewProgress(total int, enabled bool) *Progress {
	return &Progress{
		start:   time.Now(),
		out:     os.Stderr,
		enabled: enabled,
		total:   total,
	}
}

// Record adds a finished conversion and redraws the line.
func (p *Progress) Record(r Result, completed, total int) {
	p.mu.Lock()
	p.tally.Add(r)
	p.completed = completed
	p.total = total
	line := p.lineLocked()
	p.mu.Unlock()

	if p.enabled {
		fmt.Fprint(p.out, line)
	}
}

// Callback returns a ProgressFunc for Pool.Config.
func (p *Progress) Callback() ProgressFunc {
	return p.Record
}

// Tally returns a copy of the current counts.
func (p *Progress) Tally() Tally {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := p.tally
	t.Converted = make(map[convert.Format]int, len(p.tally.Converted))
	for f, n := range p.tally.Converted {
		t.Converted[f] = n
	}
	return t
}

const barWidth = 24

func (p *Progress) lineLocked() string {
	pct := 100
	if p.total > 0 {
		pct = p.completed * 100 / p.total
	}
	filled := pct * barWidth / 100

	var sb strings.Builder
	fmt.Fprintf(&sb, "\r%3d%% [%s%s] %s/%s colors",
		pct, strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled),
		humanize.Comma(int64(p.completed)), humanize.Comma(int64(p.total)))
	if f := p.tally.failures(); f != "" {
		fmt.Fprintf(&sb, " (%s)", f)
	}
	fmt.Fprintf(&sb, " %s colors/sec", humanize.CommafWithDigits(rate(p.completed, time.Since(p.start)), 1))
	// Clear the tail of a longer previous line.
	sb.WriteString("    ")
	return sb.String()
}

// Done ends the progress line.
func (p *Progress) Done() {
	if p.enabled {
		fmt.Fprintln(p.out)
	}
}

// Summary describes the finished batch, e.g.
// "Converted 3/4 colors (hex 2, hsl 1), rejected 1 (1 malformed) in 1.2s (2.5 colors/sec)".
func (p *Progress) Summary() string {
	t := p.Tally()

	p.mu.Lock()
	total := p.total
	completed := p.completed
	p.mu.Unlock()

	elapsed := time.Since(p.start)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Converted %s/%s colors",
		humanize.Comma(int64(t.Succeeded())), humanize.Comma(int64(total)))
	if s := t.targets(); s != "" {
		fmt.Fprintf(&sb, " (%s)", s)
	}
	if failed := t.Failed(); failed > 0 {
		fmt.Fprintf(&sb, ", rejected %s (%s)", humanize.Comma(int64(failed)), t.failures())
	}
	if skipped := total - completed; skipped > 0 {
		fmt.Fprintf(&sb, ", %s not started", humanize.Comma(int64(skipped)))
	}
	fmt.Fprintf(&sb, " in %s (%s colors/sec)",
		elapsed.Round(100*time.Millisecond), humanize.CommafWithDigits(rate(completed, elapsed), 1))
	return sb.String()
}

func rate(n int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(n) / elapsed.Seconds()
}
