package worker

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MeKo-Tech/colorparser/convert"
)

// mockConverter simulates slow conversions for testing
type mockConverter struct {
	delay     time.Duration
	failInput map[string]bool
	callCount atomic.Int32
}

func (m *mockConverter) Convert(value string, to convert.Format) (string, error) {
	m.callCount.Add(1)
	time.Sleep(m.delay)

	if m.failInput != nil && m.failInput[value] {
		return "", errors.New("simulated failure")
	}
	return value + "->" + to.String(), nil
}

func TestPool_BasicExecution(t *testing.T) {
	conv := &mockConverter{delay: 10 * time.Millisecond}

	pool := New(Config{
		Workers:   2,
		Converter: conv,
	})

	tasks := []Task{
		{Index: 0, Input: "#fff", To: convert.FormatRGB},
		{Index: 1, Input: "#000", To: convert.FormatRGB},
		{Index: 2, Input: "#f00", To: convert.FormatHSL},
	}

	results := pool.Run(context.Background(), tasks)

	if len(results) != len(tasks) {
		t.Errorf("Expected %d results, got %d", len(tasks), len(results))
	}

	for _, r := range results {
		if r.Err != nil {
			t.Errorf("Unexpected error for %s: %v", r.Task.Input, r.Err)
		}
		if want := r.Task.Input + "->" + r.Task.To.String(); r.Output != want {
			t.Errorf("Expected output %q, got %q", want, r.Output)
		}
	}

	if conv.callCount.Load() != int32(len(tasks)) {
		t.Errorf("Expected %d converter calls, got %d", len(tasks), conv.callCount.Load())
	}
}

func TestPool_DefaultConverter(t *testing.T) {
	pool := New(Config{Workers: 3})

	tasks := []Task{
		{Index: 0, Input: "#ff0000", To: convert.FormatHSL},
		{Index: 1, Input: "rgb(0, 255, 0)", To: convert.FormatHex},
		{Index: 2, Input: "hsl(0, 0%, 50%)", To: convert.FormatRGB},
		{Index: 3, Input: "#ff", To: convert.FormatRGB},
	}

	results := pool.Run(context.Background(), tasks)
	SortByIndex(results)

	want := []string{"hsl(0, 100%, 50%)", "#00ff00", "rgb(128, 128, 128)", ""}
	for i, r := range results {
		if r.Task.Index != i {
			t.Fatalf("results not sorted: position %d holds task %d", i, r.Task.Index)
		}
		if r.Output != want[i] {
			t.Errorf("task %d: expected %q, got %q", i, want[i], r.Output)
		}
	}
	if !errors.Is(results[3].Err, convert.ErrFormat) {
		t.Errorf("Expected format error for #ff, got %v", results[3].Err)
	}
}

func TestPool_Parallelism(t *testing.T) {
	conv := &mockConverter{delay: 50 * time.Millisecond}

	pool := New(Config{
		Workers:   4,
		Converter: conv,
	})

	tasks := make([]Task, 8)
	for i := range tasks {
		tasks[i] = Task{Index: i, Input: "#fff"}
	}

	start := time.Now()
	results := pool.Run(context.Background(), tasks)
	elapsed := time.Since(start)

	// With 4 workers and 8 tasks at 50ms each, should take ~100ms (2 batches)
	maxExpected := 300 * time.Millisecond
	if elapsed > maxExpected {
		t.Errorf("Expected parallel execution in ~100ms, took %v", elapsed)
	}

	if len(results) != len(tasks) {
		t.Errorf("Expected %d results, got %d", len(tasks), len(results))
	}
}

func TestPool_ErrorHandling(t *testing.T) {
	conv := &mockConverter{
		delay:     5 * time.Millisecond,
		failInput: map[string]bool{"bad": true},
	}

	pool := New(Config{
		Workers:   2,
		Converter: conv,
	})

	tasks := []Task{
		{Index: 0, Input: "#fff"},
		{Index: 1, Input: "bad"},
		{Index: 2, Input: "#000"},
	}

	results := pool.Run(context.Background(), tasks)

	if len(results) != len(tasks) {
		t.Errorf("Expected %d results, got %d", len(tasks), len(results))
	}

	var successCount, failCount int
	for _, r := range results {
		if r.Err != nil {
			failCount++
			if r.Task.Input != "bad" {
				t.Errorf("Unexpected failure for %s", r.Task.Input)
			}
		} else {
			successCount++
		}
	}

	if successCount != 2 {
		t.Errorf("Expected 2 successes, got %d", successCount)
	}
	if failCount != 1 {
		t.Errorf("Expected 1 failure, got %d", failCount)
	}
}

func TestPool_Cancellation(t *testing.T) {
	conv := &mockConverter{delay: 100 * time.Millisecond}

	pool := New(Config{
		Workers:   2,
		Converter: conv,
	})

	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = Task{Index: i, Input: "#fff"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := pool.Run(ctx, tasks)
	elapsed := time.Since(start)

	// In-flight conversions finish, everything queued behind them is cancelled.
	if elapsed > 400*time.Millisecond {
		t.Errorf("Expected early cancellation, took %v", elapsed)
	}

	var cancelledCount int
	for _, r := range results {
		if r.Err != nil && errors.Is(r.Err, context.Canceled) {
			cancelledCount++
		}
	}
	if int(conv.callCount.Load()) >= len(tasks) {
		t.Errorf("Expected fewer than %d conversions after cancel, got %d", len(tasks), conv.callCount.Load())
	}

	t.Logf("Completed with %d results (%d cancelled) in %v", len(results), cancelledCount, elapsed)
}

func TestPool_ProgressCallback(t *testing.T) {
	conv := &mockConverter{delay: time.Millisecond}

	// The callback runs on the collector goroutine only, so plain variables
	// are safe here.
	var completedSeq []int
	var seen []string
	var lastTotal int

	pool := New(Config{
		Workers:   2,
		Converter: conv,
		OnProgress: func(r Result, completed, total int) {
			completedSeq = append(completedSeq, completed)
			seen = append(seen, r.Task.Input)
			lastTotal = total
		},
	})

	tasks := []Task{
		{Index: 0, Input: "#fff"},
		{Index: 1, Input: "#000"},
		{Index: 2, Input: "#f00"},
	}

	results := pool.Run(context.Background(), tasks)

	if want := []int{1, 2, 3}; !slices.Equal(completedSeq, want) {
		t.Errorf("Expected completed sequence %v, got %v", want, completedSeq)
	}
	if lastTotal != len(tasks) {
		t.Errorf("Expected lastTotal=%d, got %d", len(tasks), lastTotal)
	}
	for i, r := range results {
		if seen[i] != r.Task.Input {
			t.Errorf("Callback %d saw %q, result order has %q", i, seen[i], r.Task.Input)
		}
	}
}

func TestPool_EmptyTasks(t *testing.T) {
	conv := &mockConverter{}

	pool := New(Config{
		Workers:   2,
		Converter: conv,
	})

	results := pool.Run(context.Background(), nil)

	if len(results) != 0 {
		t.Errorf("Expected 0 results for empty tasks, got %d", len(results))
	}
	if conv.callCount.Load() != 0 {
		t.Errorf("Expected 0 converter calls for empty tasks, got %d", conv.callCount.Load())
	}
}
