// Package worker provides a parallel color conversion worker pool.
package worker

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MeKo-Tech/colorparser/convert"
)

// Converter converts a single color value into the target notation.
// This matches the signature of convert.Convert.
type Converter interface {
	Convert(value string, to convert.Format) (string, error)
}

// ConverterFunc adapts a plain function to Converter.
type ConverterFunc func(value string, to convert.Format) (string, error)

// Convert calls f.
func (f ConverterFunc) Convert(value string, to convert.Format) (string, error) {
	return f(value, to)
}

// Task represents a single conversion.
type Task struct {
	Input string
	Index int // position in the batch input
	To    convert.Format
}

// Result represents the outcome of a conversion task.
type Result struct {
	Task    Task
	Output  string
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called once per finished task, in completion order, from a
// single goroutine. completed counts r itself.
type ProgressFunc func(r Result, completed, total int)

// Config configures the worker pool.
type Config struct {
	Converter  Converter // defaults to convert.Convert
	OnProgress ProgressFunc
	Workers    int
}

// Pool manages parallel conversion.
type Pool struct {
	converter  Converter
	onProgress ProgressFunc
	workers    int
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	converter := cfg.Converter
	if converter == nil {
		converter = ConverterFunc(convert.Convert)
	}

	return &Pool{
		workers:    workers,
		converter:  converter,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns results in completion order.
// Tasks are processed in parallel by the configured number of workers.
// The function blocks until all tasks complete or the context is cancelled;
// tasks never handed to a worker after cancellation produce no result.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	go func() {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results = append(results, result)
			if p.onProgress != nil {
				p.onProgress(result, len(results), len(tasks))
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)

	<-done

	return results
}

// worker processes tasks from the task channel and sends results to the result channel.
func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{
				Task: task,
				Err:  ctx.Err(),
			}
			continue
		default:
		}

		start := time.Now()
		out, err := p.converter.Convert(task.Input, task.To)

		results <- Result{
			Task:    task,
			Output:  out,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}

// SortByIndex orders results by their task's input position.
func SortByIndex(results []Result) {
	slices.SortFunc(results, func(a, b Result) int {
		return cmp.Compare(a.Task.Index, b.Task.Index)
	})
}
