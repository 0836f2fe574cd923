package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ludo-technologies/qube/domain"
	"github.com/ludo-technologies/qube/internal/config"
	"golang.org/x/sync/errgroup"
)

// Concurrency and timeout fallbacks when the performance config is unset
const (
	DefaultMaxConcurrency = 4
	DefaultTimeout        = 5 * time.Minute
)

// ScriptError records the failure of a single script's lint task
type ScriptError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e ScriptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e ScriptError) Unwrap() error {
	return e.Err
}

// ScanError aggregates every script that failed during a run. One failing
// script never stops the scan, so all failures surface together.
type ScanError struct {
	Failures []ScriptError
}

// Error implements the error interface
func (e *ScanError) Error() string {
	if len(e.Failures) == 0 {
		return "no errors"
	}
	if len(e.Failures) == 1 {
		return e.Failures[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d scripts failed:\n", len(e.Failures))
	for i, f := range e.Failures {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, f.Error())
	}
	return sb.String()
}

// Unwrap returns the first failure for errors.Is/As compatibility
func (e *ScanError) Unwrap() error {
	if len(e.Failures) == 0 {
		return nil
	}
	return e.Failures[0].Err
}

// ParallelExecutorImpl lints scripts concurrently with a bounded worker
// count and a run-wide timeout. The limits are fixed when the executor is
// built; a lint run never reconfigures itself mid-flight.
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
}

// NewParallelExecutor creates a parallel executor with defaults.
// Concurrency follows runtime.NumCPU().
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{
		maxConcurrency: runtime.NumCPU(),
		timeout:        DefaultTimeout,
	}
}

// NewParallelExecutorFromConfig creates a parallel executor from configuration
func NewParallelExecutorFromConfig(cfg *config.PerformanceConfig) *ParallelExecutorImpl {
	maxConcurrency := cfg.MaxGoroutines
	if maxConcurrency <= 0 {
		maxConcurrency = runtime.NumCPU()
	}
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ParallelExecutorImpl{
		maxConcurrency: maxConcurrency,
		timeout:        timeout,
	}
}

// NewParallelExecutorWithProgress creates a parallel executor with progress tracking
func NewParallelExecutorWithProgress(cfg *config.PerformanceConfig, pm domain.ProgressManager) *ParallelExecutorImpl {
	executor := NewParallelExecutorFromConfig(cfg)
	executor.progress = pm
	return executor
}

// Execute lints every enabled task, at most maxConcurrency at a time. A
// script failure is recorded and the remaining scripts still run; the
// collected failures come back as a single ScanError.
func (e *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	enabled := make([]domain.ExecutableTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	if len(enabled) == 0 {
		return nil
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var bar domain.TaskProgress = &NoOpTaskProgress{}
	if e.progress != nil {
		bar = e.progress.StartTask("linting", len(enabled))
	}
	defer bar.Complete()

	g, gCtx := errgroup.WithContext(timeoutCtx)
	g.SetLimit(e.maxConcurrency)

	var mu sync.Mutex
	var failures []ScriptError

	for _, t := range enabled {
		t := t
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			bar.Describe(t.Name())
			_, err := t.Execute(gCtx)
			bar.Increment(1)

			if err != nil {
				mu.Lock()
				failures = append(failures, ScriptError{Path: t.Name(), Err: err})
				mu.Unlock()
			}

			// Failures are collected above so every script still runs
			return nil
		})
	}

	_ = g.Wait()

	if len(failures) > 0 {
		return &ScanError{Failures: failures}
	}
	return nil
}
