package service

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/qube/domain"
	"github.com/schollz/progressbar/v3"
)

// scriptProgress renders the scan progress bar on stderr. A lint run drives a
// single bar (one tick per script), so the manager tracks the active bar
// rather than a task list.
type scriptProgress struct {
	writer io.Writer
	active *progressbar.ProgressBar
}

// NewProgressManager returns the progress manager for a lint run. Bars are
// rendered only when explicitly enabled and stderr is an interactive
// terminal; quiet mode, CI, and redirected output all get the silent manager.
func NewProgressManager(enabled bool) domain.ProgressManager {
	if !enabled || !IsInteractiveEnvironment() {
		return &NoOpProgressManager{}
	}
	return &scriptProgress{writer: os.Stderr}
}

// StartTask opens a bar sized to the number of scripts in the run. The bar
// is cleared when it finishes so the report is not interleaved with a stale
// bar on stderr.
func (pm *scriptProgress) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(24),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionClearOnFinish(),
	)
	pm.active = bar
	return &scriptTick{bar: bar}
}

// IsInteractive returns true if progress bars should be shown
func (pm *scriptProgress) IsInteractive() bool {
	return true
}

// Close finishes the active bar when a run ends before Complete was called
func (pm *scriptProgress) Close() {
	if pm.active != nil {
		_ = pm.active.Finish()
		pm.active = nil
	}
}

// scriptTick advances the bar one script at a time
type scriptTick struct {
	bar *progressbar.ProgressBar
}

// Increment adds n to the current progress
func (tp *scriptTick) Increment(n int) {
	_ = tp.bar.Add(n)
}

// Describe puts the script currently being scanned on the bar. Only the base
// name is shown; full paths make the bar wrap on narrow terminals.
func (tp *scriptTick) Describe(description string) {
	tp.bar.Describe(filepath.Base(description))
}

// Complete marks the task as finished
func (tp *scriptTick) Complete() {
	_ = tp.bar.Finish()
}

// NoOpProgressManager implements ProgressManager with no-op methods
type NoOpProgressManager struct{}

// StartTask returns a no-op task progress
func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

// IsInteractive returns false for no-op manager
func (pm *NoOpProgressManager) IsInteractive() bool {
	return false
}

// Close is a no-op
func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress implements TaskProgress with no-op methods
type NoOpTaskProgress struct{}

// Increment is a no-op
func (tp *NoOpTaskProgress) Increment(_ int) {}

// Describe is a no-op
func (tp *NoOpTaskProgress) Describe(_ string) {}

// Complete is a no-op
func (tp *NoOpTaskProgress) Complete() {}
