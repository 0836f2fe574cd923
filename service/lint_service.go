package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/ludo-technologies/qube/domain"
	"github.com/ludo-technologies/qube/internal/analyzer"
	"github.com/ludo-technologies/qube/internal/config"
	"github.com/ludo-technologies/qube/internal/version"
)

// LintServiceImpl implements the LintService interface
type LintServiceImpl struct {
	config   *config.Config
	progress domain.ProgressManager
}

// NewLintService creates a new lint service implementation
func NewLintService(cfg *config.Config) *LintServiceImpl {
	return &LintServiceImpl{config: cfg}
}

// NewLintServiceWithProgress creates a new lint service with progress reporting
func NewLintServiceWithProgress(cfg *config.Config, pm domain.ProgressManager) *LintServiceImpl {
	return &LintServiceImpl{
		config:   cfg,
		progress: pm,
	}
}

// fileTask analyzes one file and stores its result in a shared slot
type fileTask struct {
	path    string
	cfg     *config.Config
	slot    *[]*analyzer.FileResult
	mu      *sync.Mutex
	enabled bool
}

func (t *fileTask) Name() string    { return t.path }
func (t *fileTask) IsEnabled() bool { return t.enabled }

func (t *fileTask) Execute(_ context.Context) (interface{}, error) {
	source, err := os.ReadFile(t.path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(t.path, err)
	}

	result := analyzer.Analyze(string(source), t.path, t.cfg)

	t.mu.Lock()
	*t.slot = append(*t.slot, result)
	t.mu.Unlock()

	return result, nil
}

// Analyze performs lint analysis on every path in the request. Paths are
// expected to be concrete GDScript files; directory expansion happens in the
// application layer.
func (s *LintServiceImpl) Analyze(ctx context.Context, req domain.LintRequest) (*domain.LintResponse, error) {
	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no files to analyze", nil)
	}

	start := time.Now()

	var mu sync.Mutex
	var results []*analyzer.FileResult

	tasks := make([]domain.ExecutableTask, 0, len(req.Paths))
	for _, path := range req.Paths {
		tasks = append(tasks, &fileTask{
			path:    path,
			cfg:     s.config,
			slot:    &results,
			mu:      &mu,
			enabled: !s.config.IsPathExcluded(path),
		})
	}

	executor := NewParallelExecutorWithProgress(&s.config.Performance, s.progress)

	var errors []string
	if err := executor.Execute(ctx, tasks); err != nil {
		if scan, ok := err.(*ScanError); ok {
			for _, failure := range scan.Failures {
				errors = append(errors, failure.Error())
			}
		} else {
			return nil, domain.NewAnalysisError("analysis failed", err)
		}
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("lint analysis cancelled: %w", ctx.Err())
	default:
	}

	if len(results) == 0 {
		return nil, domain.NewAnalysisError("no files could be analyzed", nil)
	}

	return s.buildResponse(results, req, errors, time.Since(start)), nil
}

// AnalyzeFile analyzes a single GDScript file
func (s *LintServiceImpl) AnalyzeFile(ctx context.Context, filePath string, req domain.LintRequest) (*domain.LintResponse, error) {
	req.Paths = []string{filePath}
	return s.Analyze(ctx, req)
}

func (s *LintServiceImpl) buildResponse(results []*analyzer.FileResult, req domain.LintRequest, errors []string, elapsed time.Duration) *domain.LintResponse {
	agg := analyzer.Aggregate(results, elapsed)

	var warnings []string
	files := make([]domain.FileReport, 0, len(agg.Files))
	for _, fr := range agg.Files {
		files = append(files, toFileReport(fr))
		for _, line := range fr.UnmatchedIgnoreStarts {
			warnings = append(warnings, fmt.Sprintf("%s:%d: ignore-block-start without matching end", fr.FilePath, line))
		}
	}

	// Exit code and counts reflect all accepted issues; the minimum severity
	// only filters what is displayed.
	summary := domain.LintSummary{
		FilesAnalyzed:  len(files),
		TotalLines:     agg.TotalLines,
		TotalIssues:    agg.TotalIssues,
		IgnoredIssues:  agg.IgnoredIssues,
		CriticalCount:  agg.CriticalCount,
		WarningCount:   agg.WarningCount,
		InfoCount:      agg.InfoCount,
		TotalDebtScore: agg.TotalDebt,
		ExitCode:       agg.ExitCode,
		DurationMs:     elapsed.Milliseconds(),
	}

	filterSeverity(files, req.MinSeverity)
	sortFileReports(files, req.SortBy)

	return &domain.LintResponse{
		Files:       files,
		Summary:     summary,
		Warnings:    warnings,
		Errors:      errors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		Config:      s.config,
	}
}

// toFileReport converts an engine result into the domain model
func toFileReport(fr *analyzer.FileResult) domain.FileReport {
	report := domain.FileReport{
		FilePath:     fr.FilePath,
		LineCount:    fr.LineCount,
		Signals:      fr.Signals,
		Dependencies: fr.Dependencies,
		DebtScore:    fr.DebtScore,
	}

	for _, issue := range fr.Issues {
		report.Issues = append(report.Issues, toDomainIssue(issue))
	}
	for _, issue := range fr.IgnoredIssues {
		report.IgnoredIssues = append(report.IgnoredIssues, toDomainIssue(issue))
	}
	for _, fn := range fr.Functions {
		report.Functions = append(report.Functions, domain.FunctionInfo{
			Name:          fn.Name,
			StartLine:     fn.StartLine,
			LineCount:     fn.LineCount,
			ParamCount:    fn.ParamCount,
			MaxNesting:    fn.MaxNesting,
			Complexity:    fn.Complexity,
			IsEmpty:       fn.IsEmpty,
			HasReturnType: fn.HasReturnType,
		})
	}

	return report
}

func toDomainIssue(issue analyzer.Issue) domain.Issue {
	return domain.Issue{
		FilePath: issue.FilePath,
		Line:     issue.Line,
		Severity: toDomainSeverity(issue.Severity),
		CheckID:  string(issue.Check),
		Message:  issue.Message,
	}
}

func toDomainSeverity(s analyzer.Severity) domain.Severity {
	switch s {
	case analyzer.SeverityCritical:
		return domain.SeverityCritical
	case analyzer.SeverityWarning:
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}

// filterSeverity drops displayed issues below the minimum severity in place
func filterSeverity(files []domain.FileReport, min domain.Severity) {
	if min == "" || min == domain.SeverityInfo {
		return
	}
	minLevel := min.Level()
	for i := range files {
		kept := files[i].Issues[:0]
		for _, issue := range files[i].Issues {
			if issue.Severity.Level() >= minLevel {
				kept = append(kept, issue)
			}
		}
		files[i].Issues = kept
	}
}

// sortFileReports orders file reports by the requested criteria. Debt and
// issue counts sort descending with path as tie breaker.
func sortFileReports(files []domain.FileReport, by domain.SortCriteria) {
	switch by {
	case domain.SortByDebt:
		sort.SliceStable(files, func(i, j int) bool {
			if files[i].DebtScore != files[j].DebtScore {
				return files[i].DebtScore > files[j].DebtScore
			}
			return files[i].FilePath < files[j].FilePath
		})
	case domain.SortByIssues:
		sort.SliceStable(files, func(i, j int) bool {
			if len(files[i].Issues) != len(files[j].Issues) {
				return len(files[i].Issues) > len(files[j].Issues)
			}
			return files[i].FilePath < files[j].FilePath
		})
	default:
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].FilePath < files[j].FilePath
		})
	}
}
