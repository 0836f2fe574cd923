package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/ludo-technologies/qube/internal/config"
	"github.com/ludo-technologies/qube/internal/constants"
)

// FileResult is the complete analysis outcome for one file
type FileResult struct {
	FilePath  string
	LineCount int

	// Issues are the accepted issues after suppression, ordered by line
	Issues []Issue

	// IgnoredIssues are the issues dropped by suppression directives,
	// ordered by line
	IgnoredIssues []Issue

	Functions    []FunctionInfo
	Signals      []string
	Dependencies []string

	// UnmatchedIgnoreStarts lists lines of block-start directives without a
	// matching end
	UnmatchedIgnoreStarts []int

	// DebtScore is computed from raw metrics regardless of suppression
	DebtScore int
}

// AnalysisResult aggregates the results of a whole run
type AnalysisResult struct {
	Files         []*FileResult
	TotalLines    int
	TotalIssues   int
	IgnoredIssues int
	CriticalCount int
	WarningCount  int
	InfoCount     int
	TotalDebt     int
	ExitCode      int
	Duration      time.Duration
}

// AllIssues returns every accepted issue of the run in file order
func (r *AnalysisResult) AllIssues() []Issue {
	var issues []Issue
	for _, f := range r.Files {
		issues = append(issues, f.Issues...)
	}
	return issues
}

// AllIgnoredIssues returns every suppressed issue of the run in file order
func (r *AnalysisResult) AllIgnoredIssues() []Issue {
	var issues []Issue
	for _, f := range r.Files {
		issues = append(issues, f.IgnoredIssues...)
	}
	return issues
}

// SplitLines breaks source text into lines. CRLF endings are normalized, and
// a trailing newline does not produce a final empty line. Empty input has
// zero lines.
func SplitLines(source string) []string {
	if source == "" {
		return nil
	}

	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Analyze runs every enabled check against a single file's source text and
// partitions the resulting issues by the file's suppression directives.
func Analyze(source, filePath string, cfg *config.Config) *FileResult {
	lines := SplitLines(source)

	resolver := NewIgnoreResolver(lines)
	lineRes := NewLineScanner(cfg).Scan(filePath, lines)
	funcRes := NewFunctionScanner(cfg).Scan(filePath, lines)
	classIssues := NewClassScanner(cfg).Scan(filePath, funcRes.Functions, len(lineRes.Signals))

	candidates := make([]Issue, 0, len(lineRes.Issues)+len(funcRes.Issues)+len(classIssues))
	candidates = append(candidates, lineRes.Issues...)
	candidates = append(candidates, funcRes.Issues...)
	candidates = append(candidates, classIssues...)

	result := &FileResult{
		FilePath:              filePath,
		LineCount:             len(lines),
		Functions:             funcRes.Functions,
		Signals:               lineRes.Signals,
		Dependencies:          lineRes.Dependencies,
		UnmatchedIgnoreStarts: resolver.UnmatchedStarts,
		DebtScore:             ComputeDebtScore(len(lines), funcRes.Functions, cfg.Thresholds),
	}

	for _, issue := range candidates {
		if resolver.ShouldIgnore(issue.Line, issue.Check) {
			result.IgnoredIssues = append(result.IgnoredIssues, issue)
		} else {
			result.Issues = append(result.Issues, issue)
		}
	}

	sortIssues(result.Issues)
	sortIssues(result.IgnoredIssues)

	return result
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Check < issues[j].Check
	})
}

// Aggregate combines per-file results into run totals. Files are ordered by
// path; the exit code reflects the worst accepted severity.
func Aggregate(files []*FileResult, elapsed time.Duration) *AnalysisResult {
	sorted := make([]*FileResult, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].FilePath < sorted[j].FilePath
	})

	agg := &AnalysisResult{
		Files:    sorted,
		Duration: elapsed,
	}

	for _, f := range sorted {
		agg.TotalLines += f.LineCount
		agg.TotalIssues += len(f.Issues)
		agg.IgnoredIssues += len(f.IgnoredIssues)
		agg.TotalDebt += f.DebtScore

		for _, issue := range f.Issues {
			switch issue.Severity {
			case SeverityCritical:
				agg.CriticalCount++
			case SeverityWarning:
				agg.WarningCount++
			case SeverityInfo:
				agg.InfoCount++
			}
		}
	}

	switch {
	case agg.CriticalCount > 0:
		agg.ExitCode = constants.ExitCodeCritical
	case agg.WarningCount > 0:
		agg.ExitCode = constants.ExitCodeWarning
	default:
		agg.ExitCode = constants.ExitCodeClean
	}

	return agg
}
