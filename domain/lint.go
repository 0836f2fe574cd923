package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
	OutputFormatDOT  OutputFormat = "dot"
)

// SortCriteria represents the criteria for sorting file reports
type SortCriteria string

const (
	SortByPath   SortCriteria = "path"
	SortByDebt   SortCriteria = "debt"
	SortByIssues SortCriteria = "issues"
)

// Severity represents the ordered issue classification
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Level returns the numeric rank of a severity for comparison
func (s Severity) Level() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Issue represents a single reported problem in a source file
type Issue struct {
	// FilePath is the path of the file the issue was found in
	FilePath string `json:"file_path" yaml:"file_path"`

	// Line is the 1-based line number
	Line int `json:"line" yaml:"line"`

	// Severity is the issue classification
	Severity Severity `json:"severity" yaml:"severity"`

	// CheckID is the stable check identifier, e.g. "long-function"
	CheckID string `json:"check_id" yaml:"check_id"`

	// Message is the human-readable description
	Message string `json:"message" yaml:"message"`
}

// FunctionInfo describes a single scanned function
type FunctionInfo struct {
	Name          string `json:"name" yaml:"name"`
	StartLine     int    `json:"start_line" yaml:"start_line"`
	LineCount     int    `json:"line_count" yaml:"line_count"`
	ParamCount    int    `json:"param_count" yaml:"param_count"`
	MaxNesting    int    `json:"max_nesting" yaml:"max_nesting"`
	Complexity    int    `json:"complexity" yaml:"complexity"`
	IsEmpty       bool   `json:"is_empty,omitempty" yaml:"is_empty,omitempty"`
	HasReturnType bool   `json:"has_return_type" yaml:"has_return_type"`
}

// FileReport aggregates the analysis result for one file
type FileReport struct {
	FilePath      string         `json:"file_path" yaml:"file_path"`
	LineCount     int            `json:"line_count" yaml:"line_count"`
	Issues        []Issue        `json:"issues" yaml:"issues"`
	IgnoredIssues []Issue        `json:"ignored_issues,omitempty" yaml:"ignored_issues,omitempty"`
	Functions     []FunctionInfo `json:"functions,omitempty" yaml:"functions,omitempty"`
	Signals       []string       `json:"signals,omitempty" yaml:"signals,omitempty"`
	Dependencies  []string       `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	DebtScore     int            `json:"debt_score" yaml:"debt_score"`
}

// LintSummary provides aggregate statistics for a run
type LintSummary struct {
	FilesAnalyzed  int   `json:"files_analyzed" yaml:"files_analyzed"`
	TotalLines     int   `json:"total_lines" yaml:"total_lines"`
	TotalIssues    int   `json:"total_issues" yaml:"total_issues"`
	IgnoredIssues  int   `json:"ignored_issues" yaml:"ignored_issues"`
	CriticalCount  int   `json:"critical_count" yaml:"critical_count"`
	WarningCount   int   `json:"warning_count" yaml:"warning_count"`
	InfoCount      int   `json:"info_count" yaml:"info_count"`
	TotalDebtScore int   `json:"total_debt_score" yaml:"total_debt_score"`
	ExitCode       int   `json:"exit_code" yaml:"exit_code"`
	DurationMs     int64 `json:"duration_ms" yaml:"duration_ms"`
}

// HealthGrade maps the debt density (debt per 1000 lines) to a letter grade
func (s *LintSummary) HealthGrade() string {
	if s.TotalLines == 0 {
		return "A"
	}
	density := float64(s.TotalDebtScore) * 1000.0 / float64(s.TotalLines)
	switch {
	case density < 10:
		return "A"
	case density < 30:
		return "B"
	case density < 75:
		return "C"
	case density < 150:
		return "D"
	default:
		return "F"
	}
}

// LintRequest represents a request for lint analysis
type LintRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // Path to save output file (for HTML format)
	NoOpen       bool   // Don't auto-open HTML in browser
	ShowDetails  bool

	// Filtering and sorting
	MinSeverity Severity
	SortBy      SortCriteria

	// Configuration
	ConfigPath string

	// Analysis options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// LintResponse represents the complete analysis result
type LintResponse struct {
	Files   []FileReport `json:"files" yaml:"files"`
	Summary LintSummary  `json:"summary" yaml:"summary"`

	// Warnings and errors encountered while reading or analyzing files
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string      `json:"generated_at" yaml:"generated_at"`
	Version     string      `json:"version" yaml:"version"`
	Config      interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// AllIssues returns the accepted issues of every file in order
func (r *LintResponse) AllIssues() []Issue {
	var issues []Issue
	for _, f := range r.Files {
		issues = append(issues, f.Issues...)
	}
	return issues
}

// LintService defines the core business logic for lint analysis
type LintService interface {
	// Analyze performs lint analysis on the given request
	Analyze(ctx context.Context, req LintRequest) (*LintResponse, error)

	// AnalyzeFile analyzes a single GDScript file
	AnalyzeFile(ctx context.Context, filePath string, req LintRequest) (*LintResponse, error)
}

// FileReader defines GDScript file collection operations
type FileReader interface {
	CollectGDFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)
	ReadFile(path string) ([]byte, error)
	IsValidGDFile(path string) bool
	FileExists(path string) (bool, error)
}

// OutputFormatter defines the interface for formatting analysis results
type OutputFormatter interface {
	// Format formats the analysis response according to the specified format
	Format(response *LintResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *LintResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*LintRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *LintRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *LintRequest, override *LintRequest) *LintRequest
}
