package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ludo-technologies/qube/domain"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Format formats the analysis response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.LintResponse, format domain.OutputFormat) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(response, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.LintResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return f.writeYAML(response, writer)
	case domain.OutputFormatCSV:
		return f.writeCSV(response, writer)
	case domain.OutputFormatHTML:
		return f.writeHTML(response, writer)
	case domain.OutputFormatDOT:
		return NewDOTFormatter(nil).Write(response, writer)
	default:
		return domain.NewOutputError(fmt.Sprintf("unsupported output format: %s", format), nil)
	}
}

func (f *OutputFormatterImpl) writeYAML(response *domain.LintResponse, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(response)
}

// writeCSV writes one row per accepted issue
func (f *OutputFormatterImpl) writeCSV(response *domain.LintResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	if err := w.Write([]string{"file_path", "line", "severity", "check_id", "message"}); err != nil {
		return err
	}

	for _, file := range response.Files {
		for _, issue := range file.Issues {
			record := []string{
				issue.FilePath,
				strconv.Itoa(issue.Line),
				string(issue.Severity),
				issue.CheckID,
				issue.Message,
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// writeText writes a human-readable report
func (f *OutputFormatterImpl) writeText(response *domain.LintResponse, writer io.Writer) error {
	s := response.Summary

	fmt.Fprintf(writer, "\n=== GDScript Lint Report ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files analyzed: %d\n", s.FilesAnalyzed)
	fmt.Fprintf(writer, "  Total lines: %d\n", s.TotalLines)
	fmt.Fprintf(writer, "  Issues: %d (critical: %d, warning: %d, info: %d)\n",
		s.TotalIssues, s.CriticalCount, s.WarningCount, s.InfoCount)
	fmt.Fprintf(writer, "  Suppressed issues: %d\n", s.IgnoredIssues)
	fmt.Fprintf(writer, "  Debt score: %d\n", s.TotalDebtScore)
	fmt.Fprintf(writer, "  Health grade: %s\n\n", s.HealthGrade())

	for _, file := range response.Files {
		if len(file.Issues) == 0 {
			continue
		}
		fmt.Fprintf(writer, "%s (debt %d):\n", file.FilePath, file.DebtScore)
		for _, issue := range file.Issues {
			fmt.Fprintf(writer, "  %d: [%s] %s: %s\n", issue.Line, issue.Severity, issue.CheckID, issue.Message)
		}
		fmt.Fprintln(writer)
	}

	if len(response.Warnings) > 0 {
		fmt.Fprintf(writer, "Warnings:\n")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  %s\n", w)
		}
		fmt.Fprintln(writer)
	}

	if len(response.Errors) > 0 {
		fmt.Fprintf(writer, "Errors:\n")
		for _, e := range response.Errors {
			fmt.Fprintf(writer, "  %s\n", e)
		}
		fmt.Fprintln(writer)
	}

	return nil
}

// WriteDetails appends the per-function breakdown to a text report
func (f *OutputFormatterImpl) WriteDetails(response *domain.LintResponse, writer io.Writer) {
	for _, file := range response.Files {
		if len(file.Functions) == 0 {
			continue
		}
		fmt.Fprintf(writer, "%s functions:\n", file.FilePath)
		for _, fn := range file.Functions {
			ret := ""
			if !fn.HasReturnType {
				ret = " (no return type)"
			}
			fmt.Fprintf(writer, "  %s: lines=%d params=%d nesting=%d complexity=%d%s\n",
				fn.Name, fn.LineCount, fn.ParamCount, fn.MaxNesting, fn.Complexity, ret)
		}
		fmt.Fprintln(writer)
	}
}
