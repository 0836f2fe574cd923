package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ludo-technologies/qube/internal/config"
)

const commentMarker = "#"

// printMessageLimit caps the quoted line length in print-statement messages
const printMessageLimit = 60

// numberPattern matches signed integer and float literals. Adjacency to
// identifiers and quotes is checked separately because RE2 has no lookaround.
var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// loadPattern captures the resource path of preload("...")/load("...") calls
var loadPattern = regexp.MustCompile(`\b(?:pre)?load\(\s*"([^"]+)"`)

// LineScanResult holds the candidate issues and bookkeeping data collected
// by a single pass over a file's lines.
type LineScanResult struct {
	Issues       []Issue
	Signals      []string
	Dependencies []string
}

// LineScanner applies all single-line and file-level checks
type LineScanner struct {
	cfg *config.Config
}

// NewLineScanner creates a line scanner for the given configuration
func NewLineScanner(cfg *config.Config) *LineScanner {
	return &LineScanner{cfg: cfg}
}

// Scan runs every enabled line check against each line and the file-length
// check against the whole file. All issues are candidates; suppression is
// the caller's concern.
func (s *LineScanner) Scan(filePath string, lines []string) *LineScanResult {
	res := &LineScanResult{}

	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)

		s.checkLongLine(res, filePath, lineNo, raw)
		s.checkTodoComment(res, filePath, lineNo, trimmed)
		s.checkPrintStatement(res, filePath, lineNo, trimmed)
		s.checkMagicNumber(res, filePath, lineNo, trimmed)
		s.checkCommentedCode(res, filePath, lineNo, trimmed)
		s.checkMissingTypeHint(res, filePath, lineNo, trimmed)

		s.collectSignal(res, trimmed)
		s.collectDependencies(res, trimmed)
	}

	s.checkFileLength(res, filePath, len(lines))

	return res
}

func (s *LineScanner) checkLongLine(res *LineScanResult, filePath string, lineNo int, raw string) {
	if !s.cfg.Checks.LongLine {
		return
	}
	limit := s.cfg.Thresholds.MaxLineLength
	if length := utf8.RuneCountInString(raw); length > limit {
		res.Issues = append(res.Issues, Issue{
			FilePath: filePath,
			Line:     lineNo,
			Severity: SeverityInfo,
			Check:    CheckLongLine,
			Message:  fmt.Sprintf("line has %d characters (max %d)", length, limit),
		})
	}
}

func (s *LineScanner) checkTodoComment(res *LineScanResult, filePath string, lineNo int, trimmed string) {
	if !s.cfg.Checks.TodoComment {
		return
	}
	// Markers are checked in configuration order; first match wins per line
	for _, marker := range s.cfg.Patterns.TodoMarkers {
		idx := strings.Index(trimmed, marker)
		if idx < 0 {
			continue
		}
		severity := SeverityWarning
		if marker == "TODO" {
			severity = SeverityInfo
		}
		res.Issues = append(res.Issues, Issue{
			FilePath: filePath,
			Line:     lineNo,
			Severity: severity,
			Check:    CheckTodoComment,
			Message:  fmt.Sprintf("%s comment: %s", marker, trimmed[idx:]),
		})
		return
	}
}

func (s *LineScanner) checkPrintStatement(res *LineScanResult, filePath string, lineNo int, trimmed string) {
	if !s.cfg.Checks.PrintStatement {
		return
	}
	if strings.HasPrefix(trimmed, commentMarker) {
		return
	}
	for _, allowed := range s.cfg.Patterns.PrintWhitelist {
		if strings.Contains(trimmed, allowed) {
			return
		}
	}
	for _, pattern := range s.cfg.Patterns.PrintPatterns {
		idx := strings.Index(trimmed, pattern)
		if idx < 0 {
			continue
		}
		// Reject matches embedded in a longer identifier, e.g. sprint(
		if idx > 0 && isWordChar(trimmed[idx-1]) {
			continue
		}
		quoted := trimmed
		if utf8.RuneCountInString(quoted) > printMessageLimit {
			quoted = string([]rune(quoted)[:printMessageLimit])
		}
		res.Issues = append(res.Issues, Issue{
			FilePath: filePath,
			Line:     lineNo,
			Severity: SeverityWarning,
			Check:    CheckPrintStatement,
			Message:  fmt.Sprintf("print statement: %s", quoted),
		})
		return
	}
}

func (s *LineScanner) checkMagicNumber(res *LineScanResult, filePath string, lineNo int, trimmed string) {
	if !s.cfg.Checks.MagicNumber {
		return
	}
	if strings.HasPrefix(trimmed, commentMarker) || strings.HasPrefix(trimmed, "const ") {
		return
	}
	if strings.Contains(trimmed, "enum") || strings.Contains(trimmed, "export") {
		return
	}

	for _, m := range numberPattern.FindAllStringIndex(trimmed, -1) {
		start, end := m[0], m[1]

		// Skip literals glued to identifiers (vec2d, node_2d, 0xFF)
		if start > 0 && isWordChar(trimmed[start-1]) {
			continue
		}
		if end < len(trimmed) && isWordChar(trimmed[end]) {
			continue
		}
		// Skip literals directly after a quote (string contents)
		if start > 0 && (trimmed[start-1] == '"' || trimmed[start-1] == '\'') {
			continue
		}

		literal := trimmed[start:end]
		if s.isAllowedNumber(literal) {
			continue
		}

		// Only the first match per line is reported
		res.Issues = append(res.Issues, Issue{
			FilePath: filePath,
			Line:     lineNo,
			Severity: SeverityInfo,
			Check:    CheckMagicNumber,
			Message:  fmt.Sprintf("magic number %s, consider a named constant", literal),
		})
		return
	}
}

func (s *LineScanner) isAllowedNumber(literal string) bool {
	for _, allowed := range s.cfg.Patterns.AllowedNumbers {
		if literal == allowed {
			return true
		}
	}
	return false
}

func (s *LineScanner) checkCommentedCode(res *LineScanResult, filePath string, lineNo int, trimmed string) {
	if !s.cfg.Checks.CommentedCode {
		return
	}
	for _, pattern := range s.cfg.Patterns.CommentedCodePatterns {
		if strings.HasPrefix(trimmed, pattern) ||
			strings.Contains(trimmed, " "+pattern) ||
			strings.Contains(trimmed, "\t"+pattern) {
			res.Issues = append(res.Issues, Issue{
				FilePath: filePath,
				Line:     lineNo,
				Severity: SeverityInfo,
				Check:    CheckCommentedCode,
				Message:  "commented-out code, consider removing it",
			})
			return
		}
	}
}

func (s *LineScanner) checkMissingTypeHint(res *LineScanResult, filePath string, lineNo int, trimmed string) {
	if !s.cfg.Checks.MissingTypeHint {
		return
	}
	if !strings.HasPrefix(trimmed, "var ") {
		return
	}

	rest := trimmed[len("var "):]
	colon := strings.Index(rest, ":")
	eq := strings.Index(rest, "=")

	// A colon before the assignment is an annotation; ":=" is an inferred
	// declaration and exempt either way.
	if colon >= 0 && (eq < 0 || colon < eq) {
		return
	}

	name := rest
	if cut := strings.IndexAny(name, " \t:="); cut >= 0 {
		name = name[:cut]
	}
	res.Issues = append(res.Issues, Issue{
		FilePath: filePath,
		Line:     lineNo,
		Severity: SeverityInfo,
		Check:    CheckMissingTypeHint,
		Message:  fmt.Sprintf("variable %q has no type hint", name),
	})
}

func (s *LineScanner) collectSignal(res *LineScanResult, trimmed string) {
	if !strings.HasPrefix(trimmed, "signal ") {
		return
	}
	name := strings.TrimSpace(trimmed[len("signal "):])
	if cut := strings.IndexAny(name, "( \t"); cut >= 0 {
		name = name[:cut]
	}
	if name != "" {
		res.Signals = append(res.Signals, name)
	}
}

func (s *LineScanner) collectDependencies(res *LineScanResult, trimmed string) {
	if strings.HasPrefix(trimmed, commentMarker) {
		return
	}
	for _, m := range loadPattern.FindAllStringSubmatch(trimmed, -1) {
		res.Dependencies = append(res.Dependencies, m[1])
	}
}

func (s *LineScanner) checkFileLength(res *LineScanResult, filePath string, lineCount int) {
	if !s.cfg.Checks.FileLength {
		return
	}
	soft := s.cfg.Thresholds.FileLengthSoft
	hard := s.cfg.Thresholds.FileLengthHard

	// Hard takes precedence when both are exceeded
	switch {
	case lineCount > hard:
		res.Issues = append(res.Issues, Issue{
			FilePath: filePath,
			Line:     1,
			Severity: SeverityCritical,
			Check:    CheckFileLength,
			Message:  fmt.Sprintf("file has %d lines (hard limit %d)", lineCount, hard),
		})
	case lineCount > soft:
		res.Issues = append(res.Issues, Issue{
			FilePath: filePath,
			Line:     1,
			Severity: SeverityWarning,
			Check:    CheckFileLength,
			Message:  fmt.Sprintf("file has %d lines (soft limit %d)", lineCount, soft),
		})
	}
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
