package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/qube/internal/config"
)

// indentWidth is the column width of one nesting level; tabs count as a
// full level.
const indentWidth = 4

// FunctionInfo holds the metrics of one scanned function
type FunctionInfo struct {
	Name          string
	StartLine     int
	LineCount     int
	ParamCount    int
	MaxNesting    int
	Complexity    int
	IsEmpty       bool
	HasReturnType bool
}

// FunctionScanResult holds the functions found in a file and the candidate
// issues derived from their metrics.
type FunctionScanResult struct {
	Functions []FunctionInfo
	Issues    []Issue
}

// FunctionScanner segments a file into functions and applies the per-function
// metric checks.
type FunctionScanner struct {
	cfg *config.Config
}

// NewFunctionScanner creates a function scanner for the given configuration
func NewFunctionScanner(cfg *config.Config) *FunctionScanner {
	return &FunctionScanner{cfg: cfg}
}

// isFunctionDecl reports whether a trimmed line declares a function
func isFunctionDecl(trimmed string) bool {
	return strings.HasPrefix(trimmed, "func ") || strings.HasPrefix(trimmed, "static func ")
}

// Scan segments the file at function declarations. A function's body runs
// from the line after its declaration to the line before the next declaration
// or the end of file.
func (s *FunctionScanner) Scan(filePath string, lines []string) *FunctionScanResult {
	res := &FunctionScanResult{}

	var declIndexes []int
	for i, raw := range lines {
		if isFunctionDecl(strings.TrimSpace(raw)) {
			declIndexes = append(declIndexes, i)
		}
	}

	for n, declIdx := range declIndexes {
		bodyEnd := len(lines)
		if n+1 < len(declIndexes) {
			bodyEnd = declIndexes[n+1]
		}

		fn := s.scanFunction(lines, declIdx, bodyEnd)
		res.Functions = append(res.Functions, fn)
		s.checkFunction(res, filePath, fn)
	}

	return res
}

func (s *FunctionScanner) scanFunction(lines []string, declIdx, bodyEnd int) FunctionInfo {
	decl := strings.TrimSpace(lines[declIdx])
	body := lines[declIdx+1 : bodyEnd]

	fn := FunctionInfo{
		Name:          functionName(decl),
		StartLine:     declIdx + 1,
		LineCount:     len(body) + 1,
		ParamCount:    countParams(decl),
		HasReturnType: strings.Contains(decl, "->"),
	}
	fn.MaxNesting = maxNesting(body)
	fn.Complexity = complexity(body)
	fn.IsEmpty = isEmptyBody(body)

	return fn
}

func (s *FunctionScanner) checkFunction(res *FunctionScanResult, filePath string, fn FunctionInfo) {
	line := fn.StartLine

	if s.cfg.Checks.LongFunction {
		soft := s.cfg.Thresholds.FunctionLengthSoft
		hard := s.cfg.Thresholds.FunctionLengthHard
		switch {
		case fn.LineCount > hard:
			res.Issues = append(res.Issues, Issue{
				FilePath: filePath,
				Line:     line,
				Severity: SeverityCritical,
				Check:    CheckLongFunction,
				Message:  fmt.Sprintf("function %q has %d lines (hard limit %d)", fn.Name, fn.LineCount, hard),
			})
		case fn.LineCount > soft:
			res.Issues = append(res.Issues, Issue{
				FilePath: filePath,
				Line:     line,
				Severity: SeverityWarning,
				Check:    CheckLongFunction,
				Message:  fmt.Sprintf("function %q has %d lines (soft limit %d)", fn.Name, fn.LineCount, soft),
			})
		}
	}

	if s.cfg.Checks.HighComplexity {
		warn := s.cfg.Thresholds.ComplexityWarning
		crit := s.cfg.Thresholds.ComplexityCritical
		switch {
		case fn.Complexity > crit:
			res.Issues = append(res.Issues, Issue{
				FilePath: filePath,
				Line:     line,
				Severity: SeverityCritical,
				Check:    CheckHighComplexity,
				Message:  fmt.Sprintf("function %q has complexity %d (critical limit %d)", fn.Name, fn.Complexity, crit),
			})
		case fn.Complexity > warn:
			res.Issues = append(res.Issues, Issue{
				FilePath: filePath,
				Line:     line,
				Severity: SeverityWarning,
				Check:    CheckHighComplexity,
				Message:  fmt.Sprintf("function %q has complexity %d (max %d)", fn.Name, fn.Complexity, warn),
			})
		}
	}

	if s.cfg.Checks.TooManyParams && fn.ParamCount > s.cfg.Thresholds.MaxParams {
		res.Issues = append(res.Issues, Issue{
			FilePath: filePath,
			Line:     line,
			Severity: SeverityWarning,
			Check:    CheckTooManyParams,
			Message:  fmt.Sprintf("function %q has %d parameters (max %d)", fn.Name, fn.ParamCount, s.cfg.Thresholds.MaxParams),
		})
	}

	if s.cfg.Checks.DeepNesting && fn.MaxNesting > s.cfg.Thresholds.MaxNesting {
		res.Issues = append(res.Issues, Issue{
			FilePath: filePath,
			Line:     line,
			Severity: SeverityWarning,
			Check:    CheckDeepNesting,
			Message:  fmt.Sprintf("function %q has nesting depth %d (max %d)", fn.Name, fn.MaxNesting, s.cfg.Thresholds.MaxNesting),
		})
	}

	if s.cfg.Checks.EmptyFunction && fn.IsEmpty {
		res.Issues = append(res.Issues, Issue{
			FilePath: filePath,
			Line:     line,
			Severity: SeverityInfo,
			Check:    CheckEmptyFunction,
			Message:  fmt.Sprintf("function %q has an empty body", fn.Name),
		})
	}

	// Functions with the private prefix are lifecycle overrides whose
	// signatures are dictated by the engine.
	if s.cfg.Checks.MissingReturnType && !fn.HasReturnType && !strings.HasPrefix(fn.Name, "_") {
		res.Issues = append(res.Issues, Issue{
			FilePath: filePath,
			Line:     line,
			Severity: SeverityInfo,
			Check:    CheckMissingReturnType,
			Message:  fmt.Sprintf("function %q has no return type annotation", fn.Name),
		})
	}
}

// functionName extracts the identifier between "func " and the parameter list
func functionName(decl string) string {
	rest := decl
	if idx := strings.Index(rest, "func "); idx >= 0 {
		rest = rest[idx+len("func "):]
	}
	if cut := strings.IndexAny(rest, "( \t:"); cut >= 0 {
		rest = rest[:cut]
	}
	return strings.TrimSpace(rest)
}

// countParams counts the comma-separated parameters of a declaration line
func countParams(decl string) int {
	open := strings.Index(decl, "(")
	if open < 0 {
		return 0
	}
	closing := strings.LastIndex(decl, ")")
	if closing <= open {
		closing = len(decl)
	}

	inner := strings.TrimSpace(decl[open+1 : closing])
	if inner == "" {
		return 0
	}
	return strings.Count(inner, ",") + 1
}

// indentLevel converts leading whitespace to nesting levels, counting a tab
// as one full level.
func indentLevel(line string) int {
	cols := 0
	for _, c := range line {
		switch c {
		case '\t':
			cols += indentWidth
		case ' ':
			cols++
		default:
			return cols / indentWidth
		}
	}
	return cols / indentWidth
}

// maxNesting returns the deepest nesting level of a body relative to its own
// base indentation. The first non-blank line sets the base, so a flat body
// (and an empty one) has depth 0.
func maxNesting(body []string) int {
	base := -1
	max := 0
	for _, raw := range body {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		level := indentLevel(raw)
		if base < 0 {
			base = level
		}
		if depth := level - base; depth > max {
			max = depth
		}
	}
	return max
}

// branchKeywords start a new branch when a statement line begins with them
var branchKeywords = []string{"if ", "elif ", "for ", "while ", "match "}

// maskStrings blanks out the contents of quoted spans so operator counting
// does not pick up tokens inside string literals.
func maskStrings(line string) string {
	out := []byte(line)
	var quote byte
	for i := 0; i < len(out); i++ {
		c := out[i]
		if quote == 0 {
			if c == '"' || c == '\'' {
				quote = c
			}
			continue
		}
		if c == '\\' && i+1 < len(out) {
			out[i], out[i+1] = ' ', ' '
			i++
			continue
		}
		if c == quote {
			quote = 0
			continue
		}
		out[i] = ' '
	}
	return string(out)
}

// complexity computes a cyclomatic-style estimate: 1 for the function itself,
// +1 per branching statement, +1 per boolean operator and inline conditional.
// Comment lines do not contribute.
func complexity(body []string) int {
	score := 1
	for _, raw := range body {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
			continue
		}

		for _, kw := range branchKeywords {
			if strings.HasPrefix(trimmed, kw) {
				score++
				break
			}
		}

		masked := maskStrings(trimmed)
		score += strings.Count(masked, " and ")
		score += strings.Count(masked, "&&")
		score += strings.Count(masked, " or ")
		score += strings.Count(masked, "||")
		// Inline conditionals; a leading "if " has no preceding space and is
		// counted above as a branch instead.
		score += strings.Count(masked, " if ")
	}
	return score
}

// isEmptyBody reports whether every non-blank line of a body is a bare pass
// statement. A body with no non-blank lines is empty.
func isEmptyBody(body []string) bool {
	for _, raw := range body {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if trimmed != "pass" {
			return false
		}
	}
	return true
}
