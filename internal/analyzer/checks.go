package analyzer

// Severity classifies an issue. The order is significant: higher values
// dominate when deriving exit codes.
type Severity int

const (
	SeverityInfo Severity = iota + 1
	SeverityWarning
	SeverityCritical
)

// String returns the lowercase name of the severity
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// CheckID is the stable identifier of a single check. External formatters and
// ignore-directive authors key off these exact strings.
type CheckID string

const (
	CheckFileLength        CheckID = "file-length"
	CheckLongFunction      CheckID = "long-function"
	CheckHighComplexity    CheckID = "high-complexity"
	CheckTooManyParams     CheckID = "too-many-params"
	CheckDeepNesting       CheckID = "deep-nesting"
	CheckEmptyFunction     CheckID = "empty-function"
	CheckMissingReturnType CheckID = "missing-return-type"
	CheckGodClass          CheckID = "god-class"
	CheckLongLine          CheckID = "long-line"
	CheckTodoComment       CheckID = "todo-comment"
	CheckPrintStatement    CheckID = "print-statement"
	CheckMagicNumber       CheckID = "magic-number"
	CheckCommentedCode     CheckID = "commented-code"
	CheckMissingTypeHint   CheckID = "missing-type-hint"
)

// AllChecks returns the closed set of check identifiers in a stable order
func AllChecks() []CheckID {
	return []CheckID{
		CheckFileLength,
		CheckLongFunction,
		CheckHighComplexity,
		CheckTooManyParams,
		CheckDeepNesting,
		CheckEmptyFunction,
		CheckMissingReturnType,
		CheckGodClass,
		CheckLongLine,
		CheckTodoComment,
		CheckPrintStatement,
		CheckMagicNumber,
		CheckCommentedCode,
		CheckMissingTypeHint,
	}
}

// Issue is a single reported problem. Issues are immutable once created.
type Issue struct {
	FilePath string
	Line     int
	Severity Severity
	Check    CheckID
	Message  string
}
