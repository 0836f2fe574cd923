package analyzer

import (
	"testing"
)

func TestParseDirectiveIDs(t *testing.T) {
	tests := []struct {
		name     string
		rest     string
		keyword  string
		expected []string
	}{
		{"no list is wildcard", "ignore", "ignore", nil},
		{"empty list is wildcard", "ignore:", "ignore", nil},
		{"single id", "ignore:magic-number", "ignore", []string{"magic-number"}},
		{"multiple ids", "ignore:magic-number,long-line", "ignore", []string{"magic-number", "long-line"}},
		{"ids trimmed", "ignore:magic-number, long-line", "ignore", []string{"magic-number", "long-line"}},
		{"list stops at whitespace", "ignore:magic-number reason text", "ignore", []string{"magic-number"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parseDirectiveIDs(tc.rest, tc.keyword)
			if len(got) != len(tc.expected) {
				t.Fatalf("Expected %v, got %v", tc.expected, got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Expected %v, got %v", tc.expected, got)
				}
			}
		})
	}
}

func TestIgnoreBelow(t *testing.T) {
	lines := []string{
		"var a = 5",
		"# qube:ignore-below:magic-number",
		"var b = 5",
		"var c = 5",
	}
	r := NewIgnoreResolver(lines)

	if r.ShouldIgnore(1, CheckMagicNumber) {
		t.Error("Expected line 1 above the directive to not be suppressed")
	}
	for line := 2; line <= 4; line++ {
		if !r.ShouldIgnore(line, CheckMagicNumber) {
			t.Errorf("Expected line %d to be suppressed", line)
		}
	}
	if r.ShouldIgnore(3, CheckLongLine) {
		t.Error("Expected a scoped directive to leave other checks alone")
	}
}

func TestIgnoreFunctionCoversNextDeclaration(t *testing.T) {
	lines := []string{
		"# qube:ignore-function",
		"func _ready():",
		"\tprint(\"a\")",
		"",
		"func update():",
		"\tprint(\"b\")",
	}
	r := NewIgnoreResolver(lines)

	for line := 2; line <= 4; line++ {
		if !r.ShouldIgnore(line, CheckPrintStatement) {
			t.Errorf("Expected line %d inside the first function to be suppressed", line)
		}
	}
	if r.ShouldIgnore(5, CheckPrintStatement) || r.ShouldIgnore(6, CheckPrintStatement) {
		t.Error("Expected the next function to not be suppressed")
	}
	if r.ShouldIgnore(1, CheckPrintStatement) {
		t.Error("Expected the directive line itself to not be suppressed")
	}
}

func TestIgnoreFunctionWithoutFollowingDeclaration(t *testing.T) {
	lines := []string{
		"# qube:ignore-function",
		"var x = 5",
	}
	r := NewIgnoreResolver(lines)

	if r.ShouldIgnore(2, CheckMagicNumber) {
		t.Error("Expected a dangling ignore-function to suppress nothing")
	}
}

func TestIgnoreFunctionRunsToEndOfFile(t *testing.T) {
	lines := []string{
		"# qube:ignore-function:print-statement",
		"func tail():",
		"\tprint(\"a\")",
		"\tprint(\"b\")",
	}
	r := NewIgnoreResolver(lines)

	for line := 2; line <= 4; line++ {
		if !r.ShouldIgnore(line, CheckPrintStatement) {
			t.Errorf("Expected line %d to be suppressed through end of file", line)
		}
	}
}

func TestUnmatchedBlockStart(t *testing.T) {
	lines := []string{
		"# qube:ignore-block-start",
		"var x = 5",
	}
	r := NewIgnoreResolver(lines)

	if r.ShouldIgnore(2, CheckMagicNumber) {
		t.Error("Expected an unmatched block start to suppress nothing")
	}
	if len(r.UnmatchedStarts) != 1 || r.UnmatchedStarts[0] != 1 {
		t.Errorf("Expected unmatched start recorded at line 1, got %v", r.UnmatchedStarts)
	}
}

func TestUnmatchedBlockEndIsNoOp(t *testing.T) {
	lines := []string{
		"# qube:ignore-block-end",
		"var x = 5",
	}
	r := NewIgnoreResolver(lines)

	if r.ShouldIgnore(2, CheckMagicNumber) {
		t.Error("Expected an unmatched block end to suppress nothing")
	}
	if len(r.UnmatchedStarts) != 0 {
		t.Errorf("Expected no unmatched starts, got %v", r.UnmatchedStarts)
	}
}

func TestShouldIgnoreIsIdempotent(t *testing.T) {
	lines := []string{
		"# qube:ignore-next-line",
		"var x = 5",
	}
	r := NewIgnoreResolver(lines)

	first := r.ShouldIgnore(2, CheckMagicNumber)
	second := r.ShouldIgnore(2, CheckMagicNumber)
	if !first || first != second {
		t.Errorf("Expected repeated queries to agree, got %v then %v", first, second)
	}
}

func TestOnlyFirstDirectivePerLineHonored(t *testing.T) {
	lines := []string{
		"var x = 5 # qube:ignore:long-line # qube:ignore:magic-number",
	}
	r := NewIgnoreResolver(lines)

	if !r.ShouldIgnore(1, CheckLongLine) {
		t.Error("Expected the first directive to apply")
	}
	if r.ShouldIgnore(1, CheckMagicNumber) {
		t.Error("Expected the second directive on the same line to be ignored")
	}
}

func TestIgnoreFileWithIDList(t *testing.T) {
	lines := []string{
		"# qube:ignore-file:magic-number,print-statement",
		"var x = 5",
		"print(\"x\")",
	}
	r := NewIgnoreResolver(lines)

	if !r.ShouldIgnore(2, CheckMagicNumber) || !r.ShouldIgnore(3, CheckPrintStatement) {
		t.Error("Expected listed checks suppressed file-wide")
	}
	if r.ShouldIgnore(2, CheckMissingTypeHint) {
		t.Error("Expected unlisted checks to survive a scoped ignore-file")
	}
}
