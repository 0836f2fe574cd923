package analyzer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ludo-technologies/qube/internal/config"
)

func testConfig() *config.Config {
	return config.DefaultConfig()
}

func countByCheck(issues []Issue, check CheckID) int {
	n := 0
	for _, issue := range issues {
		if issue.Check == check {
			n++
		}
	}
	return n
}

func findIssue(issues []Issue, check CheckID) (Issue, bool) {
	for _, issue := range issues {
		if issue.Check == check {
			return issue, true
		}
	}
	return Issue{}, false
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []string
	}{
		{"empty input", "", nil},
		{"single line no newline", "var x = 1", []string{"var x = 1"}},
		{"trailing newline dropped", "a\nb\n", []string{"a", "b"}},
		{"crlf normalized", "a\r\nb\r\n", []string{"a", "b"}},
		{"interior blank kept", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitLines(tc.source)
			if len(got) != len(tc.expected) {
				t.Fatalf("Expected %d lines, got %d (%q)", len(tc.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Line %d: expected %q, got %q", i, tc.expected[i], got[i])
				}
			}
		})
	}
}

func TestAnalyzeSimpleFunction(t *testing.T) {
	source := "func get_speed():\n\tif x:\n\t\tpass\n"
	result := Analyze(source, "player.gd", testConfig())

	if len(result.Functions) != 1 {
		t.Fatalf("Expected 1 function, got %d", len(result.Functions))
	}

	fn := result.Functions[0]
	if fn.Name != "get_speed" {
		t.Errorf("Expected function name 'get_speed', got %q", fn.Name)
	}
	if fn.Complexity != 2 {
		t.Errorf("Expected complexity 2, got %d", fn.Complexity)
	}
	if fn.LineCount != 3 {
		t.Errorf("Expected line count 3, got %d", fn.LineCount)
	}
	if fn.MaxNesting != 1 {
		t.Errorf("Expected nesting depth 1, got %d", fn.MaxNesting)
	}
	if fn.HasReturnType {
		t.Error("Expected no return type annotation")
	}
	if fn.IsEmpty {
		t.Error("Expected non-empty body")
	}

	if _, ok := findIssue(result.Issues, CheckMissingReturnType); !ok {
		t.Error("Expected a missing-return-type issue")
	}
}

func TestAnalyzeFileLengthHardLimit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 350; i++ {
		sb.WriteString("# filler\n")
	}

	result := Analyze(sb.String(), "big.gd", testConfig())

	if result.LineCount != 350 {
		t.Fatalf("Expected 350 lines, got %d", result.LineCount)
	}
	if n := countByCheck(result.Issues, CheckFileLength); n != 1 {
		t.Fatalf("Expected exactly 1 file-length issue, got %d", n)
	}

	issue, _ := findIssue(result.Issues, CheckFileLength)
	if issue.Severity != SeverityCritical {
		t.Errorf("Expected critical severity, got %s", issue.Severity)
	}
	if issue.Line != 1 {
		t.Errorf("Expected issue at line 1, got %d", issue.Line)
	}
	if !strings.Contains(issue.Message, "350") || !strings.Contains(issue.Message, "300") {
		t.Errorf("Expected message citing 350 and 300, got %q", issue.Message)
	}
}

func TestAnalyzeFileLengthSoftLimit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 250; i++ {
		sb.WriteString("# filler\n")
	}

	result := Analyze(sb.String(), "mid.gd", testConfig())

	issue, ok := findIssue(result.Issues, CheckFileLength)
	if !ok {
		t.Fatal("Expected a file-length issue")
	}
	if issue.Severity != SeverityWarning {
		t.Errorf("Expected warning severity, got %s", issue.Severity)
	}
}

func TestAnalyzeSameLineIgnoreIsScoped(t *testing.T) {
	source := "var speed = 5 # qube:ignore:magic-number\n"
	result := Analyze(source, "player.gd", testConfig())

	if _, ok := findIssue(result.Issues, CheckMagicNumber); ok {
		t.Error("Expected magic-number to be suppressed on the directive line")
	}
	if _, ok := findIssue(result.IgnoredIssues, CheckMagicNumber); !ok {
		t.Error("Expected the suppressed magic-number issue in the ignored list")
	}
	if _, ok := findIssue(result.Issues, CheckMissingTypeHint); !ok {
		t.Error("Expected missing-type-hint to survive a magic-number-only directive")
	}
}

func TestAnalyzeIgnoreFileWindow(t *testing.T) {
	head := "# qube:ignore-file\nvar speed = 5\n"
	result := Analyze(head, "quiet.gd", testConfig())

	if len(result.Issues) != 0 {
		t.Errorf("Expected all issues suppressed by ignore-file on line 1, got %d", len(result.Issues))
	}
	if len(result.IgnoredIssues) == 0 {
		t.Error("Expected suppressed issues to be recorded as ignored")
	}

	var sb strings.Builder
	for i := 0; i < 14; i++ {
		sb.WriteString("var x" + fmt.Sprint(i) + " = 5\n")
	}
	sb.WriteString("# qube:ignore-file\n")

	late := Analyze(sb.String(), "loud.gd", testConfig())
	if len(late.Issues) == 0 {
		t.Error("Expected ignore-file past line 10 to have no effect")
	}
}

func TestAnalyzeNestedIgnoreBlocks(t *testing.T) {
	source := strings.Join([]string{
		"# qube:ignore-block-start:magic-number",
		"var a = 99",
		"# qube:ignore-block-start",
		"var b = 77",
		`print("hi")`,
		"# qube:ignore-block-end",
		`print("bye")`,
		"# qube:ignore-block-end",
	}, "\n") + "\n"

	result := Analyze(source, "blocks.gd", testConfig())

	if _, ok := findIssue(result.IgnoredIssues, CheckMagicNumber); !ok {
		t.Error("Expected magic-number issues inside the outer block to be ignored")
	}
	if _, ok := findIssue(result.Issues, CheckMagicNumber); ok {
		t.Error("Expected no accepted magic-number issue inside the outer block")
	}

	// The inner wildcard block swallows everything between lines 3 and 6
	for _, issue := range result.Issues {
		if issue.Line >= 3 && issue.Line <= 6 {
			t.Errorf("Expected no accepted issues in the wildcard block, got %s at line %d", issue.Check, issue.Line)
		}
	}

	// The outer block only names magic-number, so line 2's type hint and
	// line 7's print survive.
	if issue, ok := findIssue(result.Issues, CheckMissingTypeHint); !ok || issue.Line != 2 {
		t.Error("Expected missing-type-hint at line 2 to survive the outer block")
	}
	if issue, ok := findIssue(result.Issues, CheckPrintStatement); !ok || issue.Line != 7 {
		t.Error("Expected print-statement at line 7 to survive the outer block")
	}
}

func TestAnalyzeIgnoreNextLine(t *testing.T) {
	source := "# qube:ignore-next-line:print-statement\nprint(\"debug\")\n"
	result := Analyze(source, "next.gd", testConfig())

	if _, ok := findIssue(result.Issues, CheckPrintStatement); ok {
		t.Error("Expected print-statement on the next line to be suppressed")
	}
	issue, ok := findIssue(result.IgnoredIssues, CheckPrintStatement)
	if !ok {
		t.Fatal("Expected the suppressed issue in the ignored list")
	}
	if issue.Line != 2 {
		t.Errorf("Expected ignored issue at line 2, got %d", issue.Line)
	}
}

func TestAnalyzeDebtIgnoresSuppression(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("# qube:ignore-file\n")
	for i := 0; i < 349; i++ {
		sb.WriteString("# filler\n")
	}

	result := Analyze(sb.String(), "quiet_big.gd", testConfig())

	if len(result.Issues) != 0 {
		t.Errorf("Expected all issues suppressed, got %d", len(result.Issues))
	}
	if result.DebtScore != 50 {
		t.Errorf("Expected debt score 50 despite suppression, got %d", result.DebtScore)
	}
}

func TestAnalyzeCollectsSignalsAndDependencies(t *testing.T) {
	source := strings.Join([]string{
		"signal health_changed(amount)",
		"signal died",
		`var bullet = preload("res://bullet.tscn")`,
		`var sfx = load("res://sfx/hit.wav")`,
	}, "\n") + "\n"

	result := Analyze(source, "actor.gd", testConfig())

	if len(result.Signals) != 2 {
		t.Fatalf("Expected 2 signals, got %v", result.Signals)
	}
	if result.Signals[0] != "health_changed" || result.Signals[1] != "died" {
		t.Errorf("Unexpected signal names: %v", result.Signals)
	}
	if len(result.Dependencies) != 2 {
		t.Fatalf("Expected 2 dependencies, got %v", result.Dependencies)
	}
	if result.Dependencies[0] != "res://bullet.tscn" || result.Dependencies[1] != "res://sfx/hit.wav" {
		t.Errorf("Unexpected dependencies: %v", result.Dependencies)
	}
}

func TestAggregateExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		issues   []Issue
		expected int
	}{
		{"clean", nil, 0},
		{"info only", []Issue{{Severity: SeverityInfo}}, 0},
		{"warning", []Issue{{Severity: SeverityInfo}, {Severity: SeverityWarning}}, 1},
		{"critical wins", []Issue{{Severity: SeverityWarning}, {Severity: SeverityCritical}}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agg := Aggregate([]*FileResult{{FilePath: "a.gd", Issues: tc.issues}}, time.Millisecond)
			if agg.ExitCode != tc.expected {
				t.Errorf("Expected exit code %d, got %d", tc.expected, agg.ExitCode)
			}
		})
	}
}

func TestAggregateFlattensIssues(t *testing.T) {
	agg := Aggregate([]*FileResult{
		{
			FilePath:      "b.gd",
			Issues:        []Issue{{FilePath: "b.gd", Check: CheckLongLine}},
			IgnoredIssues: []Issue{{FilePath: "b.gd", Check: CheckMagicNumber}},
		},
		{
			FilePath: "a.gd",
			Issues:   []Issue{{FilePath: "a.gd", Check: CheckPrintStatement}},
		},
	}, time.Millisecond)

	accepted := agg.AllIssues()
	if len(accepted) != 2 {
		t.Fatalf("Expected 2 accepted issues, got %d", len(accepted))
	}
	// Files are sorted by path, so a.gd's issue comes first
	if accepted[0].FilePath != "a.gd" || accepted[1].FilePath != "b.gd" {
		t.Errorf("Expected issues in file order, got %v", accepted)
	}

	ignored := agg.AllIgnoredIssues()
	if len(ignored) != 1 || ignored[0].Check != CheckMagicNumber {
		t.Errorf("Expected the single ignored issue, got %v", ignored)
	}
}

func TestAggregateOrdersFilesByPath(t *testing.T) {
	agg := Aggregate([]*FileResult{
		{FilePath: "z.gd", LineCount: 10},
		{FilePath: "a.gd", LineCount: 20},
	}, time.Millisecond)

	if agg.Files[0].FilePath != "a.gd" || agg.Files[1].FilePath != "z.gd" {
		t.Errorf("Expected files sorted by path, got %s then %s", agg.Files[0].FilePath, agg.Files[1].FilePath)
	}
	if agg.TotalLines != 30 {
		t.Errorf("Expected 30 total lines, got %d", agg.TotalLines)
	}
}
