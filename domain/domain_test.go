package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainErrorFormatting(t *testing.T) {
	plain := NewInvalidInputError("no paths given", nil)
	if plain.Error() != "[INVALID_INPUT] no paths given" {
		t.Errorf("Unexpected error string: %s", plain.Error())
	}

	cause := fmt.Errorf("permission denied")
	wrapped := NewFileNotFoundError("player.gd", cause)
	if !strings.Contains(wrapped.Error(), "FILE_NOT_FOUND") {
		t.Errorf("Expected code in error string, got %s", wrapped.Error())
	}
	if !strings.Contains(wrapped.Error(), "player.gd") {
		t.Errorf("Expected path in error string, got %s", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestDomainErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{NewInvalidInputError("x", nil), ErrCodeInvalidInput},
		{NewAnalysisError("x", nil), ErrCodeAnalysisError},
		{NewConfigError("x", nil), ErrCodeConfigError},
		{NewOutputError("x", nil), ErrCodeOutputError},
	}

	for _, tc := range tests {
		var domainErr DomainError
		if !errors.As(tc.err, &domainErr) {
			t.Fatalf("Expected a DomainError, got %T", tc.err)
		}
		if domainErr.Code != tc.code {
			t.Errorf("Expected code %s, got %s", tc.code, domainErr.Code)
		}
	}
}

func TestSeverityLevel(t *testing.T) {
	if SeverityCritical.Level() <= SeverityWarning.Level() {
		t.Error("Expected critical to rank above warning")
	}
	if SeverityWarning.Level() <= SeverityInfo.Level() {
		t.Error("Expected warning to rank above info")
	}
	if Severity("bogus").Level() != 0 {
		t.Error("Expected unknown severity to rank lowest")
	}
}

func TestHealthGrade(t *testing.T) {
	tests := []struct {
		name     string
		lines    int
		debt     int
		expected string
	}{
		{"no lines", 0, 0, "A"},
		{"pristine", 10000, 50, "A"},
		{"light debt", 10000, 200, "B"},
		{"medium debt", 10000, 500, "C"},
		{"heavy debt", 10000, 1000, "D"},
		{"bankrupt", 10000, 2000, "F"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &LintSummary{TotalLines: tc.lines, TotalDebtScore: tc.debt}
			if got := s.HealthGrade(); got != tc.expected {
				t.Errorf("Expected grade %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestAllIssues(t *testing.T) {
	resp := &LintResponse{
		Files: []FileReport{
			{FilePath: "a.gd", Issues: []Issue{{Line: 1}, {Line: 2}}},
			{FilePath: "b.gd", Issues: []Issue{{Line: 5}}},
			{FilePath: "c.gd"},
		},
	}

	issues := resp.AllIssues()
	if len(issues) != 3 {
		t.Fatalf("Expected 3 issues, got %d", len(issues))
	}
	if issues[2].Line != 5 {
		t.Errorf("Expected issues in file order, got %+v", issues)
	}
}
