package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/qube/internal/config"
)

// ClassScanner applies the whole-file god-class check. GDScript files are
// implicit classes, so the file itself is the unit under test.
type ClassScanner struct {
	cfg *config.Config
}

// NewClassScanner creates a class scanner for the given configuration
func NewClassScanner(cfg *config.Config) *ClassScanner {
	return &ClassScanner{cfg: cfg}
}

// Scan counts public functions against the already-collected signals and
// reports a god-class issue at line 1 when either count exceeds its limit.
func (s *ClassScanner) Scan(filePath string, functions []FunctionInfo, signalCount int) []Issue {
	if !s.cfg.Checks.GodClass {
		return nil
	}

	public := 0
	for _, fn := range functions {
		if !strings.HasPrefix(fn.Name, "_") {
			public++
		}
	}

	maxFuncs := s.cfg.Thresholds.MaxPublicFunctions
	maxSignals := s.cfg.Thresholds.MaxSignals

	var parts []string
	if public > maxFuncs {
		parts = append(parts, fmt.Sprintf("%d public functions (max %d)", public, maxFuncs))
	}
	if signalCount > maxSignals {
		parts = append(parts, fmt.Sprintf("%d signals (max %d)", signalCount, maxSignals))
	}
	if len(parts) == 0 {
		return nil
	}

	return []Issue{{
		FilePath: filePath,
		Line:     1,
		Severity: SeverityWarning,
		Check:    CheckGodClass,
		Message:  "class does too much: " + strings.Join(parts, ", "),
	}}
}
