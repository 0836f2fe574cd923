package analyzer

import "github.com/ludo-technologies/qube/internal/config"

// Debt weights. Debt is computed from raw metrics and is not reduced by
// suppression directives.
const (
	debtFileHard       = 50
	debtFileSoft       = 20
	debtFunctionHard   = 20
	debtFunctionSoft   = 10
	debtParams         = 5
	debtNesting        = 5
	debtComplexityCrit = 25
	debtComplexityWarn = 10
)

// ComputeDebtScore sums the debt contributions of a file's length and its
// functions' metrics against the configured thresholds. Soft and hard
// contributions are mutually exclusive per metric; the hard one wins.
func ComputeDebtScore(lineCount int, functions []FunctionInfo, t config.ThresholdsConfig) int {
	score := 0

	switch {
	case lineCount > t.FileLengthHard:
		score += debtFileHard
	case lineCount > t.FileLengthSoft:
		score += debtFileSoft
	}

	for _, fn := range functions {
		switch {
		case fn.LineCount > t.FunctionLengthHard:
			score += debtFunctionHard
		case fn.LineCount > t.FunctionLengthSoft:
			score += debtFunctionSoft
		}

		if fn.ParamCount > t.MaxParams {
			score += debtParams
		}
		if fn.MaxNesting > t.MaxNesting {
			score += debtNesting
		}

		switch {
		case fn.Complexity > t.ComplexityCritical:
			score += debtComplexityCrit
		case fn.Complexity > t.ComplexityWarning:
			score += debtComplexityWarn
		}
	}

	return score
}
