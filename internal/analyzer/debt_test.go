package analyzer

import (
	"testing"

	"github.com/ludo-technologies/qube/internal/config"
)

func defaultThresholds() config.ThresholdsConfig {
	return config.DefaultConfig().Thresholds
}

func TestComputeDebtScore(t *testing.T) {
	tests := []struct {
		name      string
		lineCount int
		functions []FunctionInfo
		expected  int
	}{
		{"clean file", 100, nil, 0},
		{"soft file length", 250, nil, 20},
		{"hard file length", 350, nil, 50},
		{"soft function length", 100, []FunctionInfo{{LineCount: 50}}, 10},
		{"hard function length", 100, []FunctionInfo{{LineCount: 100}}, 20},
		{"params and nesting", 100, []FunctionInfo{{ParamCount: 6, MaxNesting: 5}}, 10},
		{"complexity warning", 100, []FunctionInfo{{Complexity: 15}}, 10},
		{"complexity critical", 100, []FunctionInfo{{Complexity: 25}}, 25},
		{
			"everything at once",
			350,
			[]FunctionInfo{{LineCount: 100, ParamCount: 6, MaxNesting: 5, Complexity: 25}},
			50 + 20 + 5 + 5 + 25,
		},
		{
			"contributions sum across functions",
			100,
			[]FunctionInfo{{Complexity: 15}, {Complexity: 15}},
			20,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeDebtScore(tc.lineCount, tc.functions, defaultThresholds())
			if got != tc.expected {
				t.Errorf("Expected debt %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestDebtHardLimitExcludesSoft(t *testing.T) {
	// A file over the hard limit must not also collect the soft penalty
	if got := ComputeDebtScore(400, nil, defaultThresholds()); got != 50 {
		t.Errorf("Expected 50, got %d", got)
	}
	fn := []FunctionInfo{{LineCount: 200}}
	if got := ComputeDebtScore(10, fn, defaultThresholds()); got != 20 {
		t.Errorf("Expected 20, got %d", got)
	}
}
