package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default threshold values. Soft limits produce warnings, hard limits
// produce critical issues.
const (
	DefaultFileLengthSoft     = 200
	DefaultFileLengthHard     = 300
	DefaultFunctionLengthSoft = 40
	DefaultFunctionLengthHard = 80
	DefaultComplexityWarning  = 10
	DefaultComplexityCritical = 20
	DefaultMaxParams          = 5
	DefaultMaxNesting         = 4
	DefaultMaxLineLength      = 100
	DefaultMaxPublicFunctions = 10
	DefaultMaxSignals         = 10
)

// Config represents the main configuration structure
type Config struct {
	// Checks holds the per-check enable toggles
	Checks ChecksConfig `json:"checks" mapstructure:"checks" yaml:"checks"`

	// Thresholds holds all numeric limits
	Thresholds ThresholdsConfig `json:"thresholds" mapstructure:"thresholds" yaml:"thresholds"`

	// Patterns holds the pattern and marker lists used by the scanners
	Patterns PatternsConfig `json:"patterns" mapstructure:"patterns" yaml:"patterns"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds file collection configuration
	Analysis AnalysisConfig `json:"analysis,omitempty" mapstructure:"analysis" yaml:"analysis"`

	// Performance holds parallel execution configuration
	Performance PerformanceConfig `json:"performance,omitempty" mapstructure:"performance" yaml:"performance"`
}

// ChecksConfig enables or disables individual checks
type ChecksConfig struct {
	FileLength        bool `json:"fileLength" mapstructure:"file_length" yaml:"file_length"`
	LongFunction      bool `json:"longFunction" mapstructure:"long_function" yaml:"long_function"`
	HighComplexity    bool `json:"highComplexity" mapstructure:"high_complexity" yaml:"high_complexity"`
	TooManyParams     bool `json:"tooManyParams" mapstructure:"too_many_params" yaml:"too_many_params"`
	DeepNesting       bool `json:"deepNesting" mapstructure:"deep_nesting" yaml:"deep_nesting"`
	EmptyFunction     bool `json:"emptyFunction" mapstructure:"empty_function" yaml:"empty_function"`
	MissingReturnType bool `json:"missingReturnType" mapstructure:"missing_return_type" yaml:"missing_return_type"`
	GodClass          bool `json:"godClass" mapstructure:"god_class" yaml:"god_class"`
	LongLine          bool `json:"longLine" mapstructure:"long_line" yaml:"long_line"`
	TodoComment       bool `json:"todoComment" mapstructure:"todo_comment" yaml:"todo_comment"`
	PrintStatement    bool `json:"printStatement" mapstructure:"print_statement" yaml:"print_statement"`
	MagicNumber       bool `json:"magicNumber" mapstructure:"magic_number" yaml:"magic_number"`
	CommentedCode     bool `json:"commentedCode" mapstructure:"commented_code" yaml:"commented_code"`
	MissingTypeHint   bool `json:"missingTypeHint" mapstructure:"missing_type_hint" yaml:"missing_type_hint"`
}

// ThresholdsConfig holds all numeric limits.
//
// Soft/hard pairs are applied independently by the engine: the hard limit is
// checked first, so an inconsistent soft > hard configuration is accepted and
// simply behaves as two independent limits.
type ThresholdsConfig struct {
	FileLengthSoft     int `json:"fileLengthSoft" mapstructure:"file_length_soft" yaml:"file_length_soft"`
	FileLengthHard     int `json:"fileLengthHard" mapstructure:"file_length_hard" yaml:"file_length_hard"`
	FunctionLengthSoft int `json:"functionLengthSoft" mapstructure:"function_length_soft" yaml:"function_length_soft"`
	FunctionLengthHard int `json:"functionLengthHard" mapstructure:"function_length_hard" yaml:"function_length_hard"`
	ComplexityWarning  int `json:"complexityWarning" mapstructure:"complexity_warning" yaml:"complexity_warning"`
	ComplexityCritical int `json:"complexityCritical" mapstructure:"complexity_critical" yaml:"complexity_critical"`
	MaxParams          int `json:"maxParams" mapstructure:"max_params" yaml:"max_params"`
	MaxNesting         int `json:"maxNesting" mapstructure:"max_nesting" yaml:"max_nesting"`
	MaxLineLength      int `json:"maxLineLength" mapstructure:"max_line_length" yaml:"max_line_length"`
	MaxPublicFunctions int `json:"maxPublicFunctions" mapstructure:"max_public_functions" yaml:"max_public_functions"`
	MaxSignals         int `json:"maxSignals" mapstructure:"max_signals" yaml:"max_signals"`
}

// PatternsConfig holds the marker and pattern lists used by the scanners
type PatternsConfig struct {
	// ExcludedPaths are substrings that exclude a file path from analysis
	ExcludedPaths []string `json:"excludedPaths" mapstructure:"excluded_paths" yaml:"excluded_paths"`

	// TodoMarkers are checked in order; the first match wins per line
	TodoMarkers []string `json:"todoMarkers" mapstructure:"todo_markers" yaml:"todo_markers"`

	// PrintPatterns are substrings that identify a debug print call
	PrintPatterns []string `json:"printPatterns" mapstructure:"print_patterns" yaml:"print_patterns"`

	// PrintWhitelist are identifiers that exempt a line from the print check
	PrintWhitelist []string `json:"printWhitelist" mapstructure:"print_whitelist" yaml:"print_whitelist"`

	// AllowedNumbers are numeric literals exempt from the magic-number check
	AllowedNumbers []string `json:"allowedNumbers" mapstructure:"allowed_numbers" yaml:"allowed_numbers"`

	// CommentedCodePatterns are substrings that mark a comment as dead code
	CommentedCodePatterns []string `json:"commentedCodePatterns" mapstructure:"commented_code_patterns" yaml:"commented_code_patterns"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv, html
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether to show per-function breakdowns
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`

	// SortBy specifies how to sort file results: path, debt, issues
	SortBy string `json:"sort_by" mapstructure:"sort_by" yaml:"sort_by"`

	// MinSeverity is the minimum severity to report: info, warning, critical
	MinSeverity string `json:"min_severity" mapstructure:"min_severity" yaml:"min_severity"`
}

// AnalysisConfig holds file collection configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies gitignore-style patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// FollowSymlinks controls whether to follow symbolic links
	FollowSymlinks bool `json:"follow_symlinks" mapstructure:"follow_symlinks" yaml:"follow_symlinks"`
}

// PerformanceConfig holds parallel execution configuration
type PerformanceConfig struct {
	// MaxGoroutines bounds concurrent file analysis (0 = NumCPU)
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds a whole run (0 = default)
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Checks: ChecksConfig{
			FileLength:        true,
			LongFunction:      true,
			HighComplexity:    true,
			TooManyParams:     true,
			DeepNesting:       true,
			EmptyFunction:     true,
			MissingReturnType: true,
			GodClass:          true,
			LongLine:          true,
			TodoComment:       true,
			PrintStatement:    true,
			MagicNumber:       true,
			CommentedCode:     true,
			MissingTypeHint:   true,
		},
		Thresholds: ThresholdsConfig{
			FileLengthSoft:     DefaultFileLengthSoft,
			FileLengthHard:     DefaultFileLengthHard,
			FunctionLengthSoft: DefaultFunctionLengthSoft,
			FunctionLengthHard: DefaultFunctionLengthHard,
			ComplexityWarning:  DefaultComplexityWarning,
			ComplexityCritical: DefaultComplexityCritical,
			MaxParams:          DefaultMaxParams,
			MaxNesting:         DefaultMaxNesting,
			MaxLineLength:      DefaultMaxLineLength,
			MaxPublicFunctions: DefaultMaxPublicFunctions,
			MaxSignals:         DefaultMaxSignals,
		},
		Patterns: PatternsConfig{
			ExcludedPaths: []string{
				"addons/",
				".godot/",
				".import/",
			},
			TodoMarkers: []string{"TODO", "FIXME", "HACK", "XXX"},
			PrintPatterns: []string{
				"print(",
				"prints(",
				"printt(",
				"print_debug(",
				"print_rich(",
			},
			PrintWhitelist: []string{
				"push_error",
				"push_warning",
			},
			AllowedNumbers: []string{"0", "1", "2", "-1", "0.0", "1.0"},
			CommentedCodePatterns: []string{
				"#var ",
				"#func ",
				"#if ",
				"#elif ",
				"#else",
				"#for ",
				"#while ",
				"#match ",
				"#return",
				"#pass",
				"#print",
				"#signal ",
				"#const ",
			},
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
			SortBy:      "debt",
			MinSeverity: "info",
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"**/*.gd"},
			ExcludePatterns: []string{
				".godot",
				".import",
				"addons",
				".git",
			},
			Recursive:      true,
			FollowSymlinks: false,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  0,
			TimeoutSeconds: 0,
		},
	}
}

// IsPathExcluded reports whether any excluded-path substring occurs anywhere
// in the given path. This is plain substring containment, not glob matching.
func (c *Config) IsPathExcluded(path string) bool {
	for _, sub := range c.Patterns.ExcludedPaths {
		if sub == "" {
			continue
		}
		if strings.Contains(path, sub) {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context: when no
// explicit config path is given, the config file is discovered starting from
// the analyzed path and walking upward.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"qube.yaml",
		"qube.yml",
		".qube.yaml",
		".qube.yml",
		"qube.json",
		".qube.json",
	}

	// If targetPath is provided, search from there upward
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "qube"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "qube")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	// Check QUBE_CONFIG environment variable as fallback
	if envConfig := os.Getenv("QUBE_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values.
//
// Threshold values are deliberately not range-checked: the engine treats
// out-of-range thresholds as defined behavior (a check that never or always
// fires). Only values the front ends cannot interpret are rejected.
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"csv":  true,
		"html": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv, html", c.Output.Format)
	}

	validSortBy := map[string]bool{
		"path":   true,
		"debt":   true,
		"issues": true,
	}
	if !validSortBy[c.Output.SortBy] {
		return fmt.Errorf("invalid output.sort_by '%s', must be one of: path, debt, issues", c.Output.SortBy)
	}

	validSeverities := map[string]bool{
		"info":     true,
		"warning":  true,
		"critical": true,
	}
	if !validSeverities[c.Output.MinSeverity] {
		return fmt.Errorf("invalid output.min_severity '%s', must be one of: info, warning, critical", c.Output.MinSeverity)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("checks", config.Checks)
	v.Set("thresholds", config.Thresholds)
	v.Set("patterns", config.Patterns)
	v.Set("output", config.Output)
	v.Set("analysis", config.Analysis)

	return v.WriteConfig()
}
