package config

import (
	"fmt"
	"strings"
)

// ProjectType represents the type of Godot project
type ProjectType string

const (
	ProjectTypeGame    ProjectType = "game"
	ProjectTypePlugin  ProjectType = "plugin"
	ProjectTypeLibrary ProjectType = "library"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds file collection presets for different project types
type ProjectPreset struct {
	ExcludedPaths   []string
	ExcludePatterns []string
}

// StrictnessPreset holds threshold values for different strictness levels
type StrictnessPreset struct {
	FileLengthSoft     int
	FileLengthHard     int
	FunctionLengthSoft int
	FunctionLengthHard int
	ComplexityWarning  int
	ComplexityCritical int
	MaxParams          int
	MaxNesting         int
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGame: {
			ExcludedPaths:   []string{"addons/", ".godot/", ".import/"},
			ExcludePatterns: []string{".godot", ".import", "addons", ".git"},
		},
		ProjectTypePlugin: {
			// Plugins live inside addons/, so only the editor caches are skipped
			ExcludedPaths:   []string{".godot/", ".import/"},
			ExcludePatterns: []string{".godot", ".import", ".git"},
		},
		ProjectTypeLibrary: {
			ExcludedPaths:   []string{".godot/", ".import/", "examples/", "demo/"},
			ExcludePatterns: []string{".godot", ".import", ".git", "examples", "demo"},
		},
	}
}

// GetStrictnessPresets returns threshold presets for each strictness level
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			FileLengthSoft:     300,
			FileLengthHard:     500,
			FunctionLengthSoft: 60,
			FunctionLengthHard: 120,
			ComplexityWarning:  15,
			ComplexityCritical: 30,
			MaxParams:          7,
			MaxNesting:         5,
		},
		StrictnessStandard: {
			FileLengthSoft:     DefaultFileLengthSoft,
			FileLengthHard:     DefaultFileLengthHard,
			FunctionLengthSoft: DefaultFunctionLengthSoft,
			FunctionLengthHard: DefaultFunctionLengthHard,
			ComplexityWarning:  DefaultComplexityWarning,
			ComplexityCritical: DefaultComplexityCritical,
			MaxParams:          DefaultMaxParams,
			MaxNesting:         DefaultMaxNesting,
		},
		StrictnessStrict: {
			FileLengthSoft:     150,
			FileLengthHard:     250,
			FunctionLengthSoft: 30,
			FunctionLengthHard: 60,
			ComplexityWarning:  8,
			ComplexityCritical: 15,
			MaxParams:          4,
			MaxNesting:         3,
		},
	}
}

// GetMinimalConfigTemplate returns a minimal qube.yaml with essential options
func GetMinimalConfigTemplate() string {
	return `# qube configuration
# See 'qube init' (without --minimal) for the fully documented template.

thresholds:
  file_length_soft: 200
  file_length_hard: 300
  function_length_soft: 40
  function_length_hard: 80
  complexity_warning: 10
  complexity_critical: 20
  max_params: 5
  max_nesting: 4
  max_line_length: 100

output:
  format: text
  sort_by: debt
  min_severity: info
`
}

// GetFullConfigTemplate returns a documented qube.yaml for the given
// project type and strictness level
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	project, ok := GetProjectPresets()[projectType]
	if !ok {
		project = GetProjectPresets()[ProjectTypeGame]
	}
	thresholds, ok := GetStrictnessPresets()[strictness]
	if !ok {
		thresholds = GetStrictnessPresets()[StrictnessStandard]
	}

	var sb strings.Builder

	sb.WriteString("# qube configuration\n")
	sb.WriteString(fmt.Sprintf("# Generated for project type %q with %q strictness.\n", projectType, strictness))
	sb.WriteString(`#
# Any check can be suppressed inline with directives such as:
#   # qube:ignore:magic-number          (this line)
#   # qube:ignore-next-line             (next line, all checks)
#   # qube:ignore-function:long-function
#   # qube:ignore-block-start ... # qube:ignore-block-end
#   # qube:ignore-file                  (first 10 lines of the file only)

# Enable or disable individual checks.
checks:
  file_length: true
  long_function: true
  high_complexity: true
  too_many_params: true
  deep_nesting: true
  empty_function: true
  missing_return_type: true
  god_class: true
  long_line: true
  todo_comment: true
  print_statement: true
  magic_number: true
  commented_code: true
  missing_type_hint: true

# Numeric limits. Soft limits report warnings, hard limits report critical
# issues and carry a higher debt weight.
thresholds:
`)
	sb.WriteString(fmt.Sprintf("  file_length_soft: %d\n", thresholds.FileLengthSoft))
	sb.WriteString(fmt.Sprintf("  file_length_hard: %d\n", thresholds.FileLengthHard))
	sb.WriteString(fmt.Sprintf("  function_length_soft: %d\n", thresholds.FunctionLengthSoft))
	sb.WriteString(fmt.Sprintf("  function_length_hard: %d\n", thresholds.FunctionLengthHard))
	sb.WriteString(fmt.Sprintf("  complexity_warning: %d\n", thresholds.ComplexityWarning))
	sb.WriteString(fmt.Sprintf("  complexity_critical: %d\n", thresholds.ComplexityCritical))
	sb.WriteString(fmt.Sprintf("  max_params: %d\n", thresholds.MaxParams))
	sb.WriteString(fmt.Sprintf("  max_nesting: %d\n", thresholds.MaxNesting))
	sb.WriteString("  max_line_length: 100\n")
	sb.WriteString("  max_public_functions: 10\n")
	sb.WriteString("  max_signals: 10\n")

	sb.WriteString(`
# Marker and pattern lists used by the line scanner.
patterns:
  excluded_paths:
`)
	for _, p := range project.ExcludedPaths {
		sb.WriteString(fmt.Sprintf("    - %q\n", p))
	}
	sb.WriteString(`  todo_markers: ["TODO", "FIXME", "HACK", "XXX"]
  print_patterns: ["print(", "prints(", "printt(", "print_debug(", "print_rich("]
  print_whitelist: ["push_error", "push_warning"]
  allowed_numbers: ["0", "1", "2", "-1", "0.0", "1.0"]

output:
  format: text
  show_details: false
  sort_by: debt
  min_severity: info

analysis:
  recursive: true
  exclude_patterns:
`)
	for _, p := range project.ExcludePatterns {
		sb.WriteString(fmt.Sprintf("    - %q\n", p))
	}

	return sb.String()
}
