package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "qube"

	// ConfigFileName is the default config file name
	ConfigFileName = "qube.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "QUBE"

	// SourceFileExtension is the GDScript file extension
	SourceFileExtension = ".gd"
)

// DirectivePrefix is the marker that introduces a suppression directive
// inside a source comment, e.g. "# qube:ignore-next-line:magic-number".
const DirectivePrefix = "qube:"

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
	OutputFormatCSV  = "csv"
	OutputFormatHTML = "html"
	OutputFormatDOT  = "dot"
)

// Exit codes for the check command
const (
	ExitCodeClean    = 0
	ExitCodeWarning  = 1
	ExitCodeCritical = 2
)
