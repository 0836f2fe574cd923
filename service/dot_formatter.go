package service

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ludo-technologies/qube/domain"
)

// DOTFormatterConfig configures the DOT formatter behavior
type DOTFormatterConfig struct {
	// RankDir is the layout direction: TB, LR, BT, RL
	RankDir string

	// ShowScenes includes non-script resources (scenes, assets) as nodes
	ShowScenes bool
}

// DefaultDOTFormatterConfig returns a DOTFormatterConfig with sensible defaults
func DefaultDOTFormatterConfig() *DOTFormatterConfig {
	return &DOTFormatterConfig{
		RankDir:    "LR",
		ShowScenes: true,
	}
}

// DOTFormatter renders the preload/load resource graph as DOT for Graphviz.
// Script files are boxes; other resources are ellipses.
type DOTFormatter struct {
	config *DOTFormatterConfig
}

// NewDOTFormatter creates a new DOT formatter with the given configuration
func NewDOTFormatter(config *DOTFormatterConfig) *DOTFormatter {
	if config == nil {
		config = DefaultDOTFormatterConfig()
	}
	return &DOTFormatter{config: config}
}

// Write renders the dependency graph of the analyzed files
func (f *DOTFormatter) Write(response *domain.LintResponse, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("digraph dependencies {\n")
	fmt.Fprintf(&sb, "  rankdir=%s;\n", f.config.RankDir)
	sb.WriteString("  node [fontname=\"Helvetica\", fontsize=10];\n\n")

	scripts := make(map[string]bool, len(response.Files))
	for _, file := range response.Files {
		scripts[file.FilePath] = true
	}

	// Deterministic node order
	resources := map[string]bool{}
	for _, file := range response.Files {
		fmt.Fprintf(&sb, "  %s [shape=box, label=%q];\n", nodeID(file.FilePath), file.FilePath)
		for _, dep := range file.Dependencies {
			if !scripts[dep] {
				resources[dep] = true
			}
		}
	}

	if f.config.ShowScenes {
		names := make([]string, 0, len(resources))
		for name := range resources {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "  %s [shape=ellipse, style=dashed, label=%q];\n", nodeID(name), name)
		}
	}

	sb.WriteString("\n")
	for _, file := range response.Files {
		for _, dep := range file.Dependencies {
			if !f.config.ShowScenes && !scripts[dep] {
				continue
			}
			fmt.Fprintf(&sb, "  %s -> %s;\n", nodeID(file.FilePath), nodeID(dep))
		}
	}

	sb.WriteString("}\n")

	_, err := io.WriteString(writer, sb.String())
	return err
}

// nodeID derives a stable DOT identifier from a resource path
func nodeID(path string) string {
	base := strings.TrimPrefix(path, "res://")
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var sb strings.Builder
	sb.WriteString("n_")
	for _, c := range base {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			sb.WriteRune(c)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
