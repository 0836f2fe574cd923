package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/qube/app"
	"github.com/ludo-technologies/qube/domain"
	"github.com/ludo-technologies/qube/internal/config"
	"github.com/ludo-technologies/qube/service"
	"github.com/spf13/cobra"
)

var (
	outputFormat  string
	jsonOutput    bool
	htmlOutput    bool
	noOpenBrowser bool
	outputPath    string
	configPath    string
	showDetails   bool
	minSeverity   string
	sortBy        string
	noRecursive   bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Analyze GDScript files",
		Long: `Analyze GDScript files for maintainability issues and technical debt.

Examples:
  qube analyze .
  qube analyze scripts/ --format json
  qube analyze player.gd --details
  qube analyze . --html -o report.html
  qube analyze . --min-severity warning --sort issues`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Output format: text, json, yaml, csv, html")
	cmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&htmlOutput, "html", false,
		"Output results as HTML (shorthand for --format html)")
	cmd.Flags().BoolVar(&noOpenBrowser, "no-open", false,
		"Don't auto-open HTML report in browser")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path (default: qube-report.html for HTML)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&showDetails, "details", false,
		"Show per-function metrics")
	cmd.Flags().StringVar(&minSeverity, "min-severity", "",
		"Minimum severity to report: info, warning, critical")
	cmd.Flags().StringVar(&sortBy, "sort", "",
		"Sort files by: path, debt, issues")
	cmd.Flags().BoolVar(&noRecursive, "no-recursive", false,
		"Don't descend into subdirectories")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	cfg, err := config.LoadConfigWithTarget(configPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	format := resolveFormat(cfg)
	quiet := format != domain.OutputFormatText

	pm := service.NewProgressManager(!quiet)
	defer pm.Close()

	svc := service.NewLintServiceWithProgress(cfg, pm)
	formatter := service.NewOutputFormatter()

	useCase, err := app.NewLintUseCaseBuilder().
		WithService(svc).
		WithFormatter(formatter).
		Build()
	if err != nil {
		return err
	}

	req := buildLintRequest(cfg, args, format)

	response, err := useCase.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	if req.ShowDetails && format == domain.OutputFormatText {
		formatter.WriteDetails(response, os.Stdout)
	}

	return nil
}

func resolveFormat(cfg *config.Config) domain.OutputFormat {
	switch {
	case jsonOutput:
		return domain.OutputFormatJSON
	case htmlOutput:
		return domain.OutputFormatHTML
	case outputFormat != "":
		return domain.OutputFormat(outputFormat)
	default:
		return domain.OutputFormat(cfg.Output.Format)
	}
}

func buildLintRequest(cfg *config.Config, paths []string, format domain.OutputFormat) domain.LintRequest {
	req := domain.LintRequest{
		Paths:           paths,
		OutputFormat:    format,
		OutputWriter:    os.Stdout,
		NoOpen:          noOpenBrowser,
		ShowDetails:     showDetails || cfg.Output.ShowDetails,
		MinSeverity:     domain.Severity(cfg.Output.MinSeverity),
		SortBy:          domain.SortCriteria(cfg.Output.SortBy),
		ConfigPath:      configPath,
		Recursive:       cfg.Analysis.Recursive && !noRecursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}

	if minSeverity != "" {
		req.MinSeverity = domain.Severity(minSeverity)
	}
	if sortBy != "" {
		req.SortBy = domain.SortCriteria(sortBy)
	}
	if format == domain.OutputFormatHTML {
		req.OutputPath = outputPath
		if req.OutputPath == "" {
			req.OutputPath = "qube-report.html"
		}
	}

	return req
}
