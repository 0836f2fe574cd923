package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/qube/app"
	"github.com/ludo-technologies/qube/domain"
	"github.com/ludo-technologies/qube/internal/config"
	"github.com/ludo-technologies/qube/internal/constants"
	"github.com/ludo-technologies/qube/service"
	"github.com/spf13/cobra"
)

// CheckExitError carries an explicit process exit code out of a command
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkConfigPath string
	checkJSON       bool
	checkQuiet      bool
	checkMaxDebt    int
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fast quality gate for CI/CD pipelines",
		Long: `Run the analysis and exit with a code reflecting the worst issue found.

Exit codes:
  0 - No warnings or critical issues
  1 - At least one warning
  2 - At least one critical issue

Suppressed issues never affect the exit code.

Examples:
  qube check .
  qube check scripts/ --quiet
  qube check . --json
  qube check . --max-debt 500`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false,
		"Only set the exit code, print nothing on success")
	cmd.Flags().IntVar(&checkMaxDebt, "max-debt", 0,
		"Fail (exit 1) when the total debt score exceeds this value (0 = no limit)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: 1, Message: "no paths specified"}
	}

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: 1, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	svc := service.NewLintService(cfg)
	formatter := service.NewOutputFormatter()

	useCase, err := app.NewLintUseCaseBuilder().
		WithService(svc).
		WithFormatter(formatter).
		Build()
	if err != nil {
		return &CheckExitError{Code: 1, Message: err.Error()}
	}

	format := domain.OutputFormatText
	var writer io.Writer = os.Stdout
	if checkJSON {
		format = domain.OutputFormatJSON
	} else if checkQuiet {
		writer = io.Discard
	}

	req := domain.LintRequest{
		Paths:           args,
		OutputFormat:    format,
		OutputWriter:    writer,
		MinSeverity:     domain.Severity(cfg.Output.MinSeverity),
		SortBy:          domain.SortCriteria(cfg.Output.SortBy),
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}

	response, err := useCase.Execute(context.Background(), req)
	if err != nil {
		return &CheckExitError{Code: 1, Message: err.Error()}
	}

	exitCode := response.Summary.ExitCode
	if checkMaxDebt > 0 && response.Summary.TotalDebtScore > checkMaxDebt &&
		exitCode < constants.ExitCodeWarning {
		exitCode = constants.ExitCodeWarning
	}

	if exitCode != constants.ExitCodeClean {
		return &CheckExitError{Code: exitCode}
	}
	return nil
}
