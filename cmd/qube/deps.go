package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/qube/app"
	"github.com/ludo-technologies/qube/domain"
	"github.com/ludo-technologies/qube/internal/config"
	"github.com/ludo-technologies/qube/service"
	"github.com/spf13/cobra"
)

var (
	depsOutputPath string
	depsRankDir    string
	depsNoScenes   bool
	depsConfigPath string
)

func depsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps [path...]",
		Short: "Render the preload/load dependency graph",
		Long: `Extract preload("...") and load("...") references from GDScript files and
render them as a Graphviz DOT graph.

Examples:
  qube deps .
  qube deps . -o deps.dot
  qube deps . --rankdir TB | dot -Tsvg -o deps.svg
  qube deps . --no-scenes`,
		RunE: runDeps,
	}

	cmd.Flags().StringVarP(&depsOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVar(&depsRankDir, "rankdir", "LR",
		"Graph layout direction: TB, LR, BT, RL")
	cmd.Flags().BoolVar(&depsNoScenes, "no-scenes", false,
		"Only show script-to-script edges, skip scenes and assets")
	cmd.Flags().StringVarP(&depsConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runDeps(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	cfg, err := config.LoadConfigWithTarget(depsConfigPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fileHelper := app.NewFileHelper()
	files, err := app.ResolveFilePaths(fileHelper, args, cfg.Analysis.Recursive,
		cfg.Analysis.IncludePatterns, cfg.Analysis.ExcludePatterns)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no GDScript files found")
	}

	svc := service.NewLintService(cfg)
	response, err := svc.Analyze(context.Background(), domain.LintRequest{
		Paths:  files,
		SortBy: domain.SortByPath,
	})
	if err != nil {
		return err
	}

	var writer io.Writer = os.Stdout
	if depsOutputPath != "" {
		file, err := os.Create(depsOutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	dotCfg := &service.DOTFormatterConfig{
		RankDir:    depsRankDir,
		ShowScenes: !depsNoScenes,
	}
	return service.NewDOTFormatter(dotCfg).Write(response, writer)
}
