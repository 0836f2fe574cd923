package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/qube/domain"
	"github.com/ludo-technologies/qube/internal/config"
	"github.com/ludo-technologies/qube/service"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectGDFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "player.gd", "var x := 1\n")
	writeFile(t, dir, filepath.Join("scripts", "enemy.gd"), "var y := 2\n")
	writeFile(t, dir, "readme.md", "docs\n")
	writeFile(t, dir, filepath.Join(".godot", "cache.gd"), "var z := 3\n")

	helper := NewFileHelper()

	files, err := helper.CollectGDFiles([]string{dir}, true, nil, []string{".godot"})
	if err != nil {
		t.Fatalf("Expected collection to succeed, got %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %v", files)
	}
	for _, f := range files {
		if strings.Contains(f, ".godot") || strings.HasSuffix(f, ".md") {
			t.Errorf("Unexpected file collected: %s", f)
		}
	}
}

func TestCollectGDFilesNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.gd", "var x := 1\n")
	writeFile(t, dir, filepath.Join("nested", "deep.gd"), "var y := 2\n")

	files, err := NewFileHelper().CollectGDFiles([]string{dir}, false, nil, nil)
	if err != nil {
		t.Fatalf("Expected collection to succeed, got %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "top.gd" {
		t.Errorf("Expected only the top-level file, got %v", files)
	}
}

func TestResolveFilePathsPassthrough(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.gd", "")
	b := writeFile(t, dir, "b.gd", "")

	files, err := ResolveFilePaths(NewFileHelper(), []string{a, b}, true, nil, nil)
	if err != nil {
		t.Fatalf("Expected passthrough, got %v", err)
	}
	if len(files) != 2 || files[0] != a || files[1] != b {
		t.Errorf("Expected untouched file list, got %v", files)
	}
}

func TestIsValidGDFile(t *testing.T) {
	helper := NewFileHelper()
	if !helper.IsValidGDFile("scripts/player.gd") || !helper.IsValidGDFile("UPPER.GD") {
		t.Error("Expected .gd files to be valid")
	}
	if helper.IsValidGDFile("main.go") || helper.IsValidGDFile("scene.tscn") {
		t.Error("Expected non-GDScript files to be invalid")
	}
}

func TestLintUseCaseBuilder(t *testing.T) {
	svc := service.NewLintService(config.DefaultConfig())
	formatter := service.NewOutputFormatter()

	if _, err := NewLintUseCaseBuilder().Build(); err == nil {
		t.Error("Expected an error without collaborators")
	}
	if _, err := NewLintUseCaseBuilder().WithService(svc).Build(); err == nil {
		t.Error("Expected an error without a formatter")
	}

	useCase, err := NewLintUseCaseBuilder().WithService(svc).WithFormatter(formatter).Build()
	if err != nil || useCase == nil {
		t.Fatalf("Expected a built use case, got %v", err)
	}
}

func TestLintUseCaseExecute(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "game.gd", "func play() -> void:\n\tprint(\"hi\")\n")

	useCase, err := NewLintUseCaseBuilder().
		WithService(service.NewLintService(config.DefaultConfig())).
		WithFormatter(service.NewOutputFormatter()).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	resp, err := useCase.Execute(context.Background(), domain.LintRequest{
		Paths:        []string{dir},
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &buf,
		Recursive:    true,
	})
	if err != nil {
		t.Fatalf("Expected execution to succeed, got %v", err)
	}
	if resp.Summary.FilesAnalyzed != 1 {
		t.Errorf("Expected 1 file, got %d", resp.Summary.FilesAnalyzed)
	}
	if !strings.Contains(buf.String(), "print-statement") {
		t.Errorf("Expected the report in the writer, got:\n%s", buf.String())
	}
}

func TestLintUseCaseRejectsNonGDFile(t *testing.T) {
	useCase, err := NewLintUseCaseBuilder().
		WithService(service.NewLintService(config.DefaultConfig())).
		WithFormatter(service.NewOutputFormatter()).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := useCase.AnalyzeFile(context.Background(), "main.go", domain.LintRequest{}); err == nil {
		t.Error("Expected an error for a non-GDScript file")
	}
}

func TestLintUseCaseEmptyDirectory(t *testing.T) {
	useCase, err := NewLintUseCaseBuilder().
		WithService(service.NewLintService(config.DefaultConfig())).
		WithFormatter(service.NewOutputFormatter()).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	_, err = useCase.Execute(context.Background(), domain.LintRequest{
		Paths:     []string{t.TempDir()},
		Recursive: true,
	})
	if err == nil {
		t.Error("Expected an error for a directory without GDScript files")
	}
}
