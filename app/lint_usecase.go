package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/qube/domain"
	"github.com/ludo-technologies/qube/service"
)

// LintUseCase orchestrates the lint analysis workflow
type LintUseCase struct {
	service    domain.LintService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
}

// NewLintUseCase creates a new lint use case
func NewLintUseCase(svc domain.LintService, formatter domain.OutputFormatter) *LintUseCase {
	return &LintUseCase{
		service:    svc,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// Execute performs the complete lint workflow: collect files, analyze, and
// write the formatted result.
func (uc *LintUseCase) Execute(ctx context.Context, req domain.LintRequest) (*domain.LintResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	files, err := ResolveFilePaths(
		uc.fileHelper,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect files", err)
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no GDScript files found in the specified paths", nil)
	}

	req.Paths = files

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := uc.writeOutput(response, req); err != nil {
		return nil, err
	}

	return response, nil
}

// AnalyzeFile analyzes a single GDScript file
func (uc *LintUseCase) AnalyzeFile(ctx context.Context, filePath string, req domain.LintRequest) (*domain.LintResponse, error) {
	if !uc.fileHelper.IsValidGDFile(filePath) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("not a GDScript file: %s", filePath), nil)
	}

	exists, err := uc.fileHelper.FileExists(filePath)
	if err != nil {
		return nil, domain.NewFileNotFoundError(filePath, err)
	}
	if !exists {
		return nil, domain.NewFileNotFoundError(filePath, nil)
	}

	req.Paths = []string{filePath}
	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := uc.writeOutput(response, req); err != nil {
		return nil, err
	}
	return response, nil
}

// writeOutput renders the response. HTML output goes to a file and is opened
// in the browser unless disabled; everything else goes to the request writer.
func (uc *LintUseCase) writeOutput(response *domain.LintResponse, req domain.LintRequest) error {
	if req.OutputWriter == nil {
		return nil
	}

	if req.OutputFormat == domain.OutputFormatHTML && req.OutputPath != "" {
		file, err := os.Create(req.OutputPath)
		if err != nil {
			return domain.NewOutputError("failed to create report file", err)
		}
		defer file.Close()

		if err := uc.formatter.Write(response, req.OutputFormat, file); err != nil {
			return err
		}

		absPath, err := filepath.Abs(req.OutputPath)
		if err != nil {
			absPath = req.OutputPath
		}
		fmt.Fprintf(req.OutputWriter, "Report written to %s\n", absPath)

		if !req.NoOpen && !service.IsSSH() {
			if err := service.OpenBrowser("file://" + absPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open browser: %v\n", err)
			}
		}
		return nil
	}

	return uc.formatter.Write(response, req.OutputFormat, req.OutputWriter)
}

func (uc *LintUseCase) validateRequest(req domain.LintRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	return nil
}

// LintUseCaseBuilder provides a builder for assembling a LintUseCase
type LintUseCaseBuilder struct {
	service   domain.LintService
	formatter domain.OutputFormatter
}

// NewLintUseCaseBuilder creates a new builder
func NewLintUseCaseBuilder() *LintUseCaseBuilder {
	return &LintUseCaseBuilder{}
}

// WithService sets the lint service
func (b *LintUseCaseBuilder) WithService(svc domain.LintService) *LintUseCaseBuilder {
	b.service = svc
	return b
}

// WithFormatter sets the output formatter
func (b *LintUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *LintUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build assembles the use case, failing on missing collaborators
func (b *LintUseCaseBuilder) Build() (*LintUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("lint service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewLintUseCase(b.service, b.formatter), nil
}
