package service

import (
	"github.com/ludo-technologies/qube/domain"
	"github.com/ludo-technologies/qube/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.LintRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.toRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration, searching the usual
// config locations first.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.LintRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return c.toRequest(cfg)
}

// MergeConfig merges CLI flags with configuration file values; non-zero
// override fields win.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.LintRequest, override *domain.LintRequest) *domain.LintRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.NoOpen {
		merged.NoOpen = true
	}
	if override.ShowDetails {
		merged.ShowDetails = true
	}
	if override.MinSeverity != "" {
		merged.MinSeverity = override.MinSeverity
	}
	if override.SortBy != "" {
		merged.SortBy = override.SortBy
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}
	return &merged
}

func (c *ConfigurationLoaderImpl) toRequest(cfg *config.Config) *domain.LintRequest {
	return &domain.LintRequest{
		OutputFormat:    domain.OutputFormat(cfg.Output.Format),
		ShowDetails:     cfg.Output.ShowDetails,
		MinSeverity:     domain.Severity(cfg.Output.MinSeverity),
		SortBy:          domain.SortCriteria(cfg.Output.SortBy),
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}
}
