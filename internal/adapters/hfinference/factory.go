package hfinference

import (
	"github.com/jobsy/jobmail-analyzer/internal/config"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"go.uber.org/zap"
)

// Factory creates classifiers for the configured model ladder
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new classifier factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreatePrimaryClassifier creates the classifier for the primary model
func (f *Factory) CreatePrimaryClassifier() core.TextClassifier {
	clsCfg := f.cfg.GetClassifier()
	if clsCfg.PrimaryModel == "" {
		return nil
	}
	return NewClassifier(clsCfg.BaseURL, clsCfg.APIKey, clsCfg.PrimaryModel, clsCfg.Timeout, f.logger)
}

// CreateFallbackClassifier creates the classifier for the fallback model
func (f *Factory) CreateFallbackClassifier() core.TextClassifier {
	clsCfg := f.cfg.GetClassifier()
	if clsCfg.FallbackModel == "" {
		return nil
	}
	return NewClassifier(clsCfg.BaseURL, clsCfg.APIKey, clsCfg.FallbackModel, clsCfg.Timeout, f.logger)
}
