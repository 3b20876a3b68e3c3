package factory

import (
	"github.com/jobsy/jobmail-analyzer/internal/adapters/hfinference"
	"github.com/jobsy/jobmail-analyzer/internal/config"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"go.uber.org/zap"
)

// ClassifierFactory creates the model classification ladder
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateModelClassifier creates the classifier ladder: primary model,
// fallback model, then rule-based categorization
func (f *ClassifierFactory) CreateModelClassifier(rules *core.RuleEngine) *core.ModelClassifier {
	clsCfg := f.cfg.GetClassifier()
	backends := hfinference.NewFactory(f.cfg, f.logger)

	labels := make([]core.Category, 0, len(clsCfg.Labels))
	for _, label := range clsCfg.Labels {
		labels = append(labels, core.Category(label))
	}

	return core.NewModelClassifier(
		backends.CreatePrimaryClassifier(),
		backends.CreateFallbackClassifier(),
		rules,
		labels,
		clsCfg.Timeout,
		f.logger,
	)
}
