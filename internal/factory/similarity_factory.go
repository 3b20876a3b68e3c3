package factory

import (
	"github.com/jobsy/jobmail-analyzer/internal/adapters/similarity"
	"github.com/jobsy/jobmail-analyzer/internal/config"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"go.uber.org/zap"
)

// SimilarityFactory creates similarity indexes
type SimilarityFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSimilarityFactory creates a new similarity factory
func NewSimilarityFactory(cfg *config.Config, logger *zap.Logger) *SimilarityFactory {
	return &SimilarityFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSimilarityIndex creates a similarity index. Returns nil when
// the index is disabled; the pipeline treats indexing as best-effort.
func (f *SimilarityFactory) CreateSimilarityIndex() core.SimilarityIndex {
	simCfg := f.cfg.GetSimilarity()
	if !simCfg.Enabled {
		return nil
	}
	return similarity.NewOpenAIIndex(simCfg.APIKey, simCfg.EmbeddingModel, f.logger)
}
