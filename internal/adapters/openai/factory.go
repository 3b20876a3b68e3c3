package openai

import (
	"github.com/jobsy/jobmail-analyzer/internal/config"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"go.uber.org/zap"
)

// Factory creates new instances of OpenAIClient
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for OpenAIClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateLLMClient creates a new OpenAIClient
func (f *Factory) CreateLLMClient() (core.LLMClient, error) {
	openaiCfg := f.cfg.GetOpenAI()

	return NewOpenAIClient(
		openaiCfg.APIKey,
		openaiCfg.ModelName,
		openaiCfg.MaxTokens,
		openaiCfg.Temperature,
		openaiCfg.TopP,
		openaiCfg.MaxBodySize,
		f.logger,
	), nil
}
