package factory

import (
	"fmt"

	"github.com/jobsy/jobmail-analyzer/internal/adapters/bedrock"
	"github.com/jobsy/jobmail-analyzer/internal/adapters/gemini"
	"github.com/jobsy/jobmail-analyzer/internal/adapters/openai"
	"github.com/jobsy/jobmail-analyzer/internal/config"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/jobsy/jobmail-analyzer/internal/utils"
	"go.uber.org/zap"
)

// LLMFactory creates LLM clients
type LLMFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *LLMFactory {
	return &LLMFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLLMClient creates a new LLM client based on the configuration.
// Returns nil when the LLM judgment path is disabled.
func (f *LLMFactory) CreateLLMClient() (core.LLMClient, error) {
	llmConfig := f.cfg.GetLLM()
	if !llmConfig.Enabled {
		f.logger.Info("LLM judgment path disabled, relying on keyword fallback")
		return nil, nil
	}

	switch llmConfig.Provider {
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateLLMClient()
	case "gemini":
		geminiCfg := f.cfg.GetGemini()
		factory := gemini.NewFactory(
			geminiCfg.APIKey,
			geminiCfg.ModelName,
			geminiCfg.MaxTokens,
			geminiCfg.Temperature,
			geminiCfg.TopP,
			geminiCfg.MaxBodySize,
			f.logger,
		)
		return factory.CreateLLMClient()
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger)
		return factory.CreateLLMClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
