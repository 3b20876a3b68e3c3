package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/jobsy/jobmail-analyzer/internal/config"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/jobsy/jobmail-analyzer/internal/factory"
	"github.com/jobsy/jobmail-analyzer/internal/logging"
	"github.com/jobsy/jobmail-analyzer/internal/ports"
	"github.com/jobsy/jobmail-analyzer/internal/utils"
	"github.com/jobsy/jobmail-analyzer/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSimilarityFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewIngestFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register free-mail checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
		domains := cfg.GetStringSlice("extract.freemail_domains")
		if len(domains) > 0 {
			logger.Info("Loaded free-mail domains", zap.Strings("domains", domains))
		}
		return whitelist.NewChecker(domains, logger)
	}); err != nil {
		return nil, err
	}

	// Register pipeline stages
	if err := container.Provide(core.NewRuleEngine); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewExtractor); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewEnricher); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewLearningTracker); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.ClassifierFactory, rules *core.RuleEngine) *core.ModelClassifier {
		return f.CreateModelClassifier(rules)
	}); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register application store
	if err := container.Provide(func(f *factory.StoreFactory) (core.ApplicationStore, error) {
		return f.CreateApplicationStore()
	}); err != nil {
		return nil, err
	}

	// Register similarity index
	if err := container.Provide(func(f *factory.SimilarityFactory) core.SimilarityIndex {
		return f.CreateSimilarityIndex()
	}); err != nil {
		return nil, err
	}

	// Register analyzer service
	if err := container.Provide(func(
		cfg *config.Config,
		rules *core.RuleEngine,
		classifier *core.ModelClassifier,
		extractor *core.Extractor,
		enricher *core.Enricher,
		tracker *core.LearningTracker,
		llm core.LLMClient,
		store core.ApplicationStore,
		index core.SimilarityIndex,
		textProcessor *utils.TextProcessor,
		logger *zap.Logger,
	) *core.AnalyzerService {
		analysisCfg := cfg.GetAnalysis()
		return core.NewAnalyzerService(
			rules,
			classifier,
			extractor,
			enricher,
			tracker,
			llm,
			store,
			index,
			textProcessor,
			analysisCfg.ConfidenceFloor,
			analysisCfg.MaxTextSize,
			logger,
		)
	}); err != nil {
		return nil, err
	}

	// Register email ingestor
	if err := container.Provide(func(f *factory.IngestFactory) (ports.EmailIngestor, error) {
		return f.CreateEmailIngestor()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
