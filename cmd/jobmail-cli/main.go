package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jobsy/jobmail-analyzer/internal/adapters/ingest"
	"github.com/jobsy/jobmail-analyzer/internal/adapters/store"
	"github.com/jobsy/jobmail-analyzer/internal/config"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/jobsy/jobmail-analyzer/internal/factory"
	"github.com/jobsy/jobmail-analyzer/internal/logging"
	"github.com/jobsy/jobmail-analyzer/internal/whitelist"
	"go.uber.org/zap"
)

var (
	// LLM provider flags
	llmEnabled  = flag.Bool("llm", false, "Enable the LLM second-chance judgment path")
	provider    = flag.String("provider", "gemini", "LLM provider (bedrock, gemini, openai)")
	maxTokens   = flag.Int("max-tokens", 1000, "Maximum tokens for LLM response")
	temperature = flag.Float64("temperature", 0.1, "Temperature for LLM generation")
	topP        = flag.Float64("top-p", 0.9, "Top-p for LLM generation")
	maxBodySize = flag.Int("max-body-size", 4096, "Maximum email body size to send to LLM")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-1.5-flash", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4o-mini", "OpenAI model name")

	// Classifier flags
	classifierAPIKey = flag.String("classifier-api-key", "", "API key for the hosted classifier models")
	confidenceFloor  = flag.Float64("confidence-floor", 0.1, "Minimum classification confidence to keep a result")

	// Input flags
	user       = flag.String("user", "default", "User the analyzed applications belong to")
	inputFile  = flag.String("file", "", "Input email file (use stdin if not specified)")
	mboxFile   = flag.String("mbox", "", "Input mbox file holding multiple emails")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	service := buildService(cfg, logger)

	// Read emails from mbox, file or stdin
	emails := readEmails(logger)
	if len(emails) == 0 {
		logger.Fatal("No parseable emails in input")
	}

	fmt.Printf("\n=== Analysis ===\n")
	fmt.Printf("User: %s\n", *user)
	fmt.Printf("Emails: %d\n", len(emails))
	fmt.Printf("LLM enabled: %t\n", cfg.GetBool("llm.enabled"))

	startTime := time.Now()
	result, err := service.AnalyzeBatch(context.Background(), *user, emails)
	if err != nil {
		logger.Fatal("Failed to analyze emails", zap.Error(err))
	}
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("%s\n", result.Message)
	fmt.Printf("Model confidence: %.2f\n", result.ModelConfidence)
	fmt.Printf("Processing time: %v\n", duration)

	for i, app := range result.Applications {
		fmt.Printf("\n--- Application %d ---\n", i+1)
		fmt.Printf("Company: %s\n", app.CompanyName)
		fmt.Printf("Position: %s\n", app.Position)
		fmt.Printf("Status: %s\n", app.Status)
		fmt.Printf("Category: %s (%.2f, %s)\n", app.Category, app.Confidence, app.Source)
		fmt.Printf("Reasoning: %s\n", app.Reasoning)
		if app.Extracted != nil {
			fmt.Printf("Date: %s / %s\n", app.Extracted.Date, app.Extracted.Time)
			fmt.Printf("Platform: %s\n", app.Extracted.Platform)
			fmt.Printf("Priority: %s\n", app.Extracted.PriorityLevel)
		}
	}
}

// buildService hand-wires the analysis pipeline for one-shot CLI use
func buildService(cfg *config.Config, logger *zap.Logger) *core.AnalyzerService {
	textProcessor := factory.NewTextProcessorFactory(logger).CreateTextProcessor()

	llmClient, err := factory.NewLLMFactory(cfg, logger, textProcessor).CreateLLMClient()
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	freeMail := whitelist.NewChecker(cfg.GetStringSlice("extract.freemail_domains"), logger)
	rules := core.NewRuleEngine(logger)
	classifier := factory.NewClassifierFactory(cfg, logger).CreateModelClassifier(rules)
	analysisCfg := cfg.GetAnalysis()

	return core.NewAnalyzerService(
		rules,
		classifier,
		core.NewExtractor(freeMail, logger),
		core.NewEnricher(logger),
		core.NewLearningTracker(),
		llmClient,
		store.NewMemoryStore(logger),
		nil,
		textProcessor,
		analysisCfg.ConfidenceFloor,
		analysisCfg.MaxTextSize,
		logger,
	)
}

// readEmails loads the input emails from the selected source
func readEmails(logger *zap.Logger) []*core.RawEmail {
	if *mboxFile != "" {
		file, err := os.Open(*mboxFile)
		if err != nil {
			logger.Fatal("Failed to open mbox file", zap.Error(err), zap.String("file", *mboxFile))
		}
		defer file.Close()

		emails, err := ingest.ReadMbox(bufio.NewReader(file))
		if err != nil {
			logger.Fatal("Failed to read mbox file", zap.Error(err))
		}
		logger.Info("Read emails from mbox", zap.String("file", *mboxFile), zap.Int("count", len(emails)))
		return emails
	}

	var reader *bufio.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		reader = bufio.NewReader(file)
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		reader = bufio.NewReader(os.Stdin)
		logger.Info("Reading email from stdin")
	}

	email, err := ingest.ParseMessage(reader)
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}
	return []*core.RawEmail{email}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	// Set LLM provider
	v.Set("llm.enabled", *llmEnabled)
	v.Set("llm.provider", *provider)

	// Set provider-specific configuration
	switch *provider {
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
		v.Set("bedrock.max_tokens", *maxTokens)
		v.Set("bedrock.temperature", *temperature)
		v.Set("bedrock.top_p", *topP)
		v.Set("bedrock.max_body_size", *maxBodySize)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
		v.Set("gemini.max_tokens", *maxTokens)
		v.Set("gemini.temperature", *temperature)
		v.Set("gemini.top_p", *topP)
		v.Set("gemini.max_body_size", *maxBodySize)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.max_tokens", *maxTokens)
		v.Set("openai.temperature", *temperature)
		v.Set("openai.top_p", *topP)
		v.Set("openai.max_body_size", *maxBodySize)
	}

	// Set classifier configuration
	v.Set("classifier.base_url", "https://api-inference.huggingface.co/models")
	v.Set("classifier.api_key", *classifierAPIKey)
	v.Set("classifier.primary_model", "dbmdz/bert-base-turkish-cased")
	v.Set("classifier.fallback_model", "bert-base-multilingual-cased")
	v.Set("classifier.timeout", "10s")

	// Set analysis configuration
	v.Set("analysis.confidence_floor", *confidenceFloor)
	v.Set("analysis.max_text_size", 4096)

	// Set free-mail domains
	v.Set("extract.freemail_domains", []string{})

	return config.NewFromViper(v)
}
