package config

import "time"

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
	Enabled  bool
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// ClassifierConfig represents the configuration for the transformer
// text classification backend
type ClassifierConfig struct {
	BaseURL       string
	APIKey        string
	PrimaryModel  string
	FallbackModel string
	Timeout       time.Duration
	Labels        []string
}

// AnalysisConfig represents the configuration for the analysis pipeline
type AnalysisConfig struct {
	ConfidenceFloor float64
	MaxTextSize     int
}

// StoreConfig represents the configuration for application persistence
type StoreConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// SimilarityConfig represents the configuration for the similarity index
type SimilarityConfig struct {
	Enabled        bool
	APIKey         string
	EmbeddingModel string
}

// IngestConfig represents the configuration for the SMTP ingestor
type IngestConfig struct {
	ListenAddress string
	DefaultUser   string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
		Enabled:  c.GetBool("llm.enabled"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetClassifier returns the transformer classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	timeout, err := c.GetDuration("classifier.timeout")
	if err != nil {
		timeout = 10 * time.Second
	}
	return ClassifierConfig{
		BaseURL:       c.GetString("classifier.base_url"),
		APIKey:        c.GetString("classifier.api_key"),
		PrimaryModel:  c.GetString("classifier.primary_model"),
		FallbackModel: c.GetString("classifier.fallback_model"),
		Timeout:       timeout,
		Labels:        c.GetStringSlice("classifier.labels"),
	}
}

// GetAnalysis returns the analysis pipeline configuration
func (c *Config) GetAnalysis() AnalysisConfig {
	return AnalysisConfig{
		ConfidenceFloor: c.GetFloat64("analysis.confidence_floor"),
		MaxTextSize:     c.GetInt("analysis.max_text_size"),
	}
}

// GetStore returns the persistence configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}

// GetSimilarity returns the similarity index configuration
func (c *Config) GetSimilarity() SimilarityConfig {
	apiKey := c.GetString("similarity.api_key")
	if apiKey == "" {
		apiKey = c.GetString("openai.api_key")
	}
	return SimilarityConfig{
		Enabled:        c.GetBool("similarity.enabled"),
		APIKey:         apiKey,
		EmbeddingModel: c.GetString("similarity.embedding_model"),
	}
}

// GetIngest returns the SMTP ingestor configuration
func (c *Config) GetIngest() IngestConfig {
	return IngestConfig{
		ListenAddress: c.GetString("ingest.listen_address"),
		DefaultUser:   c.GetString("ingest.default_user"),
	}
}
