package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/jobmail-analyzer/")
	v.AddConfigPath("$HOME/.jobmail-analyzer")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("JOBMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM provider defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.enabled", true)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-1.5-flash")
	v.SetDefault("gemini.max_tokens", 1000)
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.top_p", 0.9)
	v.SetDefault("gemini.max_body_size", 4096)

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 1000)
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.top_p", 0.9)
	v.SetDefault("openai.max_body_size", 4096)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 1000)
	v.SetDefault("bedrock.temperature", 0.1)
	v.SetDefault("bedrock.top_p", 0.9)
	v.SetDefault("bedrock.max_body_size", 4096)

	// Transformer classifier defaults
	v.SetDefault("classifier.base_url", "https://api-inference.huggingface.co/models")
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.primary_model", "dbmdz/bert-base-turkish-cased")
	v.SetDefault("classifier.fallback_model", "bert-base-multilingual-cased")
	v.SetDefault("classifier.timeout", "10s")
	v.SetDefault("classifier.labels", []string{
		"etkinlik_daveti",
		"mulakat_daveti",
		"teknik_test",
		"basvuru_onayi",
		"is_teklifi",
		"red_bildirimi",
		"genel_bilgilendirme",
		"spam_reklam",
	})

	// Analysis defaults
	v.SetDefault("analysis.confidence_floor", 0.1)
	v.SetDefault("analysis.max_text_size", 4096)

	// Extraction defaults
	v.SetDefault("extract.freemail_domains", []string{
		"gmail", "hotmail", "outlook", "yahoo", "icloud", "yandex",
		"protonmail", "live", "msn", "aol", "mail",
	})

	// Store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.sqlite_path", "/data/jobmail.db")
	v.SetDefault("store.mysql_dsn", "user:password@tcp(localhost:3306)/jobmail")

	// Similarity defaults
	v.SetDefault("similarity.enabled", false)
	v.SetDefault("similarity.embedding_model", "text-embedding-3-small")

	// Ingest defaults
	v.SetDefault("ingest.listen_address", "0.0.0.0:10025")
	v.SetDefault("ingest.default_user", "default")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
