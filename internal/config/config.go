package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Extraction modes for the page crawler
const (
	ExtractText        = "text"
	ExtractReadability = "readability"
)

// Viper keys. Env bindings live in BindEnv.
const (
	KeyChatURL        = "chat.url"
	KeyChatAPIKey     = "chat.api_key"
	KeyModel          = "chat.model"
	KeyTemperature    = "chat.temperature"
	KeySearchURL      = "search.url"
	KeySearchAPIKey   = "search.api_key"
	KeyMaxResults     = "search.max_results"
	KeyCrawlTimeout   = "crawl.timeout"
	KeyMaxContent     = "crawl.max_chars"
	KeyExtractMode    = "crawl.mode"
	KeyUserAgent      = "crawl.user_agent"
	KeyHistoryWindow  = "history.window"
	KeyLanguage       = "language"
	KeyRenderMarkdown = "render"
	KeyVerbose        = "verbose"
	KeyDebug          = "debug"
)

// Config holds all application configuration
type Config struct {
	// Chat completion settings
	ChatURL     string
	ChatAPIKey  string
	ModelName   string
	Temperature float32

	// Search settings
	SearchURL    string
	SearchAPIKey string
	MaxResults   int

	// Crawler settings
	CrawlTimeout   time.Duration
	MaxContentSize int
	ExtractMode    string
	UserAgent      string

	// Conversation settings
	HistoryWindow int
	Language      string

	// Feature flags
	RenderMarkdown bool
	Verbose        bool
	Debug          bool
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		ChatURL:     "https://api.groq.com/openai/v1/chat/completions",
		ModelName:   "llama-3.3-70b-versatile",
		Temperature: 0.7,

		SearchURL:  "https://google.serper.dev/search",
		MaxResults: 5,

		CrawlTimeout:   5 * time.Second,
		MaxContentSize: 2000,
		ExtractMode:    ExtractText,
		UserAgent:      "web-groq/1.0",

		HistoryWindow: 5,
		Language:      "Spanish",
	}
}

// SetDefaults registers NewConfig's values as viper defaults.
func SetDefaults(v *viper.Viper) {
	d := NewConfig()
	v.SetDefault(KeyChatURL, d.ChatURL)
	v.SetDefault(KeyModel, d.ModelName)
	v.SetDefault(KeyTemperature, d.Temperature)
	v.SetDefault(KeySearchURL, d.SearchURL)
	v.SetDefault(KeyMaxResults, d.MaxResults)
	v.SetDefault(KeyCrawlTimeout, d.CrawlTimeout)
	v.SetDefault(KeyMaxContent, d.MaxContentSize)
	v.SetDefault(KeyExtractMode, d.ExtractMode)
	v.SetDefault(KeyUserAgent, d.UserAgent)
	v.SetDefault(KeyHistoryWindow, d.HistoryWindow)
	v.SetDefault(KeyLanguage, d.Language)
}

// BindEnv binds the credential and model keys to their environment variables.
func BindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		KeyChatAPIKey:   "GROQ_API_KEY",
		KeyModel:        "GROQ_MODEL",
		KeySearchAPIKey: "SERPER_API_KEY",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// Load builds a Config from viper. Unset keys keep NewConfig's defaults.
func Load(v *viper.Viper) *Config {
	cfg := NewConfig()

	cfg.ChatURL = v.GetString(KeyChatURL)
	cfg.ChatAPIKey = v.GetString(KeyChatAPIKey)
	cfg.ModelName = v.GetString(KeyModel)
	cfg.Temperature = float32(v.GetFloat64(KeyTemperature))

	cfg.SearchURL = v.GetString(KeySearchURL)
	cfg.SearchAPIKey = v.GetString(KeySearchAPIKey)
	cfg.MaxResults = v.GetInt(KeyMaxResults)

	cfg.CrawlTimeout = v.GetDuration(KeyCrawlTimeout)
	cfg.MaxContentSize = v.GetInt(KeyMaxContent)
	cfg.ExtractMode = v.GetString(KeyExtractMode)
	cfg.UserAgent = v.GetString(KeyUserAgent)

	cfg.HistoryWindow = v.GetInt(KeyHistoryWindow)
	cfg.Language = v.GetString(KeyLanguage)

	cfg.RenderMarkdown = v.GetBool(KeyRenderMarkdown)
	cfg.Verbose = v.GetBool(KeyVerbose)
	cfg.Debug = v.GetBool(KeyDebug)

	return cfg
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ChatURL == "" {
		return fmt.Errorf("chat URL cannot be empty")
	}
	if c.ChatAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is not set")
	}
	if c.ModelName == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if c.SearchURL == "" {
		return fmt.Errorf("search URL cannot be empty")
	}
	if c.SearchAPIKey == "" {
		return fmt.Errorf("SERPER_API_KEY is not set")
	}
	if c.MaxResults < 1 || c.MaxResults > 10 {
		return fmt.Errorf("max results must be between 1 and 10")
	}
	if c.CrawlTimeout <= 0 {
		return fmt.Errorf("crawl timeout must be positive")
	}
	if c.MaxContentSize < 1 {
		return fmt.Errorf("max content size must be at least 1")
	}
	if c.HistoryWindow < 1 {
		return fmt.Errorf("history window must be at least 1")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	switch c.ExtractMode {
	case ExtractText, ExtractReadability:
	default:
		return fmt.Errorf("unknown extract mode %q", c.ExtractMode)
	}
	return nil
}
