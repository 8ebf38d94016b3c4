package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := NewConfig()
	cfg.ChatAPIKey = "groq-key"
	cfg.SearchAPIKey = "serper-key"
	return cfg
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	require.Equal(t, "llama-3.3-70b-versatile", cfg.ModelName)
	require.Equal(t, 5, cfg.MaxResults)
	require.Equal(t, 5*time.Second, cfg.CrawlTimeout)
	require.Equal(t, 2000, cfg.MaxContentSize)
	require.Equal(t, 5, cfg.HistoryWindow)
	require.InDelta(t, 0.7, cfg.Temperature, 1e-6)
	require.Equal(t, ExtractText, cfg.ExtractMode)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing chat key", func(c *Config) { c.ChatAPIKey = "" }},
		{"missing search key", func(c *Config) { c.SearchAPIKey = "" }},
		{"empty model", func(c *Config) { c.ModelName = "" }},
		{"too many results", func(c *Config) { c.MaxResults = 11 }},
		{"zero results", func(c *Config) { c.MaxResults = 0 }},
		{"zero timeout", func(c *Config) { c.CrawlTimeout = 0 }},
		{"zero window", func(c *Config) { c.HistoryWindow = 0 }},
		{"bad temperature", func(c *Config) { c.Temperature = 3 }},
		{"bad mode", func(c *Config) { c.ExtractMode = "browser" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "g-123")
	t.Setenv("SERPER_API_KEY", "s-456")
	t.Setenv("GROQ_MODEL", "mixtral-8x7b")

	v := viper.New()
	SetDefaults(v)
	require.NoError(t, BindEnv(v))

	cfg := Load(v)
	require.Equal(t, "g-123", cfg.ChatAPIKey)
	require.Equal(t, "s-456", cfg.SearchAPIKey)
	require.Equal(t, "mixtral-8x7b", cfg.ModelName)
	require.Equal(t, 5*time.Second, cfg.CrawlTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadDefaultModel(t *testing.T) {
	t.Setenv("GROQ_MODEL", "")

	v := viper.New()
	SetDefaults(v)
	require.NoError(t, BindEnv(v))

	require.Equal(t, "llama-3.3-70b-versatile", Load(v).ModelName)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyMaxResults, 3)
	v.Set(KeyExtractMode, ExtractReadability)
	v.Set(KeyVerbose, true)

	cfg := Load(v)
	require.Equal(t, 3, cfg.MaxResults)
	require.Equal(t, ExtractReadability, cfg.ExtractMode)
	require.True(t, cfg.Verbose)
}
