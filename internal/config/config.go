// Package config loads Cognito settings from the config file and COGNITO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Mahwas/Cognito/internal/llm"
)

// Config represents the complete Cognito configuration.
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LLMConfig selects and tunes the generation provider.
type LLMConfig struct {
	// Provider is one of gemini, openai, anthropic, openrouter, mock.
	// Empty means "probe the standard API key variables".
	Provider   string        `mapstructure:"provider"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Gemini     VendorConfig  `mapstructure:"gemini"`
	OpenAI     VendorConfig  `mapstructure:"openai"`
	Anthropic  VendorConfig  `mapstructure:"anthropic"`
	OpenRouter VendorConfig  `mapstructure:"openrouter"`
	Retry      RetryConfig   `mapstructure:"retry"`
	Rate       RateConfig    `mapstructure:"rate"`
}

// VendorConfig holds one provider's credentials and model.
type VendorConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

type RateConfig struct {
	PerMinute int `mapstructure:"per_minute"`
	Burst     int `mapstructure:"burst"`
}

// StorageConfig picks where the persisted state record lives. The LLM
// request log always stays in SQLite.
type StorageConfig struct {
	// Backend is "sqlite" (default) or "redis".
	Backend string      `mapstructure:"backend"`
	DBPath  string      `mapstructure:"db_path"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

// LoggingConfig controls the rotated log file.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Default returns a Config with default values.
func Default() *Config {
	l := llm.DefaultConfig()
	return &Config{
		LLM: LLMConfig{
			Timeout:    l.Timeout,
			Gemini:     VendorConfig{Model: l.Gemini.Model},
			OpenAI:     VendorConfig{Model: l.OpenAI.Model},
			Anthropic:  VendorConfig{Model: l.Anthropic.Model},
			OpenRouter: VendorConfig{Model: l.OpenRouter.Model},
			Retry: RetryConfig{
				MaxAttempts: l.Retry.MaxAttempts,
				InitialWait: l.Retry.InitialWait,
				MaxWait:     l.Retry.MaxWait,
				Multiplier:  l.Retry.Multiplier,
			},
			Rate: RateConfig{PerMinute: l.Rate.PerMinute, Burst: l.Rate.Burst},
		},
		Storage: StorageConfig{
			Backend: "sqlite",
			Redis:   RedisConfig{Key: "cognito:state"},
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       DefaultLogFile(),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers every key with v so environment overrides are
// picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	for name, vc := range map[string]VendorConfig{
		"gemini":     d.LLM.Gemini,
		"openai":     d.LLM.OpenAI,
		"anthropic":  d.LLM.Anthropic,
		"openrouter": d.LLM.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", vc.APIKey)
		v.SetDefault("llm."+name+".model", vc.Model)
		v.SetDefault("llm."+name+".base_url", vc.BaseURL)
	}
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)
	v.SetDefault("llm.rate.per_minute", d.LLM.Rate.PerMinute)
	v.SetDefault("llm.rate.burst", d.LLM.Rate.Burst)

	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.db_path", d.Storage.DBPath)
	v.SetDefault("storage.redis.addr", d.Storage.Redis.Addr)
	v.SetDefault("storage.redis.password", d.Storage.Redis.Password)
	v.SetDefault("storage.redis.db", d.Storage.Redis.DB)
	v.SetDefault("storage.redis.key", d.Storage.Redis.Key)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
}

// Load reads path (or ConfigFile() when empty) plus COGNITO_* environment
// variables and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("COGNITO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = ConfigFile()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyStandardKeys()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyStandardKeys picks a provider when none is named (a vendor with a
// key in the config file first, then GEMINI_API_KEY and friends) and fills
// missing vendor keys from those variables.
func (c *Config) applyStandardKeys() {
	if c.LLM.Provider == "" {
		for _, name := range []string{"gemini", "openai", "anthropic", "openrouter"} {
			if c.LLM.vendor(name).APIKey != "" {
				c.LLM.Provider = name
				break
			}
		}
	}
	if c.LLM.Provider == "" {
		if found, ok := llm.DiscoverConfig(llm.Config{}); ok {
			c.LLM.Provider = found.Provider
		}
	}

	fill := func(dst *VendorConfig, env string) {
		if dst.APIKey == "" {
			dst.APIKey = os.Getenv(env)
		}
	}
	fill(&c.LLM.Gemini, "GEMINI_API_KEY")
	fill(&c.LLM.OpenAI, "OPENAI_API_KEY")
	fill(&c.LLM.Anthropic, "ANTHROPIC_API_KEY")
	fill(&c.LLM.OpenRouter, "OPENROUTER_API_KEY")
}

func (c LLMConfig) vendor(name string) VendorConfig {
	switch name {
	case "gemini":
		return c.Gemini
	case "openai":
		return c.OpenAI
	case "anthropic":
		return c.Anthropic
	case "openrouter":
		return c.OpenRouter
	}
	return VendorConfig{}
}

// Validate checks values that do not depend on which provider is usable.
// A missing API key is reported by LLMConfig.Resolve() instead, so the
// app can still open saved plans offline.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case "sqlite":
	case "redis":
		if strings.TrimSpace(c.Storage.Redis.Addr) == "" {
			errs = append(errs, fmt.Errorf("storage.redis.addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be sqlite or redis, got %q", c.Storage.Backend))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	if c.LLM.Timeout < 0 {
		errs = append(errs, fmt.Errorf("llm.timeout must not be negative"))
	}
	if c.LLM.Rate.PerMinute < 0 {
		errs = append(errs, fmt.Errorf("llm.rate.per_minute must not be negative"))
	}
	return errors.Join(errs...)
}

// Resolve converts the LLM section into llm.Config and validates that the
// selected provider can be used.
func (c LLMConfig) Resolve() (llm.Config, error) {
	out := llm.Config{
		Provider: c.Provider,
		Gemini:   llm.GeminiConfig{APIKey: c.Gemini.APIKey, Model: c.Gemini.Model},
		OpenAI:   llm.OpenAIConfig{APIKey: c.OpenAI.APIKey, Model: c.OpenAI.Model, BaseURL: c.OpenAI.BaseURL},
		Anthropic: llm.AnthropicConfig{
			APIKey: c.Anthropic.APIKey,
			Model:  c.Anthropic.Model,
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  c.OpenRouter.APIKey,
			Model:   c.OpenRouter.Model,
			BaseURL: c.OpenRouter.BaseURL,
		},
		Retry: llm.RetryConfig{
			MaxAttempts: c.Retry.MaxAttempts,
			InitialWait: c.Retry.InitialWait,
			MaxWait:     c.Retry.MaxWait,
			Multiplier:  c.Retry.Multiplier,
		},
		Rate:    llm.RateConfig{PerMinute: c.Rate.PerMinute, Burst: c.Rate.Burst},
		Timeout: c.Timeout,
	}
	if out.Provider == "" {
		return out, fmt.Errorf("no LLM provider configured: set GEMINI_API_KEY or llm.provider in %s", ConfigFile())
	}
	return out, out.Validate()
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cognito")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cognito"
	}
	return filepath.Join(home, ".config", "cognito")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultLogFile returns $XDG_STATE_HOME/cognito/cognito.log, falling back
// to ~/.local/state.
func DefaultLogFile() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "cognito", "cognito.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cognito", "cognito.log")
	}
	return filepath.Join(home, ".local", "state", "cognito", "cognito.log")
}
