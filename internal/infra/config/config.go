package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables holding the upstream credentials.
const (
	EnvNewsAPIKey   = "NEWS_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	News NewsConfig `yaml:"news"`
	LLM  LLMConfig  `yaml:"llm"`
	UI   UIConfig   `yaml:"ui"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	CORSOrigins  []string      `yaml:"corsOrigins"`
}

// NewsConfig contains news provider settings.
type NewsConfig struct {
	APIKey       string        `yaml:"apiKey"`
	BaseURL      string        `yaml:"baseUrl"`
	Language     string        `yaml:"language"`
	SortBy       string        `yaml:"sortBy"`
	Timeout      time.Duration `yaml:"timeout"`
	DefaultLimit int           `yaml:"defaultLimit"`
	MaxLimit     int           `yaml:"maxLimit"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// UIConfig points at the static page served on /ui.
type UIConfig struct {
	AssetPath string `yaml:"assetPath"`
}

// Load reads configuration from a YAML file and environment variables.
// Missing credentials are not an error here; they are reported per request.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_READ_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ReadTimeout = parsed
		}
	}
	if v := os.Getenv("HTTP_WRITE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.WriteTimeout = parsed
		}
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv(EnvNewsAPIKey); v != "" {
		cfg.News.APIKey = v
	}
	if v := os.Getenv("NEWS_BASE_URL"); v != "" {
		cfg.News.BaseURL = v
	}
	if v := os.Getenv("NEWS_LANGUAGE"); v != "" {
		cfg.News.Language = v
	}
	if v := os.Getenv("NEWS_SORT_BY"); v != "" {
		cfg.News.SortBy = v
	}
	if v := os.Getenv("NEWS_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.News.Timeout = parsed
		}
	}
	if v := os.Getenv("NEWS_DEFAULT_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.News.DefaultLimit = parsed
		}
	}
	if v := os.Getenv("NEWS_MAX_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.News.MaxLimit = parsed
		}
	}
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("UI_ASSET_PATH"); v != "" {
		cfg.UI.AssetPath = v
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
		News: NewsConfig{
			BaseURL:      "https://newsapi.org/v2",
			Language:     "en",
			SortBy:       "relevancy",
			Timeout:      10 * time.Second,
			DefaultLimit: 5,
			MaxLimit:     100,
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
			Timeout:     60 * time.Second,
		},
		UI: UIConfig{
			AssetPath: "static/index.html",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		return errors.New("http timeouts must be positive")
	}
	if c.News.Timeout <= 0 {
		return errors.New("news.timeout must be positive")
	}
	if c.News.DefaultLimit < 1 {
		return errors.New("news.defaultLimit must be at least 1")
	}
	if c.News.MaxLimit < c.News.DefaultLimit {
		return errors.New("news.maxLimit cannot be lower than news.defaultLimit")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be within [0, 2]")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if strings.TrimSpace(c.UI.AssetPath) == "" {
		return errors.New("ui.assetPath cannot be empty")
	}
	return nil
}

// MissingCredential names the first upstream credential that is not set,
// news provider first. It returns "" when both are present.
func (c *Config) MissingCredential() string {
	if strings.TrimSpace(c.News.APIKey) == "" {
		return EnvNewsAPIKey
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return EnvOpenAIAPIKey
	}
	return ""
}
