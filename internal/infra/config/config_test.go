package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutCredentials(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv(EnvNewsAPIKey, "")
	t.Setenv(EnvOpenAIAPIKey, "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 5, cfg.News.DefaultLimit)
	require.Equal(t, "en", cfg.News.Language)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-6)
	require.Equal(t, EnvNewsAPIKey, cfg.MissingCredential())
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := `
http:
  address: ":9090"
news:
  defaultLimit: 3
  timeout: 4s
llm:
  model: gpt-file
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_MODEL", "gpt-env")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv(EnvNewsAPIKey, "news-key")
	t.Setenv(EnvOpenAIAPIKey, "llm-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 3, cfg.News.DefaultLimit)
	require.Equal(t, 4*time.Second, cfg.News.Timeout)
	require.Equal(t, "gpt-env", cfg.LLM.Model)
	require.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	require.Empty(t, cfg.MissingCredential())
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unterminated"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults ok", mutate: func(*Config) {}},
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }, wantErr: "http.address cannot be empty"},
		{name: "zero default limit", mutate: func(c *Config) { c.News.DefaultLimit = 0 }, wantErr: "news.defaultLimit must be at least 1"},
		{name: "max below default", mutate: func(c *Config) { c.News.MaxLimit = 2 }, wantErr: "news.maxLimit cannot be lower than news.defaultLimit"},
		{name: "temperature too high", mutate: func(c *Config) { c.LLM.Temperature = 2.5 }, wantErr: "llm.temperature must be within [0, 2]"},
		{name: "no llm timeout", mutate: func(c *Config) { c.LLM.Timeout = 0 }, wantErr: "llm.timeout must be positive"},
		{name: "no ui asset", mutate: func(c *Config) { c.UI.AssetPath = " " }, wantErr: "ui.assetPath cannot be empty"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestMissingCredentialOrder(t *testing.T) {
	cfg := defaultConfig()
	require.Equal(t, EnvNewsAPIKey, cfg.MissingCredential())

	cfg.News.APIKey = "news"
	require.Equal(t, EnvOpenAIAPIKey, cfg.MissingCredential())

	cfg.LLM.APIKey = "llm"
	require.Equal(t, "", cfg.MissingCredential())
}
