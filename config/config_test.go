package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL: "https://api.themoviedb.org/3",
			APIKey:  "valid-api-key",
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantKey string
		wantMsg string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:    "missing api key",
			modify:  func(c *Config) { c.TMDB.APIKey = "" },
			wantKey: "tmdb.api_key",
			wantMsg: "is required",
		},
		{
			name:    "placeholder api key",
			modify:  func(c *Config) { c.TMDB.APIKey = "your-api-key-here" },
			wantKey: "tmdb.api_key",
			wantMsg: "must be set to a valid value",
		},
		{
			name:    "base url is not a url",
			modify:  func(c *Config) { c.TMDB.BaseURL = "themoviedb" },
			wantKey: "tmdb.base_url",
		},
		{
			name:    "invalid logging level",
			modify:  func(c *Config) { c.Logging.Level = "trace" },
			wantKey: "logging.level",
			wantMsg: "must be one of: debug, info, warn, error",
		},
		{
			name:    "invalid logging format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantKey: "logging.format",
		},
		{
			name:    "negative rate limit",
			modify:  func(c *Config) { c.TMDB.RateLimit.RPS = -1 },
			wantKey: "tmdb.rate_limit.rps",
		},
		{
			name:    "empty preset",
			modify:  func(c *Config) { c.Filter.Presets = map[string]string{"classics": ""} },
			wantKey: "filter.presets[classics]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validateConfig(cfg)
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}

			var fields FieldErrors
			require.ErrorAs(t, err, &fields)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.wantKey, fields[0].Key)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, fields[0].Err)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("file with defaults", func(t *testing.T) {
		path := writeConfig(t, `
tmdb:
  api_key: abc123
filter:
  presets:
    classics: "Year < 1970 and Rating >= 8"
display:
  show_details: true
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "abc123", cfg.TMDB.APIKey)
		assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.TMDB.Timeout)
		assert.Equal(t, "marquee", cfg.TMDB.UserAgent)
		assert.Equal(t, 20.0, cfg.TMDB.RateLimit.RPS)
		assert.Equal(t, 10, cfg.TMDB.RateLimit.Burst)
		assert.True(t, cfg.Display.ShowDetails)
		assert.Equal(t, 80, cfg.Display.OverviewWidth)
		assert.Equal(t, "info", cfg.Logging.Level)

		expression, ok := cfg.Filter.Preset("classics")
		assert.True(t, ok)
		assert.Equal(t, "Year < 1970 and Rating >= 8", expression)
		_, ok = cfg.Filter.Preset("missing")
		assert.False(t, ok)
	})

	t.Run("durations and environment override", func(t *testing.T) {
		path := writeConfig(t, `
tmdb:
  api_key: from-file
  timeout: 5s
logging:
  level: debug
`)
		t.Setenv("MARQUEE_TMDB_API_KEY", "from-env")
		t.Setenv("MARQUEE_LOGGING_FORMAT", "json")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.TMDB.APIKey)
		assert.Equal(t, 5*time.Second, cfg.TMDB.Timeout)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("invalid file contents", func(t *testing.T) {
		path := writeConfig(t, `
tmdb:
  api_key: abc123
logging:
  level: loud
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logging.level")
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})
}
