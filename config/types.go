package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Display DisplayConfig `mapstructure:"display"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	BaseURL   string          `mapstructure:"base_url" validate:"required,url"`
	APIKey    string          `mapstructure:"api_key" validate:"required,ne=your-api-key-here"`
	Timeout   time.Duration   `mapstructure:"timeout" validate:"gte=0"`
	UserAgent string          `mapstructure:"user_agent"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig throttles outgoing requests; an RPS of 0 disables throttling
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" validate:"gte=0"`
	Burst int     `mapstructure:"burst" validate:"gte=0"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets" validate:"dive,keys,required,endkeys,required"`
}

// Preset returns the expression stored under name
func (f FilterConfig) Preset(name string) (string, bool) {
	expression, ok := f.Presets[name]
	return expression, ok
}

// DisplayConfig contains output settings
type DisplayConfig struct {
	ShowDetails   bool `mapstructure:"show_details"`
	OverviewWidth int  `mapstructure:"overview_width" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	Color  bool   `mapstructure:"color"`
}
