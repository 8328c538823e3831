package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TikHub  TikHubConfig  `mapstructure:"tikhub"`
	Client  ClientConfig  `mapstructure:"client"`
	Logging LoggingConfig `mapstructure:"logging"`
	Queries QueryConfig   `mapstructure:"queries"`
}

// TikHubConfig holds TikHub API connection details
type TikHubConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

// ClientConfig tunes the HTTP client
type ClientConfig struct {
	Timeout                 time.Duration     `mapstructure:"timeout"`
	RaiseOnUnexpectedStatus bool              `mapstructure:"raise_on_unexpected_status"`
	FollowRedirects         bool              `mapstructure:"follow_redirects"`
	RateLimit               float64           `mapstructure:"rate_limit"`
	RateBurst               int               `mapstructure:"rate_burst"`
	UserAgent               string            `mapstructure:"user_agent"`
	Headers                 map[string]string `mapstructure:"headers"`
}

// QueryConfig maps names to saved expressions for `call --query`. Names are
// lowercased on load.
type QueryConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
