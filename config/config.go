package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/s0up4200/tikhub/client"
	"github.com/spf13/viper"
)

// placeholderToken is the value shipped in config.example.yaml.
const placeholderToken = "your-token-here"

// ErrNoToken is returned by RequireToken when no usable token is configured.
var ErrNoToken = errors.New("tikhub.token is not set (config file or TIKHUB_TOKEN)")

// Load loads the configuration from file and environment. Without an explicit
// path a missing config file is not an error; defaults and TIKHUB_* variables
// still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// TIKHUB_TOKEN and TIKHUB_BASE_URL, then TIKHUB_<SECTION>_<KEY> for the rest
	v.SetEnvPrefix("TIKHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("tikhub.token", "TIKHUB_TOKEN")
	_ = v.BindEnv("tikhub.base_url", "TIKHUB_BASE_URL")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tikhub"))
		}

		// Check /etc
		v.AddConfigPath("/etc/tikhub/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && configPath == "":
			// defaults and environment only
		case errors.As(err, &notFound):
			return nil, fmt.Errorf("config file not found: %w", err)
		default:
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TikHub defaults
	v.SetDefault("tikhub.base_url", client.DefaultBaseURL)
	v.SetDefault("tikhub.token", "")

	// Client defaults
	v.SetDefault("client.timeout", client.DefaultTimeout)
	v.SetDefault("client.raise_on_unexpected_status", true)
	v.SetDefault("client.follow_redirects", false)
	v.SetDefault("client.rate_limit", 0.0)
	v.SetDefault("client.rate_burst", 1)
	v.SetDefault("client.user_agent", client.DefaultUserAgent)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	u, err := url.Parse(cfg.TikHub.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("tikhub.base_url must be an absolute http(s) URL: %q", cfg.TikHub.BaseURL)
	}

	if cfg.Client.Timeout < 0 {
		return fmt.Errorf("client.timeout must not be negative: %s", cfg.Client.Timeout)
	}
	if cfg.Client.RateLimit < 0 {
		return fmt.Errorf("client.rate_limit must not be negative: %v", cfg.Client.RateLimit)
	}
	if cfg.Client.RateBurst < 0 {
		return fmt.Errorf("client.rate_burst must not be negative: %d", cfg.Client.RateBurst)
	}

	for name, expression := range cfg.Queries {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("queries.%s is empty", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// RequireToken reports ErrNoToken unless a real token is configured.
func (c *Config) RequireToken() error {
	if c.TikHub.Token == "" || c.TikHub.Token == placeholderToken {
		return ErrNoToken
	}
	return nil
}

// ClientOptions converts the client section into client options.
func (c *Config) ClientOptions() []client.Option {
	opts := []client.Option{
		client.WithRaiseOnUnexpectedStatus(c.Client.RaiseOnUnexpectedStatus),
		client.WithFollowRedirects(c.Client.FollowRedirects),
	}
	if c.Client.Timeout > 0 {
		opts = append(opts, client.WithTimeout(c.Client.Timeout))
	}
	if c.Client.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(c.Client.UserAgent))
	}
	if c.Client.RateLimit > 0 {
		opts = append(opts, client.WithRateLimit(c.Client.RateLimit, c.Client.RateBurst))
	}
	for k, val := range c.Client.Headers {
		opts = append(opts, client.WithHeader(k, val))
	}
	return opts
}

// Timeout returns the configured client timeout, or the client default.
func (c *Config) Timeout() time.Duration {
	if c.Client.Timeout > 0 {
		return c.Client.Timeout
	}
	return client.DefaultTimeout
}
