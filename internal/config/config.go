// Package config handles configuration loading. It supports a YAML config
// file with PASTNEWS_-prefixed environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Guardian GuardianConfig `mapstructure:"guardian"`
	News     NewsConfig     `mapstructure:"news"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr               string `mapstructure:"addr"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec"`
}

// GuardianConfig holds the search API settings. The API key is a secret and
// is normally supplied via the GUARDIAN_API_KEY environment variable rather
// than the config file.
type GuardianConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	PageSize       int    `mapstructure:"page_size"`
	TimeoutSec     int    `mapstructure:"timeout_sec"`
	RequestsPerDay int    `mapstructure:"requests_per_day"`
}

// NewsConfig holds selection settings.
type NewsConfig struct {
	Keyword  string `mapstructure:"keyword"`
	Timezone string `mapstructure:"timezone"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the given file path. An empty path falls
// back to an optional ./config.yaml; built-in defaults apply either way.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PASTNEWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Guardian.APIKey == "" {
		cfg.Guardian.APIKey = strings.TrimSpace(os.Getenv("GUARDIAN_API_KEY"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout_sec", 10)
	v.SetDefault("guardian.base_url", "https://content.guardianapis.com/search")
	v.SetDefault("guardian.page_size", 50)
	v.SetDefault("guardian.timeout_sec", 10)
	v.SetDefault("guardian.requests_per_day", 300)
	v.SetDefault("news.keyword", "Trump")
	v.SetDefault("news.timezone", "UTC")
	v.SetDefault("logging.level", "info")
}

// Validate checks that required settings are present and sane.
func (c *Config) Validate() error {
	if c.Guardian.APIKey == "" {
		return errors.New("guardian api key is required (set GUARDIAN_API_KEY)")
	}
	if c.Guardian.PageSize <= 0 {
		return errors.New("guardian page_size must be positive")
	}
	if strings.TrimSpace(c.News.Keyword) == "" {
		return errors.New("news keyword must not be empty")
	}
	return nil
}
