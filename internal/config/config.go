package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Socrata  SocrataConfig  `mapstructure:"socrata"`
	Report   ReportConfig   `mapstructure:"report"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SocrataConfig holds the open-data API configuration
type SocrataConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	PageSize  int           `mapstructure:"page_size"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ReportConfig holds aggregation and output configuration
type ReportConfig struct {
	AnimalType     string `mapstructure:"animal_type"`
	OutputFile     string `mapstructure:"output_file"`
	BaselineCutoff string `mapstructure:"baseline_cutoff"` // YYYY-MM-DD
}

// TelegramConfig holds the optional run-summary notification configuration
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	Enabled  bool   `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables. A missing
// config file is not an error: the defaults fully describe a working run
// against the Austin dataset, so the tool works with no config at all.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvPrefix("SHELTERPULSE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
// The defaults reproduce the report the tool has always generated.
func setDefaults(v *viper.Viper) {
	v.SetDefault("socrata.base_url", "https://data.austintexas.gov/resource/9t4d-g238.json")
	v.SetDefault("socrata.page_size", 50000)
	v.SetDefault("socrata.timeout", "60s")
	v.SetDefault("socrata.user_agent", "shelterpulse")

	v.SetDefault("report.animal_type", "dog")
	v.SetDefault("report.output_file", "dog_outcomes.xlsx")
	v.SetDefault("report.baseline_cutoff", "2020-03-01")

	v.SetDefault("telegram.enabled", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Socrata.BaseURL == "" {
		return fmt.Errorf("socrata.base_url is required")
	}
	if c.Socrata.PageSize < 1 {
		return fmt.Errorf("socrata.page_size must be at least 1")
	}
	if c.Socrata.Timeout < 1*time.Second {
		return fmt.Errorf("socrata.timeout must be at least 1 second")
	}

	if c.Report.AnimalType == "" {
		return fmt.Errorf("report.animal_type is required")
	}
	if c.Report.OutputFile == "" {
		return fmt.Errorf("report.output_file is required")
	}
	if _, err := time.Parse(time.DateOnly, c.Report.BaselineCutoff); err != nil {
		return fmt.Errorf("report.baseline_cutoff must be a YYYY-MM-DD date: %w", err)
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// BaselineCutoff returns the parsed cutoff date. Call Validate first; an
// unparseable value yields the zero time here.
func (c *Config) BaselineCutoff() time.Time {
	t, _ := time.Parse(time.DateOnly, c.Report.BaselineCutoff)
	return t
}
