// Package config provides configuration management for minuted.
// It supports loading configuration from a YAML file with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultListenAddr      = ":8080"
	DefaultConfigDir       = ".minuted"
	DefaultConfigFile      = "config.yaml"
	DefaultTranscribeModel = "whisper-1"
	DefaultSummaryModel    = "gpt-4o-mini"
	DefaultExtractionModel = "gpt-4"
)

// OpenAIConfig holds provider settings.
//
// The API key is never read from the config file; it comes from the
// OPENAI_API_KEY environment variable or the system keyring.
type OpenAIConfig struct {
	APIKey          string `yaml:"-"`
	BaseURL         string `yaml:"base_url,omitempty"`
	TranscribeModel string `yaml:"transcribe_model,omitempty"`
	SummaryModel    string `yaml:"summary_model,omitempty"`
	ExtractionModel string `yaml:"extraction_model,omitempty"`
}

// CalendarConfig holds Google Calendar settings. Optional: when
// CredentialsFile is empty the calendar feature reports itself unavailable.
type CalendarConfig struct {
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	CalendarID      string `yaml:"calendar_id,omitempty"`
}

// Config is the full application configuration.
type Config struct {
	// ListenAddr is the HTTP listen address for serve mode.
	ListenAddr string `yaml:"listen_addr,omitempty"`

	// LogLevel sets the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`

	// LogJSON enables JSON log output.
	LogJSON bool `yaml:"log_json,omitempty"`

	OpenAI   OpenAIConfig   `yaml:"openai"`
	Calendar CalendarConfig `yaml:"calendar"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: DefaultListenAddr,
		LogLevel:   "info",
		OpenAI: OpenAIConfig{
			TranscribeModel: DefaultTranscribeModel,
			SummaryModel:    DefaultSummaryModel,
			ExtractionModel: DefaultExtractionModel,
		},
	}
}

// ConfigDir returns the configuration directory (~/.minuted).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// Load reads configuration from the default config file (if it exists) and
// applies environment variable overrides.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err == nil {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFrom reads configuration from an explicit file path plus environment
// overrides. The file must exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Environment variables recognized by applyEnv.
const (
	EnvAPIKey              = "OPENAI_API_KEY"
	EnvBaseURL             = "OPENAI_BASE_URL"
	EnvListenAddr          = "MINUTED_ADDR"
	EnvLogLevel            = "MINUTED_LOG_LEVEL"
	EnvLogJSON             = "MINUTED_LOG_JSON"
	EnvCalendarCredentials = "GOOGLE_CALENDAR_CREDENTIALS"
	EnvCalendarID          = "GOOGLE_CALENDAR_ID"
)

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.OpenAI.BaseURL = v
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogJSON); v != "" {
		c.LogJSON = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv(EnvCalendarCredentials); v != "" {
		c.Calendar.CredentialsFile = v
	}
	if v := os.Getenv(EnvCalendarID); v != "" {
		c.Calendar.CalendarID = v
	}
}

// ValidateProviders checks that the credentials required for provider calls
// are present. Commands that transcribe or summarize call this at startup and
// treat a failure as fatal.
func (c *Config) ValidateProviders() error {
	if strings.TrimSpace(c.OpenAI.APIKey) == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set; export it or run 'minuted auth set-key'")
	}
	return nil
}

// CalendarConfigured reports whether calendar credentials are present.
func (c *Config) CalendarConfigured() bool {
	return c.Calendar.CredentialsFile != ""
}
