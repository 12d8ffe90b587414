package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override the config file
const (
	EnvConfigPath = "MAPPHONE_CONFIG"
	EnvBaseURL    = "MAPPHONE_BASE_URL"
	EnvProtocol   = "MAPPHONE_PROTOCOL"
	EnvDatabase   = "DATABASE_URL"
)

type Config struct {
	// Database (optional run history)
	Database struct {
		URL string `toml:"url"`
	} `toml:"database"`

	// API (development contract server)
	API struct {
		Port               int    `toml:"port"`
		Host               string `toml:"host"`
		FixturePath        string `toml:"fixture_path"`
		JobDurationSeconds int    `toml:"job_duration_seconds"` // how long poll-style jobs stay running
		BatchSize          int    `toml:"batch_size"`
	} `toml:"api"`

	// CLI
	CLI struct {
		BaseURL               string `toml:"base_url"`
		Protocol              string `toml:"protocol"` // batch or poll
		PollIntervalSeconds   int    `toml:"poll_interval_seconds"`
		PollTimeoutSeconds    int    `toml:"poll_timeout_seconds"`
		BatchSize             int    `toml:"batch_size"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"` // per status or batch request
		DownloadDir           string `toml:"download_dir"`
		LogDir                string `toml:"log_dir"`
	} `toml:"cli"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Database.URL = ""
	cfg.API.Port = 5000
	cfg.API.Host = "0.0.0.0"
	cfg.API.JobDurationSeconds = 9
	cfg.API.BatchSize = 30
	cfg.CLI.BaseURL = "http://localhost:5000"
	cfg.CLI.Protocol = "batch"
	cfg.CLI.PollIntervalSeconds = 3
	cfg.CLI.PollTimeoutSeconds = 600 // 10 minutes
	cfg.CLI.BatchSize = 30
	cfg.CLI.RequestTimeoutSeconds = 120
	cfg.CLI.DownloadDir = "."
	cfg.CLI.LogDir = "tmp"
	return cfg
}

// PollInterval is the delay between two status polls
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.CLI.PollIntervalSeconds) * time.Second
}

// PollTimeout is the ceiling on the total time spent polling one job
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.CLI.PollTimeoutSeconds) * time.Second
}

// RequestTimeout bounds a single status or batch round trip
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.CLI.RequestTimeoutSeconds) * time.Second
}

// JobDuration is how long a poll-style job reports running on the contract server
func (c *Config) JobDuration() time.Duration {
	return time.Duration(c.API.JobDurationSeconds) * time.Second
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".config", "mapphone")
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads configuration from ~/.config/mapphone/config.toml.
// Creates the file with defaults if it doesn't exist.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is the common case
	_ = godotenv.Load()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		applyEnv(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeDefaults(&cfg)
	applyEnv(&cfg)

	return &cfg, nil
}

// mergeDefaults fills zero values from DefaultConfig
func mergeDefaults(cfg *Config) {
	d := DefaultConfig()
	if cfg.API.Port == 0 {
		cfg.API.Port = d.API.Port
	}
	if cfg.API.Host == "" {
		cfg.API.Host = d.API.Host
	}
	if cfg.API.JobDurationSeconds == 0 {
		cfg.API.JobDurationSeconds = d.API.JobDurationSeconds
	}
	if cfg.API.BatchSize == 0 {
		cfg.API.BatchSize = d.API.BatchSize
	}
	if cfg.CLI.BaseURL == "" {
		cfg.CLI.BaseURL = d.CLI.BaseURL
	}
	if cfg.CLI.Protocol == "" {
		cfg.CLI.Protocol = d.CLI.Protocol
	}
	if cfg.CLI.PollIntervalSeconds == 0 {
		cfg.CLI.PollIntervalSeconds = d.CLI.PollIntervalSeconds
	}
	if cfg.CLI.PollTimeoutSeconds == 0 {
		cfg.CLI.PollTimeoutSeconds = d.CLI.PollTimeoutSeconds
	}
	if cfg.CLI.BatchSize == 0 {
		cfg.CLI.BatchSize = d.CLI.BatchSize
	}
	if cfg.CLI.RequestTimeoutSeconds == 0 {
		cfg.CLI.RequestTimeoutSeconds = d.CLI.RequestTimeoutSeconds
	}
	if cfg.CLI.DownloadDir == "" {
		cfg.CLI.DownloadDir = d.CLI.DownloadDir
	}
	if cfg.CLI.LogDir == "" {
		cfg.CLI.LogDir = d.CLI.LogDir
	}
}

// applyEnv overrides values with environment variables (useful for Docker)
func applyEnv(cfg *Config) {
	if dbURL := os.Getenv(EnvDatabase); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		cfg.CLI.BaseURL = baseURL
	}
	if protocol := os.Getenv(EnvProtocol); protocol != "" {
		cfg.CLI.Protocol = protocol
	}
}

// Save writes the configuration to the config file
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
