package cli

import (
	"fmt"
	"strconv"
	"strings"

	"mapphone-go/pkg/config"
	"mapphone-go/pkg/models"
	"mapphone-go/pkg/utils"

	"github.com/pelletier/go-toml/v2"
)

// ShowConfig displays the current configuration
func (a *App) ShowConfig() {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		fmt.Fprintf(a.out, "Error marshaling config: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, string(data))
}

// SetConfig sets a configuration value
// Format: section.key=value (e.g., "cli.protocol=poll")
func (a *App) SetConfig(setStr string) error {
	parts := strings.SplitN(setStr, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid format: expected 'section.key=value'")
	}

	keyPath := strings.Split(parts[0], ".")
	value := strings.TrimSpace(parts[1])

	if len(keyPath) != 2 {
		return fmt.Errorf("invalid key format: expected 'section.key'")
	}

	section := keyPath[0]
	key := keyPath[1]

	switch section {
	case "database":
		switch key {
		case "url":
			a.cfg.Database.URL = value
		default:
			return fmt.Errorf("unknown database key: %s", key)
		}
	case "api":
		switch key {
		case "host":
			a.cfg.API.Host = value
		case "port":
			return setPositive(&a.cfg.API.Port, key, value, a.cfg)
		case "fixture_path":
			a.cfg.API.FixturePath = value
		case "job_duration_seconds":
			return setPositive(&a.cfg.API.JobDurationSeconds, key, value, a.cfg)
		case "batch_size":
			return setPositive(&a.cfg.API.BatchSize, key, value, a.cfg)
		default:
			return fmt.Errorf("unknown api key: %s", key)
		}
	case "cli":
		switch key {
		case "base_url":
			u, err := utils.ValidateBaseURL(value)
			if err != nil {
				return err
			}
			a.cfg.CLI.BaseURL = u
		case "protocol":
			p, ok := models.ParseProtocol(value)
			if !ok {
				return fmt.Errorf("invalid protocol value: %s (expected batch or poll)", value)
			}
			a.cfg.CLI.Protocol = string(p)
		case "poll_interval_seconds":
			return setPositive(&a.cfg.CLI.PollIntervalSeconds, key, value, a.cfg)
		case "poll_timeout_seconds":
			return setPositive(&a.cfg.CLI.PollTimeoutSeconds, key, value, a.cfg)
		case "batch_size":
			return setPositive(&a.cfg.CLI.BatchSize, key, value, a.cfg)
		case "request_timeout_seconds":
			return setPositive(&a.cfg.CLI.RequestTimeoutSeconds, key, value, a.cfg)
		case "download_dir":
			a.cfg.CLI.DownloadDir = value
		case "log_dir":
			a.cfg.CLI.LogDir = value
		default:
			return fmt.Errorf("unknown cli key: %s", key)
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	return config.Save(a.cfg)
}

// setPositive parses value into dst and saves the config
func setPositive(dst *int, key, value string, cfg *config.Config) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid %s value: %s", key, value)
	}
	*dst = n
	return config.Save(cfg)
}
