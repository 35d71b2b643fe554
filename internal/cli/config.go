package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/timekeep/timekeep/internal/storage"
)

// Config represents the timekeep.yaml configuration structure
type Config struct {
	Version string `yaml:"version"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Report struct {
		// DefaultPeriod is used when --period is not given.
		DefaultPeriod string `yaml:"default_period"`
	} `yaml:"report"`
}

// LoadConfig reads the configuration file at path, falling back to the
// conventional locations when path is empty. A missing file is not an
// error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		locations := []string{"timekeep.yaml", "timekeep.yml", ".timekeep.yaml", ".timekeep.yml"}
		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
		if path == "" {
			return defaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func defaultConfig() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

func applyDefaults(config *Config) {
	if config.Database.Path == "" {
		config.Database.Path = storage.DefaultDatabasePath()
	}
	if config.Report.DefaultPeriod == "" {
		config.Report.DefaultPeriod = "week"
	}
}
