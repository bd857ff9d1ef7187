package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/rosterpool/go/internal/jersey"
)

// Config holds the optional YAML overrides for jersey ranges and the
// notification dispatcher. Connection settings come from the environment.
type Config struct {
	Jersey struct {
		Ranges map[string]jersey.Range `yaml:"ranges"`
	} `yaml:"jersey"`
	Dispatcher struct {
		PollInterval     time.Duration `yaml:"poll_interval"`
		BatchSize        int32         `yaml:"batch_size"`
		MaxAttempts      int           `yaml:"max_attempts"`
		RecipientTimeout time.Duration `yaml:"recipient_timeout"`
	} `yaml:"dispatcher"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}
