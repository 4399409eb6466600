// Copyright 2026 Paysum Users
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotandev/paysum/internal/errors"
)

type Network string

const (
	NetworkMainnet   Network = "mainnet"
	NetworkTestnet   Network = "testnet"
	NetworkFuturenet Network = "futurenet"
)

var validNetworks = map[string]bool{
	string(NetworkMainnet):   true,
	string(NetworkTestnet):   true,
	string(NetworkFuturenet): true,
}

// Grouping names the formatter's block-grouping strategy.
type Grouping string

const (
	GroupingDestination Grouping = "destination"
	GroupingAdjacency   Grouping = "adjacency"
)

var validGroupings = map[string]bool{
	string(GroupingDestination): true,
	string(GroupingAdjacency):   true,
}

// Config represents the general configuration for paysum
type Config struct {
	HorizonURL string  `json:"horizon_url,omitempty"`
	Network    Network `json:"network,omitempty"`
	// Grouping selects how payment blocks are grouped in the rendered
	// summary: "destination" (one block per destination account) or
	// "adjacency" (adjacent blocks with similar names joined).
	Grouping Grouping `json:"grouping,omitempty"`
	DBPath   string   `json:"db_path,omitempty"`
	LogLevel string   `json:"log_level,omitempty"`
	// LogFormat selects the log handler: "text" (default) or "json".
	LogFormat    string `json:"log_format,omitempty"`
	HorizonToken string `json:"horizon_token,omitempty"`
	DaemonPort   string `json:"daemon_port,omitempty"`
	DaemonToken  string `json:"daemon_token,omitempty"`
	// Telemetry enables OTLP trace export when an endpoint is set.
	TelemetryEndpoint string `json:"telemetry_endpoint,omitempty"`
	NoUpdateCheck     bool   `json:"no_update_check,omitempty"`
}

var defaultConfig = &Config{
	HorizonURL: "",
	Network:    NetworkMainnet,
	Grouping:   GroupingDestination,
	DBPath:     filepath.Join(os.ExpandEnv("$HOME"), ".paysum", "names.db"),
	LogLevel:   "info",
	DaemonPort: "8642",
}

// GetConfigDir returns the paysum configuration directory.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapConfigError("failed to get home directory", err)
	}
	return filepath.Join(homeDir, ".paysum"), nil
}

// GetGeneralConfigPath returns the path to the general configuration file
func GetGeneralConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the general configuration from disk (JSON format)
func LoadConfig() (*Config, error) {
	configPath, err := GetGeneralConfigPath()
	if err != nil {
		return nil, err
	}

	// If file doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapConfigError("failed to read config file", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.WrapConfigError("failed to parse config file", err)
	}

	return config, nil
}

// Load loads the configuration: defaults, then the first TOML file
// found, then environment variables. Later sources win.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		return nil, err
	}

	cfg.HorizonURL = getEnv("PAYSUM_HORIZON_URL", cfg.HorizonURL)
	cfg.Network = Network(getEnv("PAYSUM_NETWORK", string(cfg.Network)))
	cfg.Grouping = Grouping(getEnv("PAYSUM_GROUPING", string(cfg.Grouping)))
	cfg.DBPath = getEnv("PAYSUM_DB_PATH", cfg.DBPath)
	cfg.LogLevel = getEnv("PAYSUM_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("PAYSUM_LOG_FORMAT", cfg.LogFormat)
	cfg.HorizonToken = getEnv("PAYSUM_HORIZON_TOKEN", cfg.HorizonToken)
	cfg.DaemonPort = getEnv("PAYSUM_DAEMON_PORT", cfg.DaemonPort)
	cfg.DaemonToken = getEnv("PAYSUM_DAEMON_TOKEN", cfg.DaemonToken)
	cfg.TelemetryEndpoint = getEnv("PAYSUM_OTLP_ENDPOINT", cfg.TelemetryEndpoint)

	switch strings.ToLower(os.Getenv("PAYSUM_NO_UPDATE_CHECK")) {
	case "1", "true", "yes":
		cfg.NoUpdateCheck = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	paths := []string{
		".paysum.toml",
		filepath.Join(os.ExpandEnv("$HOME"), ".paysum.toml"),
		"/etc/paysum/config.toml",
	}

	for _, path := range paths {
		if err := c.loadTOML(path); err == nil {
			return nil
		}
	}

	return nil
}

func (c *Config) loadTOML(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return c.parseTOML(string(data))
}

func (c *Config) parseTOML(content string) error {
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"'")

		switch key {
		case "horizon_url":
			c.HorizonURL = value
		case "network":
			c.Network = Network(value)
		case "grouping":
			c.Grouping = Grouping(value)
		case "db_path":
			c.DBPath = value
		case "log_level":
			c.LogLevel = value
		case "log_format":
			c.LogFormat = value
		case "horizon_token":
			c.HorizonToken = value
		case "daemon_port":
			c.DaemonPort = value
		case "daemon_token":
			c.DaemonToken = value
		case "telemetry_endpoint":
			c.TelemetryEndpoint = value
		case "no_update_check":
			c.NoUpdateCheck = value == "true" || value == "1" || value == "yes"
		}
	}

	return nil
}

// SaveConfig saves the configuration to disk (JSON format)
func SaveConfig(config *Config) error {
	configPath, err := GetGeneralConfigPath()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return errors.WrapConfigError("failed to create config directory", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return errors.WrapConfigError("failed to marshal config", err)
	}

	// Write with restricted permissions (owner only)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return errors.WrapConfigError("failed to write config file", err)
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Network != "" && !validNetworks[string(c.Network)] {
		return errors.WrapInvalidNetwork(string(c.Network))
	}

	if c.Grouping != "" && !validGroupings[string(c.Grouping)] {
		return errors.WrapInvalidGrouping(string(c.Grouping))
	}

	if c.DBPath == "" {
		return errors.WrapValidationError("db_path cannot be empty")
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.WrapValidationError(fmt.Sprintf("log_format must be \"text\" or \"json\", got %q", c.LogFormat))
	}

	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Network: %s, Grouping: %s, LogLevel: %s, DBPath: %s}",
		c.Network, c.Grouping, c.LogLevel, c.DBPath,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func DefaultConfig() *Config {
	return &Config{
		HorizonURL: defaultConfig.HorizonURL,
		Network:    defaultConfig.Network,
		Grouping:   defaultConfig.Grouping,
		DBPath:     defaultConfig.DBPath,
		LogLevel:   defaultConfig.LogLevel,
		DaemonPort: defaultConfig.DaemonPort,
	}
}
