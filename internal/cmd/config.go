// Copyright 2026 Paysum Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotandev/paysum/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the persisted configuration",
	Long: `Read and write the general configuration file
(~/.paysum/config.json). Values set here are defaults for every
invocation; environment variables and flags still win.

Example:
  paysum config show
  paysum config set network testnet
  paysum config set grouping adjacency`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		persisted, err := config.LoadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("network:            %s\n", persisted.Network)
		fmt.Printf("grouping:           %s\n", persisted.Grouping)
		fmt.Printf("horizon_url:        %s\n", persisted.HorizonURL)
		fmt.Printf("db_path:            %s\n", persisted.DBPath)
		fmt.Printf("log_level:          %s\n", persisted.LogLevel)
		fmt.Printf("log_format:         %s\n", persisted.LogFormat)
		fmt.Printf("daemon_port:        %s\n", persisted.DaemonPort)
		fmt.Printf("telemetry_endpoint: %s\n", persisted.TelemetryEndpoint)
		fmt.Printf("no_update_check:    %t\n", persisted.NoUpdateCheck)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value",
	Long: `Persist one configuration value to ~/.paysum/config.json.

Keys: network, grouping, horizon_url, db_path, log_level, log_format,
daemon_port, telemetry_endpoint, no_update_check.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		persisted, err := config.LoadConfig()
		if err != nil {
			return err
		}

		if err := applyConfigValue(persisted, key, value); err != nil {
			return err
		}

		if err := persisted.Validate(); err != nil {
			return err
		}

		if err := config.SaveConfig(persisted); err != nil {
			return err
		}

		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

func applyConfigValue(c *config.Config, key, value string) error {
	switch key {
	case "network":
		c.Network = config.Network(value)
	case "grouping":
		c.Grouping = config.Grouping(value)
	case "horizon_url":
		c.HorizonURL = value
	case "db_path":
		c.DBPath = value
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	case "daemon_port":
		c.DaemonPort = value
	case "telemetry_endpoint":
		c.TelemetryEndpoint = value
	case "no_update_check":
		c.NoUpdateCheck = value == "true" || value == "1" || value == "yes"
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
