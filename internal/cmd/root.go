// Copyright 2026 Paysum Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotandev/paysum/internal/config"
	"github.com/dotandev/paysum/internal/logger"
	"github.com/dotandev/paysum/internal/updater"
)

// Global flag variables
var (
	NetworkFlag    string
	HorizonURLFlag string
	GroupingFlag   string
	LogLevelFlag   string
)

// cfg is the effective configuration for the current invocation,
// loaded in PersistentPreRunE with flag values layered on top.
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paysum",
	Short: "Stellar payment summary viewer",
	Long: `Paysum turns Stellar transactions into readable payment summaries.

It fetches a transaction from Horizon, filters its payment operations,
groups them by destination account, and resolves every account to a
display name: your own saved names first, then the account's on-chain
Name data entry, then a shortened account ID.

Examples:
  paysum format https://stellar.expert/explorer/public/tx/abc123...
  paysum format --network testnet abc123...def
  paysum names set GDUK...PBXC "Coffee Fund"
  paysum names list
  paysum serve --port 8642

Get started with 'paysum format --help'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Flags win over environment and config files
		if NetworkFlag != "" {
			loaded.Network = config.Network(NetworkFlag)
		}
		if HorizonURLFlag != "" {
			loaded.HorizonURL = HorizonURLFlag
		}
		if GroupingFlag != "" {
			loaded.Grouping = config.Grouping(GroupingFlag)
		}
		if LogLevelFlag != "" {
			loaded.LogLevel = LogLevelFlag
		}

		if err := loaded.Validate(); err != nil {
			return err
		}

		logger.SetLevel(logger.ParseLevel(loaded.LogLevel))
		if loaded.LogFormat == "json" {
			logger.SetOutput(os.Stderr, true)
		}
		cfg = loaded

		// Check for updates asynchronously (non-blocking)
		if !cfg.NoUpdateCheck {
			checkForUpdatesAsync()
		}

		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// checkForUpdatesAsync runs the update check in a goroutine to not block CLI startup
func checkForUpdatesAsync() {
	go func() {
		checker := updater.NewChecker(Version)
		checker.CheckForUpdates()
	}()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&NetworkFlag,
		"network",
		"n",
		"",
		"Stellar network to use (testnet, mainnet, futurenet)",
	)

	rootCmd.PersistentFlags().StringVar(
		&HorizonURLFlag,
		"horizon-url",
		"",
		"Custom Horizon URL to use",
	)

	rootCmd.PersistentFlags().StringVar(
		&GroupingFlag,
		"grouping",
		"",
		"Payment grouping strategy (destination, adjacency)",
	)

	rootCmd.PersistentFlags().StringVar(
		&LogLevelFlag,
		"log-level",
		"",
		"Log level (debug, info, warn, error)",
	)
}
