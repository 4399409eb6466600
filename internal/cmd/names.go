// Copyright 2026 Paysum Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotandev/paysum/internal/names"
	"github.com/dotandev/paysum/internal/render"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Manage saved account display names",
	Long: `Inspect and edit the local name store.

Names you set yourself always win over names resolved from the
network and are marked with a pencil in listings and summaries.

Example:
  paysum names list
  paysum names set GDUK...PBXC "Coffee Fund"
  paysum names delete GDUK...PBXC
  paysum names clear`,
}

var namesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved names",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, resolver, err := openResolver(nil)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := resolver.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list names: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No saved names.")
			return nil
		}

		for _, entry := range entries {
			marker := "  "
			if entry.Record.UserSet {
				marker = render.UserSetMarker
			}
			fmt.Printf("%s%s  %s\n", marker, entry.AccountID, entry.Record.Name)
		}

		return nil
	},
}

var namesSetCmd = &cobra.Command{
	Use:   "set <account-id> <name>",
	Short: "Save a display name for an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, name := args[0], args[1]
		if name == "" {
			return fmt.Errorf("name must not be empty")
		}

		store, resolver, err := openResolver(nil)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := resolver.SetUserName(cmd.Context(), accountID, name); err != nil {
			return fmt.Errorf("failed to save name: %w", err)
		}

		fmt.Printf("Saved %q for %s\n", name, names.ShortenID(accountID))
		return nil
	},
}

var namesDeleteCmd = &cobra.Command{
	Use:   "delete <account-id>",
	Short: "Remove a saved name",
	Long: `Remove an account's saved name. The next summary that shows the
account resolves it again from the network.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, resolver, err := openResolver(nil)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := resolver.DeleteName(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete name: %w", err)
		}

		fmt.Printf("Deleted name for %s\n", names.ShortenID(args[0]))
		return nil
	},
}

var namesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear auto-resolved names, keeping the ones you set",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, resolver, err := openResolver(nil)
		if err != nil {
			return err
		}
		defer store.Close()

		cleared, err := resolver.ClearAutoResolved(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to clear names: %w", err)
		}

		fmt.Printf("Cleared %d auto-resolved name(s)\n", cleared)
		return nil
	},
}

func init() {
	namesCmd.AddCommand(namesListCmd)
	namesCmd.AddCommand(namesSetCmd)
	namesCmd.AddCommand(namesDeleteCmd)
	namesCmd.AddCommand(namesClearCmd)
	rootCmd.AddCommand(namesCmd)
}
