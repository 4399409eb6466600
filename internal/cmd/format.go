// Copyright 2026 Paysum Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotandev/paysum/internal/render"
)

var (
	formatPlain  bool
	formatMarkup bool
)

var formatCmd = &cobra.Command{
	Use:   "format <url-or-hash>",
	Short: "Format a transaction's payments as a readable summary",
	Long: `Fetch a transaction and print its payment operations grouped by
destination account, with every account resolved to a display name.

The argument may be a stellar.expert transaction URL or a bare
transaction hash.

Example:
  paysum format https://stellar.expert/explorer/public/tx/5c0a12...90ab
  paysum format --network testnet 5c0a12...90ab
  paysum format --plain 5c0a12...90ab`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, store, _, err := newViewer()
		if err != nil {
			return err
		}
		defer store.Close()

		result := v.FormatURL(cmd.Context(), args[0])
		if !result.OK {
			// Lookup failures are shown, not fatal; re-running the
			// command is the retry mechanism.
			fmt.Println(result.Message)
			return nil
		}

		switch {
		case formatMarkup:
			fmt.Println(result.Markup)
		case formatPlain:
			fmt.Println(result.Plain)
		default:
			render.Terminal(result.Summary, os.Stdout)
		}

		return nil
	},
}

func init() {
	formatCmd.Flags().BoolVar(&formatPlain, "plain", false, "Print clipboard-ready plain text")
	formatCmd.Flags().BoolVar(&formatMarkup, "markup", false, "Print the raw markup rendering")
	formatCmd.MarkFlagsMutuallyExclusive("plain", "markup")

	rootCmd.AddCommand(formatCmd)
}
