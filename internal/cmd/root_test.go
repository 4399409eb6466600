// Copyright 2026 Paysum Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotandev/paysum/internal/config"
	"github.com/dotandev/paysum/internal/logger"
)

func TestPersistentPreRunAppliesFlags(t *testing.T) {
	t.Setenv("PAYSUM_NO_UPDATE_CHECK", "1")
	t.Setenv("HOME", t.TempDir())

	NetworkFlag = "testnet"
	GroupingFlag = "adjacency"
	t.Cleanup(func() {
		NetworkFlag = ""
		GroupingFlag = ""
	})

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.NoError(t, err)

	assert.Equal(t, config.NetworkTestnet, cfg.Network)
	assert.Equal(t, config.GroupingAdjacency, cfg.Grouping)
}

func TestPersistentPreRunRejectsBadNetwork(t *testing.T) {
	t.Setenv("PAYSUM_NO_UPDATE_CHECK", "1")
	t.Setenv("HOME", t.TempDir())

	NetworkFlag = "devnet"
	t.Cleanup(func() { NetworkFlag = "" })

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	assert.Error(t, err)
}

func TestPersistentPreRunSwitchesToJSONLogs(t *testing.T) {
	t.Setenv("PAYSUM_NO_UPDATE_CHECK", "1")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PAYSUM_LOG_FORMAT", "json")
	t.Cleanup(func() { logger.SetOutput(os.Stderr, false) })

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.NoError(t, err)
	require.Equal(t, "json", cfg.LogFormat)

	var buf bytes.Buffer
	logger.SetOutput(&buf, cfg.LogFormat == "json")
	logger.Logger.Info("daemon started", "port", "8642")
	assert.True(t, json.Valid(buf.Bytes()), "expected JSON log output: %s", buf.String())
}

func TestRootHasExpectedSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"format", "names", "serve", "version", "completion", "config"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}
