// Copyright 2026 Paysum Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/paysum/internal/horizon"
	"github.com/dotandev/paysum/internal/names"
	"github.com/dotandev/paysum/internal/summary"
	"github.com/dotandev/paysum/internal/viewer"
)

// newLedgerClient builds the Horizon client for the effective config.
func newLedgerClient() *horizon.Client {
	if cfg.HorizonURL != "" {
		return horizon.NewClientWithURL(cfg.HorizonURL, horizon.Network(cfg.Network), cfg.HorizonToken)
	}
	return horizon.NewClient(horizon.Network(cfg.Network), cfg.HorizonToken)
}

// openResolver opens the name store and wires a resolver over it. The
// caller owns the returned store and must close it.
func openResolver(accounts names.AccountSource) (*names.Store, *names.Resolver, error) {
	store, err := names.OpenStore(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open name store: %w", err)
	}
	return store, names.NewResolver(store, accounts), nil
}

// newViewer builds the full formatting pipeline. The returned store
// must be closed by the caller.
func newViewer() (*viewer.Viewer, *names.Store, *names.Resolver, error) {
	client := newLedgerClient()

	store, resolver, err := openResolver(client)
	if err != nil {
		return nil, nil, nil, err
	}

	formatter := summary.NewFormatter(resolver, summary.Strategy(cfg.Grouping))
	return viewer.New(client, formatter), store, resolver, nil
}
