// Copyright (c) 2026 dotandev
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package viewer ties URL extraction, ledger fetching, name resolution
// and summary rendering into the one operation the CLI and the daemon
// both expose: turn a transaction URL into displayable text.
package viewer

import (
	"context"
	"strings"

	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/protocols/horizon/operations"

	"github.com/dotandev/paysum/internal/logger"
	"github.com/dotandev/paysum/internal/render"
	"github.com/dotandev/paysum/internal/summary"
	"github.com/dotandev/paysum/internal/txurl"
)

// User-visible failure messages. Every failure resolves to one of
// these strings; nothing the viewer does is fatal to the process.
const (
	InvalidURLMessage = "Invalid transaction URL"
	LoadErrorMessage  = "Error loading transaction details"
)

// LedgerSource is the slice of the ledger client the viewer needs.
type LedgerSource interface {
	GetTransaction(ctx context.Context, hash string) (hProtocol.Transaction, error)
	GetTransactionOperations(ctx context.Context, hash string) ([]operations.Operation, error)
}

// Result is the outcome of formatting one transaction. Exactly one of
// OK or Message is meaningful: when OK is false, Message holds the
// user-displayable failure text and the rendered fields are empty.
type Result struct {
	OK      bool            `json:"ok"`
	Message string          `json:"message,omitempty"`
	Hash    string          `json:"hash,omitempty"`
	Summary summary.Summary `json:"-"`
	Markup  string          `json:"markup,omitempty"`
	Plain   string          `json:"plain,omitempty"`
}

// Viewer formats transactions for display.
type Viewer struct {
	ledger    LedgerSource
	formatter *summary.Formatter
}

// New creates a viewer over the given ledger source and formatter.
func New(ledger LedgerSource, formatter *summary.Formatter) *Viewer {
	return &Viewer{ledger: ledger, formatter: formatter}
}

// FormatURL formats the transaction referenced by raw, which may be an
// explorer URL or a bare transaction hash. Failures come back as a
// Result carrying a user-displayable message, never as an error.
func (v *Viewer) FormatURL(ctx context.Context, raw string) Result {
	hash, ok := extractHash(raw)
	if !ok {
		logger.Logger.Debug("could not extract transaction hash", "input", raw)
		return Result{Message: InvalidURLMessage}
	}

	return v.FormatHash(ctx, hash)
}

// FormatHash formats the transaction with the given hash.
func (v *Viewer) FormatHash(ctx context.Context, hash string) Result {
	tx, err := v.ledger.GetTransaction(ctx, hash)
	if err != nil {
		logger.Logger.Error("failed to fetch transaction", "hash", hash, "error", err)
		return Result{Hash: hash, Message: LoadErrorMessage}
	}

	ops, err := v.ledger.GetTransactionOperations(ctx, hash)
	if err != nil {
		logger.Logger.Error("failed to fetch operations", "hash", hash, "error", err)
		return Result{Hash: hash, Message: LoadErrorMessage}
	}

	s := v.formatter.Format(ctx, tx, ops)
	markup := render.Markup(s)

	return Result{
		OK:      true,
		Hash:    hash,
		Summary: s,
		Markup:  markup,
		Plain:   render.Plain(markup),
	}
}

// extractHash accepts either an explorer URL or a bare hash. Anything
// without a scheme separator is treated as a hash as-is.
func extractHash(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if !strings.Contains(raw, "://") {
		return raw, true
	}

	return txurl.Extract(raw)
}
