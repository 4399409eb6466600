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

package summary

import (
	"context"
	"strings"

	"github.com/dotandev/paysum/internal/logger"
	"github.com/dotandev/paysum/internal/names"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/protocols/horizon/operations"
)

// Formatter groups a transaction's payment operations by destination
// and resolves display names for every participant.
type Formatter struct {
	Names    Resolver
	Strategy Strategy
}

// NewFormatter creates a formatter. An empty strategy means
// GroupByDestination.
func NewFormatter(resolver Resolver, strategy Strategy) *Formatter {
	if strategy == "" {
		strategy = GroupByDestination
	}
	return &Formatter{Names: resolver, Strategy: strategy}
}

// Format builds the payment summary for a fetched transaction.
// Non-payment operations are ignored entirely; destinations appear in
// first-seen operation order; every referenced account name is
// resolved exactly once per call.
func (f *Formatter) Format(ctx context.Context, tx hProtocol.Transaction, ops []operations.Operation) Summary {
	grouped, order := groupPayments(ops)

	logger.Logger.Debug("Formatted transaction operations",
		"hash", tx.Hash, "operations", len(ops), "destinations", len(order))

	if len(order) == 0 {
		return Summary{}
	}

	resolved := f.resolveAll(ctx, grouped, order)

	blocks := make([]Block, 0, len(order))
	for _, destination := range order {
		block := Block{
			Destination: Name{AccountID: destination, Record: resolved[destination]},
		}
		for _, entry := range grouped[destination] {
			line := Line{
				Amount:    FormatAmount(entry.Amount),
				AssetCode: entry.AssetCode,
			}
			if entry.Issuer != NativeIssuer {
				line.Issuer = &Name{AccountID: entry.Issuer, Record: resolved[entry.Issuer]}
			}
			block.Lines = append(block.Lines, line)
		}
		blocks = append(blocks, block)
	}

	if f.Strategy == GroupByAdjacency {
		markAdjacentRuns(blocks)
	}

	return Summary{Blocks: blocks}
}

// groupPayments filters payment-like operations and groups their
// entries by destination, preserving operation order both across
// destinations (first seen) and within each destination.
func groupPayments(ops []operations.Operation) (map[string][]PaymentEntry, []string) {
	grouped := make(map[string][]PaymentEntry)
	var order []string

	for _, op := range ops {
		destination, entry, ok := paymentFromOperation(op)
		if !ok {
			continue
		}
		if _, seen := grouped[destination]; !seen {
			order = append(order, destination)
		}
		grouped[destination] = append(grouped[destination], entry)
	}

	return grouped, order
}

// paymentFromOperation extracts a PaymentEntry from a payment variant.
// Every other operation kind reports ok=false.
func paymentFromOperation(op operations.Operation) (string, PaymentEntry, bool) {
	switch o := op.(type) {
	case operations.Payment:
		return o.To, entryFromPayment(o), true
	case operations.PathPayment:
		return o.To, entryFromPayment(o.Payment), true
	case operations.PathPaymentStrictSend:
		return o.To, entryFromPayment(o.Payment), true
	}
	return "", PaymentEntry{}, false
}

func entryFromPayment(p operations.Payment) PaymentEntry {
	entry := PaymentEntry{
		Issuer:    NativeIssuer,
		Amount:    p.Amount,
		AssetCode: p.Asset.Code,
	}
	if p.Asset.Type != "native" {
		entry.Issuer = p.Asset.Issuer
	}
	if entry.AssetCode == "" {
		entry.AssetCode = NativeAssetCode
	}
	return entry
}

// resolveAll resolves every distinct destination and every distinct
// non-native issuer once, before any rendering happens.
func (f *Formatter) resolveAll(ctx context.Context, grouped map[string][]PaymentEntry, order []string) map[string]names.Record {
	resolved := make(map[string]names.Record)

	resolve := func(accountID string) {
		if _, done := resolved[accountID]; done {
			return
		}
		resolved[accountID] = f.Names.Resolve(ctx, accountID)
	}

	for _, destination := range order {
		resolve(destination)
		for _, entry := range grouped[destination] {
			if entry.Issuer != NativeIssuer {
				resolve(entry.Issuer)
			}
		}
	}

	return resolved
}

// markAdjacentRuns sets JoinPrevious on blocks whose display name
// starts with the first word of the preceding block's display name,
// so runs of related destinations render without separators.
func markAdjacentRuns(blocks []Block) {
	for i := 1; i < len(blocks); i++ {
		prev := blocks[i-1].Destination.Record.Name
		curr := blocks[i].Destination.Record.Name

		prefix, _, _ := strings.Cut(prev, " ")
		if prefix != "" && strings.HasPrefix(curr, prefix) {
			blocks[i].JoinPrevious = true
		}
	}
}

// FormatAmount strips insignificant trailing zeros from a decimal
// amount without changing its numeric value. Inputs that are not in
// plain decimal form are returned verbatim.
func FormatAmount(amount string) string {
	if !isPlainDecimal(amount) {
		return amount
	}
	if !strings.Contains(amount, ".") {
		return amount
	}
	amount = strings.TrimRight(amount, "0")
	return strings.TrimSuffix(amount, ".")
}

func isPlainDecimal(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return s != "" && s != "."
}
