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

// Package summary turns a transaction's operations into a grouped,
// name-resolved payment summary. The formatter emits typed render
// nodes; the render package turns them into markup, terminal, or
// plain-text output.
package summary

import (
	"context"

	"github.com/dotandev/paysum/internal/names"
)

// Strategy names the block-grouping behavior of the formatter.
type Strategy string

const (
	// GroupByDestination renders one block per destination account,
	// every block separated by a blank line. This is the default.
	GroupByDestination Strategy = "destination"

	// GroupByAdjacency additionally joins adjacent destination blocks
	// whose display names share a leading word, omitting the blank
	// line between them.
	GroupByAdjacency Strategy = "adjacency"
)

// NativeIssuer is the sentinel issuer for the ledger's base asset.
const NativeIssuer = "native"

// NativeAssetCode is the symbol of the ledger's base asset.
const NativeAssetCode = "XLM"

// EmptyMessage is the rendering of a transaction with no payment
// operations.
const EmptyMessage = "No payment operations found in this transaction"

// PaymentEntry is one payment under a destination. Issuer is either
// NativeIssuer or the issuing account's ID.
type PaymentEntry struct {
	Issuer    string
	Amount    string
	AssetCode string
}

// Name is an editable-title render node: a display name bound to the
// account it names. The presentation layer binds edit and delete
// gestures to the node, keyed by AccountID.
type Name struct {
	AccountID string
	Record    names.Record
}

// Line is one payment line under a destination block. Issuer is nil
// for native-asset payments.
type Line struct {
	Issuer    *Name
	Amount    string
	AssetCode string
}

// Block is the rendered unit for one destination: its editable title
// followed by its payment lines, in operation order. JoinPrevious
// marks a block that continues the previous one without a blank-line
// separator (adjacency strategy only).
type Block struct {
	Destination  Name
	Lines        []Line
	JoinPrevious bool
}

// Summary is the render-node tree for one transaction.
type Summary struct {
	Blocks []Block
}

// Empty reports whether the transaction had no payment operations.
func (s Summary) Empty() bool {
	return len(s.Blocks) == 0
}

// Resolver resolves account IDs to display names. *names.Resolver
// satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, accountID string) names.Record
}
