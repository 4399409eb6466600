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

package names

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/dotandev/paysum/internal/logger"
	hProtocol "github.com/stellar/go/protocols/horizon"
)

const (
	// KeyPrefix namespaces name entries in the key-value store.
	KeyPrefix = "name_"

	// NameDataEntry is the account data entry holding an on-chain
	// display name, base64 encoded as all Horizon data entries are.
	NameDataEntry = "Name"
)

// Record is a resolved display name for an account.
// UserSet records are never overwritten by automatic resolution;
// only SetUserName or DeleteName change them.
type Record struct {
	Name    string `json:"name"`
	UserSet bool   `json:"isUserSet"`
}

// Entry pairs a record with the account it names, for listings.
type Entry struct {
	AccountID string
	Record    Record
}

// AccountSource fetches account records from the ledger service.
// *horizon.Client satisfies it.
type AccountSource interface {
	GetAccount(ctx context.Context, accountID string) (hProtocol.Account, error)
}

// Resolver resolves account IDs to display names, caching every result.
type Resolver struct {
	store    *Store
	accounts AccountSource
}

// NewResolver creates a Resolver over a store and an account source.
func NewResolver(store *Store, accounts AccountSource) *Resolver {
	return &Resolver{
		store:    store,
		accounts: accounts,
	}
}

// Resolve returns the display name for an account. The cache is
// consulted first; on a miss the account's on-chain Name entry is
// fetched and decoded; when that fails for any reason the shortened
// account ID is used. Every freshly resolved name is written through
// to the store. Resolution never fails: service errors degrade to the
// shortened fallback and are logged only.
func (r *Resolver) Resolve(ctx context.Context, accountID string) Record {
	if rec, ok := r.cached(ctx, accountID); ok {
		return rec
	}

	rec := r.lookup(ctx, accountID)
	r.persist(ctx, accountID, rec)
	return rec
}

// cached reads the store, accepting both the structured JSON format and
// the legacy bare-string format. Legacy values are wrapped on read; no
// migration write happens until the entry is next saved.
func (r *Resolver) cached(ctx context.Context, accountID string) (Record, bool) {
	raw, found, err := r.store.Get(ctx, KeyPrefix+accountID)
	if err != nil {
		logger.Logger.Warn("Name cache read failed", "account", accountID, "error", err)
		return Record{}, false
	}
	if !found {
		return Record{}, false
	}
	return DecodeRecord(raw), true
}

func (r *Resolver) lookup(ctx context.Context, accountID string) Record {
	account, err := r.accounts.GetAccount(ctx, accountID)
	if err != nil {
		logger.Logger.Warn("Account fetch failed, using shortened ID",
			"account", accountID, "error", err)
		return Record{Name: ShortenID(accountID)}
	}

	encoded, ok := account.Data[NameDataEntry]
	if !ok || encoded == "" {
		return Record{Name: ShortenID(accountID)}
	}

	name, err := DecodeName(encoded)
	if err != nil {
		logger.Logger.Warn("Malformed Name data entry, using shortened ID",
			"account", accountID, "error", err)
		return Record{Name: ShortenID(accountID)}
	}

	return Record{Name: name}
}

func (r *Resolver) persist(ctx context.Context, accountID string, rec Record) {
	raw, err := json.Marshal(rec)
	if err != nil {
		logger.Logger.Warn("Failed to encode name record", "account", accountID, "error", err)
		return
	}
	if err := r.store.Put(ctx, KeyPrefix+accountID, string(raw)); err != nil {
		logger.Logger.Warn("Name cache write failed", "account", accountID, "error", err)
	}
}

// SetUserName persists a user-entered name, unconditionally replacing
// any prior record for the account.
func (r *Resolver) SetUserName(ctx context.Context, accountID, name string) error {
	raw, err := json.Marshal(Record{Name: name, UserSet: true})
	if err != nil {
		return fmt.Errorf("failed to encode name record: %w", err)
	}
	return r.store.Put(ctx, KeyPrefix+accountID, string(raw))
}

// DeleteName removes the cache entry for an account entirely. The next
// resolution re-runs the full lookup sequence.
func (r *Resolver) DeleteName(ctx context.Context, accountID string) error {
	return r.store.Delete(ctx, KeyPrefix+accountID)
}

// ClearAutoResolved removes every entry that was not set by the user,
// returning how many were removed. User-set entries are untouched.
func (r *Resolver) ClearAutoResolved(ctx context.Context) (int, error) {
	keys, err := r.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, key := range keys {
		raw, found, err := r.store.Get(ctx, key)
		if err != nil {
			return removed, err
		}
		if !found {
			continue
		}
		if DecodeRecord(raw).UserSet {
			continue
		}
		if err := r.store.Delete(ctx, key); err != nil {
			return removed, err
		}
		removed++
	}

	logger.Logger.Info("Cleared auto-resolved names", "removed", removed)
	return removed, nil
}

// List returns every cached entry, in key order.
func (r *Resolver) List(ctx context.Context) ([]Entry, error) {
	keys, err := r.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		raw, found, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		entries = append(entries, Entry{
			AccountID: key[len(KeyPrefix):],
			Record:    DecodeRecord(raw),
		})
	}

	return entries, nil
}

// DecodeRecord parses a stored value. Values that are not structured
// records are treated as legacy bare-string names.
func DecodeRecord(raw string) Record {
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err == nil {
		return rec
	}
	// Handle old format
	return Record{Name: raw}
}

// DecodeName decodes an on-chain Name data entry (base64 over UTF-8).
func DecodeName(encoded string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode name: %w", err)
	}
	return string(decoded), nil
}

// EncodeName is the inverse of DecodeName.
func EncodeName(name string) string {
	return base64.StdEncoding.EncodeToString([]byte(name))
}

// ShortenID abbreviates an account ID to its first and last four
// characters. IDs too short to abbreviate are returned whole.
func ShortenID(accountID string) string {
	if len(accountID) <= 8 {
		return accountID
	}
	return accountID[:4] + "..." + accountID[len(accountID)-4:]
}
