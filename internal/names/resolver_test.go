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
	"errors"
	"testing"

	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stretchr/testify/assert"
)

const testAccount = "GCNVDZIHGX473FEI7IXCUAEXUJ4BGCKEMHF36VYP5EMS7PX2QBLAMTLA"

type fakeAccounts struct {
	accounts map[string]hProtocol.Account
	err      error
	calls    int
}

func (f *fakeAccounts) GetAccount(ctx context.Context, accountID string) (hProtocol.Account, error) {
	f.calls++
	if f.err != nil {
		return hProtocol.Account{}, f.err
	}
	if acc, ok := f.accounts[accountID]; ok {
		return acc, nil
	}
	return hProtocol.Account{}, errors.New("account not found")
}

func newTestResolver(t *testing.T, accounts *fakeAccounts) *Resolver {
	t.Helper()
	return NewResolver(newTestStore(t), accounts)
}

func TestResolveFromServiceName(t *testing.T) {
	accounts := &fakeAccounts{
		accounts: map[string]hProtocol.Account{
			testAccount: {
				AccountID: testAccount,
				Data:      map[string]string{"Name": EncodeName("Alice Treasury")},
			},
		},
	}
	resolver := newTestResolver(t, accounts)
	ctx := context.Background()

	rec := resolver.Resolve(ctx, testAccount)
	assert.Equal(t, Record{Name: "Alice Treasury", UserSet: false}, rec)
	assert.Equal(t, 1, accounts.calls)

	// Second resolution must come from the cache with no service call
	rec = resolver.Resolve(ctx, testAccount)
	assert.Equal(t, Record{Name: "Alice Treasury", UserSet: false}, rec)
	assert.Equal(t, 1, accounts.calls)
}

func TestResolveNoNameEntry(t *testing.T) {
	accounts := &fakeAccounts{
		accounts: map[string]hProtocol.Account{
			testAccount: {AccountID: testAccount, Data: map[string]string{}},
		},
	}
	resolver := newTestResolver(t, accounts)

	rec := resolver.Resolve(context.Background(), testAccount)
	assert.Equal(t, Record{Name: "GCNV...MTLA", UserSet: false}, rec)
}

func TestResolveServiceFailureFallsBack(t *testing.T) {
	accounts := &fakeAccounts{err: errors.New("connection refused")}
	resolver := newTestResolver(t, accounts)
	ctx := context.Background()

	rec := resolver.Resolve(ctx, testAccount)
	assert.Equal(t, Record{Name: "GCNV...MTLA", UserSet: false}, rec)
	assert.Equal(t, 1, accounts.calls)

	// The fallback is cached too, so the failing lookup is not repeated
	rec = resolver.Resolve(ctx, testAccount)
	assert.Equal(t, "GCNV...MTLA", rec.Name)
	assert.Equal(t, 1, accounts.calls)
}

func TestResolveMalformedNameEntryFallsBack(t *testing.T) {
	accounts := &fakeAccounts{
		accounts: map[string]hProtocol.Account{
			testAccount: {
				AccountID: testAccount,
				Data:      map[string]string{"Name": "not!!base64"},
			},
		},
	}
	resolver := newTestResolver(t, accounts)

	rec := resolver.Resolve(context.Background(), testAccount)
	assert.Equal(t, "GCNV...MTLA", rec.Name)
	assert.False(t, rec.UserSet)
}

func TestResolveLegacyStringFormat(t *testing.T) {
	store := newTestStore(t)
	accounts := &fakeAccounts{}
	resolver := NewResolver(store, accounts)
	ctx := context.Background()

	// A bare string written by an older version
	if err := store.Put(ctx, KeyPrefix+testAccount, "Old Alias"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	rec := resolver.Resolve(ctx, testAccount)
	assert.Equal(t, Record{Name: "Old Alias", UserSet: false}, rec)
	assert.Equal(t, 0, accounts.calls)

	// Reading a legacy value must not force a migration write
	raw, found, err := store.Get(ctx, KeyPrefix+testAccount)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Old Alias", raw)
}

func TestSetUserNameOverridesService(t *testing.T) {
	accounts := &fakeAccounts{
		accounts: map[string]hProtocol.Account{
			testAccount: {
				AccountID: testAccount,
				Data:      map[string]string{"Name": EncodeName("On-chain Name")},
			},
		},
	}
	resolver := newTestResolver(t, accounts)
	ctx := context.Background()

	assert.NoError(t, resolver.SetUserName(ctx, testAccount, "My Label"))

	rec := resolver.Resolve(ctx, testAccount)
	assert.Equal(t, Record{Name: "My Label", UserSet: true}, rec)
	assert.Equal(t, 0, accounts.calls)
}

func TestDeleteNameRerunsLookup(t *testing.T) {
	accounts := &fakeAccounts{
		accounts: map[string]hProtocol.Account{
			testAccount: {
				AccountID: testAccount,
				Data:      map[string]string{"Name": EncodeName("Fresh Name")},
			},
		},
	}
	resolver := newTestResolver(t, accounts)
	ctx := context.Background()

	assert.NoError(t, resolver.SetUserName(ctx, testAccount, "My Label"))
	assert.NoError(t, resolver.DeleteName(ctx, testAccount))

	rec := resolver.Resolve(ctx, testAccount)
	assert.Equal(t, Record{Name: "Fresh Name", UserSet: false}, rec)
	assert.Equal(t, 1, accounts.calls)
}

func TestClearAutoResolved(t *testing.T) {
	accounts := &fakeAccounts{err: errors.New("offline")}
	resolver := newTestResolver(t, accounts)
	ctx := context.Background()

	// Two auto-resolved entries and one user-set entry
	resolver.Resolve(ctx, "GAAAAAAAAAAA")
	resolver.Resolve(ctx, "GBBBBBBBBBBB")
	assert.NoError(t, resolver.SetUserName(ctx, "GCCCCCCCCCCC", "Kept"))

	removed, err := resolver.ClearAutoResolved(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := resolver.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "GCCCCCCCCCCC", entries[0].AccountID)
	assert.Equal(t, Record{Name: "Kept", UserSet: true}, entries[0].Record)
}

func TestDecodeNameRoundTrip(t *testing.T) {
	tests := []string{
		"Alice",
		"Trading Desk #2",
		"日本語の名前",
		"",
	}

	for _, name := range tests {
		decoded, err := DecodeName(EncodeName(name))
		assert.NoError(t, err)
		assert.Equal(t, name, decoded)
	}
}

func TestShortenID(t *testing.T) {
	assert.Equal(t, "GCNV...MTLA", ShortenID(testAccount))
	assert.Equal(t, "GABC...EF12", ShortenID("GABCDEF12"))
	assert.Equal(t, "SHORT", ShortenID("SHORT"))
	assert.Equal(t, "", ShortenID(""))
}
