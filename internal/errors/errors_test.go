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

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	// Test that sentinel errors are defined
	assert.NotNil(t, ErrTransactionNotFound)
	assert.NotNil(t, ErrTransactionFetch)
	assert.NotNil(t, ErrOperationsFetch)
	assert.NotNil(t, ErrAccountFetch)
	assert.NotNil(t, ErrRateLimited)
	assert.NotNil(t, ErrInvalidNetwork)
	assert.NotNil(t, ErrInvalidGrouping)
	assert.NotNil(t, ErrStoreFailure)
}

func TestErrorWrapping(t *testing.T) {
	baseErr := fmt.Errorf("base error")

	wrappedErr := WrapTransactionNotFound("abc123")
	assert.True(t, errors.Is(wrappedErr, ErrTransactionNotFound))
	assert.Contains(t, wrappedErr.Error(), "abc123")

	wrappedErr = WrapTransactionFetch(baseErr)
	assert.True(t, errors.Is(wrappedErr, ErrTransactionFetch))
	assert.True(t, errors.Is(wrappedErr, baseErr))

	wrappedErr = WrapOperationsFetch(baseErr)
	assert.True(t, errors.Is(wrappedErr, ErrOperationsFetch))
	assert.True(t, errors.Is(wrappedErr, baseErr))

	wrappedErr = WrapAccountFetch("GABC", baseErr)
	assert.True(t, errors.Is(wrappedErr, ErrAccountFetch))
	assert.True(t, errors.Is(wrappedErr, baseErr))
	assert.Contains(t, wrappedErr.Error(), "GABC")

	wrappedErr = WrapRateLimited("transaction abc")
	assert.True(t, errors.Is(wrappedErr, ErrRateLimited))
	assert.Contains(t, wrappedErr.Error(), "transaction abc")

	wrappedErr = WrapStoreFailure("write key name_GABC", baseErr)
	assert.True(t, errors.Is(wrappedErr, ErrStoreFailure))
	assert.True(t, errors.Is(wrappedErr, baseErr))
}

func TestWrapInvalidNetwork(t *testing.T) {
	err := WrapInvalidNetwork("devnet")
	assert.True(t, errors.Is(err, ErrInvalidNetwork))
	assert.Contains(t, err.Error(), "devnet")
	assert.Contains(t, err.Error(), "testnet, mainnet, futurenet")
}

func TestWrapInvalidGrouping(t *testing.T) {
	err := WrapInvalidGrouping("by-sender")
	assert.True(t, errors.Is(err, ErrInvalidGrouping))
	assert.Contains(t, err.Error(), "by-sender")
	assert.Contains(t, err.Error(), "destination, adjacency")
}
