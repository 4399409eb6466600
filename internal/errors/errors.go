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
)

// Sentinel errors for comparison with errors.Is
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionFetch    = errors.New("failed to fetch transaction")
	ErrOperationsFetch     = errors.New("failed to fetch operations")
	ErrAccountFetch        = errors.New("failed to fetch account")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrInvalidNetwork      = errors.New("invalid network")
	ErrInvalidGrouping     = errors.New("invalid grouping strategy")
	ErrStoreFailure        = errors.New("name store failure")
	ErrConfigError         = errors.New("config error")
	ErrValidationError     = errors.New("validation error")
)

// Wrap functions for consistent error wrapping
func WrapTransactionNotFound(hash string) error {
	return fmt.Errorf("%w: %s", ErrTransactionNotFound, hash)
}

func WrapTransactionFetch(err error) error {
	return fmt.Errorf("%w: %w", ErrTransactionFetch, err)
}

func WrapOperationsFetch(err error) error {
	return fmt.Errorf("%w: %w", ErrOperationsFetch, err)
}

func WrapAccountFetch(account string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrAccountFetch, account, err)
}

func WrapInvalidNetwork(network string) error {
	return fmt.Errorf("%w: %s. Must be one of: testnet, mainnet, futurenet", ErrInvalidNetwork, network)
}

func WrapInvalidGrouping(strategy string) error {
	return fmt.Errorf("%w: %s. Must be one of: destination, adjacency", ErrInvalidGrouping, strategy)
}

func WrapRateLimited(subject string) error {
	return fmt.Errorf("%w: %s: please try again later", ErrRateLimited, subject)
}

func WrapStoreFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}

func WrapConfigError(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfigError, msg, err)
}

func WrapValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidationError, msg)
}
