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

package horizon

import (
	"context"
	goerrors "errors"
	"fmt"
	"net/http"
	"os"

	"github.com/dotandev/paysum/internal/errors"
	"github.com/dotandev/paysum/internal/logger"
	"github.com/dotandev/paysum/internal/telemetry"
	"github.com/stellar/go/clients/horizonclient"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/protocols/horizon/operations"
	"go.opentelemetry.io/otel/attribute"
)

// Network types for Stellar
type Network string

const (
	Testnet   Network = "testnet"
	Mainnet   Network = "mainnet"
	Futurenet Network = "futurenet"
)

// Horizon URLs for each network
const (
	TestnetHorizonURL   = "https://horizon-testnet.stellar.org/"
	MainnetHorizonURL   = "https://horizon.stellar.org/"
	FuturenetHorizonURL = "https://horizon-futurenet.stellar.org/"
)

// API is the slice of the Horizon client surface this tool depends on.
// *horizonclient.Client satisfies it; tests provide small fakes.
type API interface {
	TransactionDetail(txHash string) (hProtocol.Transaction, error)
	Operations(request horizonclient.OperationRequest) (operations.OperationsPage, error)
	AccountDetail(request horizonclient.AccountRequest) (hProtocol.Account, error)
}

// authTransport is a custom HTTP RoundTripper that adds authentication headers
type authTransport struct {
	token     string
	transport http.RoundTripper
}

// RoundTrip implements http.RoundTripper interface
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.transport.RoundTrip(req)
}

// Client handles interactions with the Stellar Horizon API
type Client struct {
	Horizon API
	Network Network
	token   string // stored for reference, not logged
}

// NewClient creates a new Horizon client for the specified network.
// If network is empty, defaults to Mainnet.
// Token can be provided via the token parameter or PAYSUM_HORIZON_TOKEN
// environment variable.
func NewClient(net Network, token string) *Client {
	if net == "" {
		net = Mainnet
	}

	if token == "" {
		token = os.Getenv("PAYSUM_HORIZON_TOKEN")
	}

	var url string
	switch net {
	case Testnet:
		url = TestnetHorizonURL
	case Futurenet:
		url = FuturenetHorizonURL
	case Mainnet:
		fallthrough
	default:
		url = MainnetHorizonURL
	}

	return newClient(url, net, token)
}

// NewClientWithURL creates a new Horizon client with a custom Horizon URL
func NewClientWithURL(url string, net Network, token string) *Client {
	if token == "" {
		token = os.Getenv("PAYSUM_HORIZON_TOKEN")
	}
	return newClient(url, net, token)
}

func newClient(url string, net Network, token string) *Client {
	horizonClient := &horizonclient.Client{
		HorizonURL: url,
		HTTP:       createHTTPClient(token),
	}

	if token != "" {
		logger.Logger.Debug("Horizon client initialized with authentication", "network", net)
	} else {
		logger.Logger.Debug("Horizon client initialized without authentication", "network", net)
	}

	return &Client{
		Horizon: horizonClient,
		Network: net,
		token:   token,
	}
}

// createHTTPClient creates an HTTP client with optional authentication
func createHTTPClient(token string) *http.Client {
	if token == "" {
		return http.DefaultClient
	}

	return &http.Client{
		Transport: &authTransport{
			token:     token,
			transport: http.DefaultTransport,
		},
	}
}

// GetTransaction fetches a transaction record by hash
func (c *Client) GetTransaction(ctx context.Context, hash string) (hProtocol.Transaction, error) {
	tracer := telemetry.GetTracer()
	_, span := tracer.Start(ctx, "horizon_get_transaction")
	span.SetAttributes(
		attribute.String("transaction.hash", hash),
		attribute.String("network", string(c.Network)),
	)
	defer span.End()

	logger.Logger.Debug("Fetching transaction details", "hash", hash)

	tx, err := c.Horizon.TransactionDetail(hash)
	if err != nil {
		span.RecordError(err)
		logger.Logger.Error("Failed to fetch transaction", "hash", hash, "error", err)
		if horizonStatus(err) == 404 {
			return hProtocol.Transaction{}, errors.WrapTransactionNotFound(hash)
		}
		return hProtocol.Transaction{}, errors.WrapTransactionFetch(c.normalizeError(err, fmt.Sprintf("transaction %s", hash)))
	}

	logger.Logger.Info("Transaction fetched successfully", "hash", hash, "operations", tx.OperationCount)

	return tx, nil
}

// GetTransactionOperations fetches every operation of a transaction,
// following pagination in operation order.
func (c *Client) GetTransactionOperations(ctx context.Context, hash string) ([]operations.Operation, error) {
	tracer := telemetry.GetTracer()
	_, span := tracer.Start(ctx, "horizon_get_operations")
	span.SetAttributes(
		attribute.String("transaction.hash", hash),
		attribute.String("network", string(c.Network)),
	)
	defer span.End()

	logger.Logger.Debug("Fetching transaction operations", "hash", hash)

	var records []operations.Operation
	cursor := ""

	for {
		req := horizonclient.OperationRequest{
			ForTransaction: hash,
			Cursor:         cursor,
			Limit:          200,
			Order:          horizonclient.OrderAsc,
		}

		page, err := c.Horizon.Operations(req)
		if err != nil {
			span.RecordError(err)
			logger.Logger.Error("Failed to fetch operations", "hash", hash, "error", err)
			if horizonStatus(err) == 404 {
				return nil, errors.WrapTransactionNotFound(hash)
			}
			return nil, errors.WrapOperationsFetch(c.normalizeError(err, fmt.Sprintf("operations for %s", hash)))
		}

		if len(page.Embedded.Records) == 0 {
			break
		}

		records = append(records, page.Embedded.Records...)
		if len(page.Embedded.Records) < 200 {
			break
		}
		cursor = page.Embedded.Records[len(page.Embedded.Records)-1].PagingToken()
	}

	span.SetAttributes(attribute.Int("operations.count", len(records)))
	logger.Logger.Info("Operations fetched successfully", "hash", hash, "count", len(records))

	return records, nil
}

// GetAccount fetches an account record, including its data entries
func (c *Client) GetAccount(ctx context.Context, accountID string) (hProtocol.Account, error) {
	tracer := telemetry.GetTracer()
	_, span := tracer.Start(ctx, "horizon_get_account")
	span.SetAttributes(
		attribute.String("account.id", accountID),
		attribute.String("network", string(c.Network)),
	)
	defer span.End()

	logger.Logger.Debug("Fetching account", "account", accountID)

	account, err := c.Horizon.AccountDetail(horizonclient.AccountRequest{AccountID: accountID})
	if err != nil {
		span.RecordError(err)
		return hProtocol.Account{}, errors.WrapAccountFetch(accountID, c.normalizeError(err, fmt.Sprintf("account %s", accountID)))
	}

	return account, nil
}

// horizonStatus extracts the HTTP status of a Horizon problem
// response, or 0 for transport-level failures.
func horizonStatus(err error) int {
	if hErr, ok := err.(*horizonclient.Error); ok {
		return hErr.Problem.Status
	}
	return 0
}

// normalizeError folds a Horizon problem response into the sentinel
// taxonomy: 429 maps to ErrRateLimited, other problem statuses keep
// their status and detail, transport errors pass through.
func (c *Client) normalizeError(err error, subject string) error {
	hErr, ok := err.(*horizonclient.Error)
	if !ok {
		return err
	}

	if hErr.Problem.Status == 429 {
		logger.Logger.Warn("Rate limit exceeded", "subject", subject, "status", 429)
		return errors.WrapRateLimited(subject)
	}

	logger.Logger.Error("Horizon error", "subject", subject, "status", hErr.Problem.Status, "detail", hErr.Problem.Detail)
	return fmt.Errorf("horizon error (status %d): %v", hErr.Problem.Status, hErr.Problem.Detail)
}

// IsNotFound checks if error is a "not found" error
func IsNotFound(err error) bool {
	return goerrors.Is(err, errors.ErrTransactionNotFound)
}

// IsRateLimitError checks if error is a rate limit error
func IsRateLimitError(err error) bool {
	return goerrors.Is(err, errors.ErrRateLimited)
}
