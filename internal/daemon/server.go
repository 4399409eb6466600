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

package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dotandev/paysum/internal/config"
	"github.com/dotandev/paysum/internal/horizon"
	"github.com/dotandev/paysum/internal/logger"
	"github.com/dotandev/paysum/internal/names"
	"github.com/dotandev/paysum/internal/summary"
	"github.com/dotandev/paysum/internal/telemetry"
	"github.com/dotandev/paysum/internal/viewer"
)

// Server represents the JSON-RPC daemon server
type Server struct {
	viewer    *viewer.Viewer
	resolver  *names.Resolver
	store     *names.Store
	network   horizon.Network
	authToken string
}

// FormatRequest represents the ViewerService.Format RPC request
type FormatRequest struct {
	URL string `json:"url"`
}

// FormatResponse represents the ViewerService.Format RPC response
type FormatResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Hash    string `json:"hash,omitempty"`
	Markup  string `json:"markup,omitempty"`
	Plain   string `json:"plain,omitempty"`
}

// SetNameRequest represents the ViewerService.SetName RPC request
type SetNameRequest struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

// DeleteNameRequest represents the ViewerService.DeleteName RPC request
type DeleteNameRequest struct {
	AccountID string `json:"account_id"`
}

// NameResponse acknowledges a name mutation
type NameResponse struct {
	OK bool `json:"ok"`
}

// ClearAutoResolvedResponse reports how many cached names were removed
type ClearAutoResolvedResponse struct {
	Cleared int `json:"cleared"`
}

// EmptyRequest is the request body for parameterless calls
type EmptyRequest struct{}

// HealthResponse represents the ViewerService.Health RPC response
type HealthResponse struct {
	Status  string `json:"status"`
	Network string `json:"network"`
}

// NewServer wires a viewer service from configuration: a ledger
// client, the name store and resolver, and the summary formatter.
func NewServer(cfg *config.Config) (*Server, error) {
	var client *horizon.Client
	if cfg.HorizonURL != "" {
		client = horizon.NewClientWithURL(cfg.HorizonURL, horizon.Network(cfg.Network), cfg.HorizonToken)
	} else {
		client = horizon.NewClient(horizon.Network(cfg.Network), cfg.HorizonToken)
	}

	store, err := names.OpenStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open name store: %w", err)
	}

	resolver := names.NewResolver(store, client)
	formatter := summary.NewFormatter(resolver, summary.Strategy(cfg.Grouping))

	return &Server{
		viewer:    viewer.New(client, formatter),
		resolver:  resolver,
		store:     store,
		network:   horizon.Network(cfg.Network),
		authToken: cfg.DaemonToken,
	}, nil
}

// Close releases the server's name store.
func (s *Server) Close() error {
	return s.store.Close()
}

// authenticate validates the authorization token
func (s *Server) authenticate(r *http.Request) bool {
	if s.authToken == "" {
		return true // No auth required
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return false
	}

	// Support "Bearer <token>" format
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ") == s.authToken
	}

	return auth == s.authToken
}

// Format handles ViewerService.Format RPC calls. Formatting failures
// are not RPC errors: they come back as a reply with OK false and a
// user-displayable message, mirroring what the CLI prints.
func (s *Server) Format(r *http.Request, req *FormatRequest, resp *FormatResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	ctx := r.Context()
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "rpc_format")
	span.SetAttributes(attribute.String("request.url", req.URL))
	defer span.End()

	logger.Logger.Info("Processing format RPC", "url", req.URL)

	result := s.viewer.FormatURL(ctx, req.URL)

	*resp = FormatResponse{
		OK:      result.OK,
		Message: result.Message,
		Hash:    result.Hash,
		Markup:  result.Markup,
		Plain:   result.Plain,
	}

	return nil
}

// SetName handles ViewerService.SetName RPC calls
func (s *Server) SetName(r *http.Request, req *SetNameRequest, resp *NameResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	if req.AccountID == "" || req.Name == "" {
		return fmt.Errorf("account_id and name are required")
	}

	logger.Logger.Info("Processing set_name RPC", "account", req.AccountID)

	if err := s.resolver.SetUserName(r.Context(), req.AccountID, req.Name); err != nil {
		return fmt.Errorf("failed to store name: %w", err)
	}

	resp.OK = true
	return nil
}

// DeleteName handles ViewerService.DeleteName RPC calls
func (s *Server) DeleteName(r *http.Request, req *DeleteNameRequest, resp *NameResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	if req.AccountID == "" {
		return fmt.Errorf("account_id is required")
	}

	logger.Logger.Info("Processing delete_name RPC", "account", req.AccountID)

	if err := s.resolver.DeleteName(r.Context(), req.AccountID); err != nil {
		return fmt.Errorf("failed to delete name: %w", err)
	}

	resp.OK = true
	return nil
}

// ClearAutoResolved handles ViewerService.ClearAutoResolved RPC calls
func (s *Server) ClearAutoResolved(r *http.Request, req *EmptyRequest, resp *ClearAutoResolvedResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	logger.Logger.Info("Processing clear_auto_resolved RPC")

	cleared, err := s.resolver.ClearAutoResolved(r.Context())
	if err != nil {
		return fmt.Errorf("failed to clear cached names: %w", err)
	}

	resp.Cleared = cleared
	return nil
}

// Health handles ViewerService.Health RPC calls
func (s *Server) Health(r *http.Request, req *EmptyRequest, resp *HealthResponse) error {
	resp.Status = "ok"
	resp.Network = string(s.network)
	return nil
}

// Handler builds the HTTP handler serving the RPC endpoint and the
// plain health check.
func (s *Server) Handler() (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	server.RegisterCodec(json2.NewCodec(), "application/json;charset=UTF-8")

	if err := server.RegisterService(s, "ViewerService"); err != nil {
		return nil, fmt.Errorf("failed to register service: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", server)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	return mux, nil
}

// Start runs the JSON-RPC server until ctx is cancelled.
func (s *Server) Start(ctx context.Context, port string) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	logger.Logger.Info("Starting JSON-RPC server", "port", port)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Logger.Info("Shutting down JSON-RPC server")
	return srv.Shutdown(context.Background())
}
