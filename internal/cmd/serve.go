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

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dotandev/paysum/internal/daemon"
	"github.com/dotandev/paysum/internal/telemetry"
)

var (
	servePort      string
	serveAuthToken string
	serveTracing   bool
	serveOTLPURL   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start JSON-RPC server for remote viewers",
	Long: `Start a JSON-RPC 2.0 server that exposes the payment summary
formatter and the name store to remote tools.

Endpoints:
  - ViewerService.Format: Format a transaction URL or hash
  - ViewerService.SetName: Save a display name for an account
  - ViewerService.DeleteName: Remove a saved name
  - ViewerService.ClearAutoResolved: Drop cached auto-resolved names
  - ViewerService.Health: Liveness probe

Example:
  paysum serve --port 8642 --network testnet
  paysum serve --port 8642 --auth-token secret123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Initialize OpenTelemetry if enabled by flag or config
		if tcfg := serveTelemetryConfig(); tcfg.Enabled {
			cleanup, err := telemetry.Init(ctx, tcfg)
			if err != nil {
				return fmt.Errorf("failed to initialize telemetry: %w", err)
			}
			defer cleanup()
		}

		if servePort != "" {
			cfg.DaemonPort = servePort
		}
		if serveAuthToken != "" {
			cfg.DaemonToken = serveAuthToken
		}

		server, err := daemon.NewServer(cfg)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}
		defer server.Close()

		// Setup graceful shutdown
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			fmt.Println("\nReceived interrupt signal, shutting down...")
			cancel()
		}()

		fmt.Printf("Starting paysum daemon on port %s\n", cfg.DaemonPort)
		fmt.Printf("Network: %s\n", cfg.Network)
		if cfg.HorizonURL != "" {
			fmt.Printf("Horizon URL: %s\n", cfg.HorizonURL)
		}
		if cfg.DaemonToken != "" {
			fmt.Println("Authentication: enabled")
		}

		return server.Start(ctx, cfg.DaemonPort)
	},
}

// defaultOTLPURL is used when tracing is requested without an
// exporter endpoint from the flag, environment, or config file.
const defaultOTLPURL = "http://localhost:4318"

// serveTelemetryConfig resolves the tracing setup: the --otlp-url flag
// wins, then the configured telemetry endpoint (PAYSUM_OTLP_ENDPOINT
// or config file). A configured endpoint enables tracing on its own.
func serveTelemetryConfig() telemetry.Config {
	url := serveOTLPURL
	if url == "" {
		url = cfg.TelemetryEndpoint
	}

	enabled := serveTracing || cfg.TelemetryEndpoint != ""
	if enabled && url == "" {
		url = defaultOTLPURL
	}

	return telemetry.Config{
		Enabled:     enabled,
		ExporterURL: url,
		ServiceName: "paysum-daemon",
	}
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on")
	serveCmd.Flags().StringVar(&serveAuthToken, "auth-token", "", "Authentication token for API access")
	serveCmd.Flags().BoolVar(&serveTracing, "tracing", false, "Enable OpenTelemetry tracing")
	serveCmd.Flags().StringVar(&serveOTLPURL, "otlp-url", "", "OTLP exporter URL (default "+defaultOTLPURL+")")

	rootCmd.AddCommand(serveCmd)
}
