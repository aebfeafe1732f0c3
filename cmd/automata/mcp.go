package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/GNINE11/ProjAutomata-TC/internal/adapters/mcp"
	"github.com/GNINE11/ProjAutomata-TC/internal/adapters/memory"
	"github.com/GNINE11/ProjAutomata-TC/internal/cli"
	"github.com/GNINE11/ProjAutomata-TC/pkg/registry"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the machine registry as an MCP Server.
This allows AI agents (like Claude Desktop) to define, run and inspect machines as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		loadPaths, _ := cmd.Flags().GetStringSlice("load")

		// Configure logger
		opts := &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		// 1. Initialize Registry
		reg := registry.New(memory.NewStore())

		// 2. Preload machines from description files
		for _, path := range loadPaths {
			kind, def, err := cli.LoadDescription(path)
			if err != nil {
				log.Fatalf("Error loading %s: %v", path, err)
			}
			raw, err := json.Marshal(def)
			if err != nil {
				log.Fatalf("Error encoding %s: %v", path, err)
			}
			id, err := reg.Create(cmd.Context(), kind, raw)
			if err != nil {
				log.Fatalf("Error registering %s: %v", path, err)
			}
			slog.Info("Machine loaded", "path", path, "kind", kind, "id", id)
		}

		// 3. Initialize MCP Server Adapter
		srv := mcp.NewServer(reg)

		// 4. Start Server based on Transport
		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting Automata MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Automata MCP Server (SSE)", "port", port)

			// Create a context that cancels on interrupt signal
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				// Ignore server closed error if it was caused by context cancellation
				if err != http.ErrServerClosed {
					slog.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
	mcpCmd.Flags().StringSlice("load", nil, "Machine description files to preload into the registry")
}
