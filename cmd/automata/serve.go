package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GNINE11/ProjAutomata-TC/internal/adapters/file"
	httpAdapter "github.com/GNINE11/ProjAutomata-TC/internal/adapters/http"
	"github.com/GNINE11/ProjAutomata-TC/internal/adapters/memory"
	"github.com/GNINE11/ProjAutomata-TC/internal/adapters/redis"
	"github.com/GNINE11/ProjAutomata-TC/internal/logging"
	"github.com/GNINE11/ProjAutomata-TC/pkg/persistence/middleware"
	"github.com/GNINE11/ProjAutomata-TC/pkg/registry"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the machine registry HTTP server",
	Long: `Starts the machine registry in server mode, exposing storage, runs and
diagrams as a JSON API over HTTP. Machines live in memory unless a Redis
address or a data directory is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		encryptionKey, _ := cmd.Flags().GetString("encryption-key")
		logLevel, _ := cmd.Flags().GetString("log-level")
		stepLimit, _ := cmd.Flags().GetInt("step-limit")

		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger := logging.New(level)

		var store registry.Store
		switch {
		case redisAddr != "":
			password, _ := cmd.Flags().GetString("redis-password")
			db, _ := cmd.Flags().GetInt("redis-db")

			redisStore := redis.New(redisAddr, password, db)
			defer redisStore.Close()
			store = redisStore
		case dataDir != "":
			store = file.New(dataDir)
		default:
			store = memory.NewStore()
		}

		if encryptionKey != "" {
			key, err := hex.DecodeString(encryptionKey)
			if err != nil {
				fmt.Printf("Error: invalid encryption key: %v\n", err)
				os.Exit(1)
			}
			if len(key) != 32 {
				fmt.Println("Error: encryption key must be 64 hex characters (AES-256)")
				os.Exit(1)
			}
			store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
		}

		handler := httpAdapter.NewHandler(registry.New(store),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(httpAdapter.NewMetrics()),
			httpAdapter.WithStepLimit(stepLimit),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Automata Server on %s\n", srv.Addr)
			switch {
			case redisAddr != "":
				fmt.Printf("Storing machines in Redis at: %s\n", redisAddr)
			case dataDir != "":
				fmt.Printf("Storing machines in: %s\n", dataDir)
			default:
				fmt.Println("Storing machines in memory")
			}
			if encryptionKey != "" {
				fmt.Println("Definitions are encrypted at rest")
			}
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Automata Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis-addr", "", "Redis address for persistent storage (empty keeps machines in memory)")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
	serveCmd.Flags().String("data-dir", "", "Directory for file-backed storage, ignored when --redis-addr is set")
	serveCmd.Flags().String("encryption-key", "", "Hex-encoded 32-byte AES key, encrypts stored definitions")
	serveCmd.Flags().String("log-level", "info", "Log level: debug, info, warn or error")
}
