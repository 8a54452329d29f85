package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crossplay/fillengine/internal/apiserver"
	"github.com/crossplay/fillengine/internal/config"
	"github.com/spf13/cobra"
)

var serveWorkers int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the async fill job HTTP/websocket service",
	Long: `serve starts the optional job service: submit a grid and a named
dictionary over HTTP, poll for the result, or subscribe over a websocket
for a single completion push.

Configuration is read from the environment (see internal/config), with
a .env file loaded first if present.

Examples:
  # Start the service on the configured port (default 8080)
  crossgen serve

  # Start with more fill workers
  crossgen serve --workers 8`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&serveWorkers, "workers", 4, "number of concurrent fill workers")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	srv, err := apiserver.New(apiserver.Options{
		ServiceSecret: cfg.ServiceSecret,
		SQLitePath:    cfg.SQLitePath,
		RedisURL:      cfg.RedisURL,
		DictionaryDir: cfg.DictionaryDir,
		MaxFillTime:   120 * time.Second,
		Workers:       serveWorkers,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize apiserver: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx, ":"+cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
		log.Println("shutting down...")
		cancel()
		return <-errCh
	}
}
