package cli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/granthika-labs/granthika/internal/adapters/driving/httpapi"
	"github.com/granthika-labs/granthika/internal/config"
	"github.com/granthika-labs/granthika/internal/logger"
)

var serveWatch string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the HTTP API on the configured port.

With --watch, new images and PDFs appearing under the given directory
are ingested automatically while the server runs.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveWatch, "watch", "", "directory to watch for new files")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// Sessions need a stable secret across restarts. Generate one on
	// first run and persist it to the config file.
	if a.cfg.Server.JWTSecret == "" {
		secret, err := generateSecret()
		if err != nil {
			return fmt.Errorf("generating session secret: %w", err)
		}
		a.cfg.Server.JWTSecret = secret
		if err := config.Save(a.cfg, cfgFile); err != nil {
			return fmt.Errorf("persisting session secret: %w", err)
		}
		logger.Info("Generated a session secret and saved it to the config file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch != "" {
		events, err := a.scanner.Watch(ctx, serveWatch)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		go func() {
			for path := range events {
				if _, err := a.ingest.IngestFile(ctx, path); err != nil {
					logger.Error("Watch ingest of %s: %v", path, err)
				}
			}
		}()
		logger.Info("Watching %s for new files", serveWatch)
	}

	server := httpapi.NewServer(httpapi.Options{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		JWTSecret:    []byte(a.cfg.Server.JWTSecret),
		SessionHours: a.cfg.Server.SessionHours,
	}, a.search, a.chat, a.auth, a.store, a.index)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		cmd.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
