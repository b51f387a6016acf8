package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/postbook-dev/postbook/internal/api"
	"github.com/postbook-dev/postbook/internal/logging"
	"github.com/postbook-dev/postbook/internal/server"
)

func newServeCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP posting API",
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runServe(absDir)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "books directory")

	return cmd
}

func runServe(root string) error {
	// Optional .env overrides; a missing file is fine.
	_ = godotenv.Load(filepath.Join(root, ".env"))

	p, err := loadProject(root)
	if err != nil {
		return err
	}

	port := p.config.Server.Port
	if v := os.Getenv("POSTBOOK_PORT"); v != "" {
		port = v
	}
	mode := p.config.Server.Mode
	if v := os.Getenv("POSTBOOK_MODE"); v != "" {
		mode = v
	}

	log, err := logging.New(mode)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // best-effort flush on shutdown

	l, s, err := p.openLedger()
	if err != nil {
		return err
	}
	defer s.Close()

	log.Info("books loaded",
		zap.String("business", p.config.Business.Name),
		zap.Int("journal_lines", l.Len()),
	)

	handler := api.NewLedgerHandler(l, s, log)
	srv := server.New(log, port, mode, handler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
	}
	return nil
}
