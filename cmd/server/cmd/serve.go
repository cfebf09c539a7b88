package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tabela/internal/app/server/api"
	"tabela/internal/app/server/api/http/middleware/ratelimit"
	"tabela/internal/domain/submission"
	"tabela/internal/infrastructure/cloud"
	"tabela/internal/infrastructure/storage"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var runAddress string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runAddress != "" {
		cfg.Server.RunAddress = runAddress
	}

	var clients *cloud.Clients
	if cfg.Submit.Enabled {
		var err error
		if clients, err = cloud.NewClients(ctx, cfg.AWS); err != nil {
			return err
		}
	}

	db, err := resolveDatabase(cmd, clients)
	if err != nil {
		return fmt.Errorf("resolve database: %w", err)
	}

	st, err := storage.Open(ctx, db, cfg.DB.Migrations, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("close storage", "error", err)
		}
	}()

	deps := api.Deps{
		Records:        st.Records(),
		StrictNotFound: cfg.Server.StrictNotFound,
	}
	if cfg.Submit.Enabled {
		deps.Relay = submission.NewService(
			cloud.NewBlobStore(clients.S3, cfg.Submit.Bucket),
			cloud.NewNotifier(clients.SES, cfg.Submit.Sender, cfg.Submit.Recipient),
			log,
		)
		log.Info("submission relay enabled", "bucket", cfg.Submit.Bucket)
	}
	if cfg.RateLimit.RPS > 0 {
		deps.Limiter = ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		deps.Limiter.StartJanitor(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           api.New(deps, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func init() {
	serveCmd.Flags().StringVarP(&runAddress, "address", "a", "", "listen address (overrides RUN_ADDRESS)")
	rootCmd.AddCommand(serveCmd)
}
