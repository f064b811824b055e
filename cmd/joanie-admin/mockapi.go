package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openfun/joanie-sub003/internal/logging"
	"github.com/openfun/joanie-sub003/internal/mockapi"
)

func newMockAPICommand(flags *rootFlags) *cobra.Command {
	var (
		addr string
		seed bool
	)

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve an in-memory stand-in for the Joanie API",
		Long: "Serve an in-memory stand-in for the Joanie administrative API, for local\n" +
			"development of the SPA or the CLI without a Django backend. A development\n" +
			"access token is printed at startup.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// For receiving Ctrl+C / SIGTERM
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.MockAddr = addr
			}

			logger, err := logging.New(cfg.LogLevel, flags.verbose)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			server := mockapi.New(mockapi.Options{
				JWTSecret: cfg.MockJWTSecret,
				Logger:    logger,
				Seed:      seed,
			})

			token, err := server.Tokens.Generate("dev", "developer")
			if err != nil {
				return fmt.Errorf("mint development token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mock API on %s\nexport JOANIE_API_TOKEN=%s\n", cfg.MockAddr, token)

			httpServer := &http.Server{
				Addr:    cfg.MockAddr,
				Handler: server.Engine,
			}

			errCh := make(chan error, 1)
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutdown signal received")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("server forced to shutdown", zap.Error(err))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to JOANIE_MOCK_ADDR)")
	cmd.Flags().BoolVar(&seed, "seed", true, "populate the store with fixture data")
	return cmd
}
