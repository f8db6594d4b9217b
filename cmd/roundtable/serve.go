package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quorumhall/roundtable/internal/handler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the consultation panel over an HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			sys, err := bootstrap(ctx, false)
			if err != nil {
				return err
			}
			defer func() { _ = sys.logger.Sync() }()

			router := handler.NewRouter(sys.personas, sys.consult)
			if err := runServer(ctx, sys, router); err != nil {
				return err
			}

			// Shutdown path flushes the transcript like the CLI does.
			if _, err := sys.consult.SaveTranscript(sys.cfg.Consult.SessionsDir); err != nil {
				sys.logger.Warn("failed to persist session", zap.Error(err))
			}
			return nil
		},
	}
}

func runServer(ctx context.Context, sys *system, router http.Handler) error {
	srv := &http.Server{
		Addr:              sys.cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sys.logger.Info("roundtable API listening", zap.String("addr", srv.Addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
