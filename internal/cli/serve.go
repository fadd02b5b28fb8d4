package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kjorgen/schedcore/internal/config"
	"github.com/kjorgen/schedcore/internal/server"
	"github.com/kjorgen/schedcore/internal/store"
)

func newServeCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the schedcore HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewSQLiteStore(cfg.DBPath, logger)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			if err := st.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			logger.Info("database ready", "path", cfg.DBPath)

			srv := server.New(cfg, st, logger)
			httpServer := &http.Server{
				Addr:    cfg.Addr,
				Handler: srv.Handler(),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.Info("server starting", "addr", cfg.Addr)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errc <- err
				}
			}()

			select {
			case err := <-errc:
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	cmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")

	return cmd
}
