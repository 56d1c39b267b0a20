package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Kotresh021/frontendLMS/internal/app"
	"github.com/Kotresh021/frontendLMS/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:           "lms-portal",
		Short:         "Server-rendered web portal for the library management system",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			return run(cmd.Context(), envFile)
		},
	}
	root.Flags().String("env-file", ".env", "path to an optional env file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, envFile string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	application, err := app.New(app.Deps{Cfg: cfg, Logger: logger})
	if err != nil {
		return fmt.Errorf("wire application: %w", err)
	}
	defer application.Close()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if cfg.TLSCertFile != "" {
			logger.Info("portal listening", "addr", cfg.ListenAddr, "tls", true)
			if err := srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
		logger.Info("portal listening", "addr", cfg.ListenAddr, "tls", false)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
