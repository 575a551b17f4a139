package cli

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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/workload-planner/backend/internal/config"
	v1 "github.com/workload-planner/backend/internal/controllers/v1"
	"github.com/workload-planner/backend/internal/models"
	"github.com/workload-planner/backend/internal/router"
	"github.com/workload-planner/backend/internal/session"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		Long: `Run the API server. The server is configured with environment variables,
which are also read from a .env file in the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			setupLogging(cfg, os.Stdout)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

// serve runs the HTTP server and the session janitor until ctx is done
// or one of them fails.
func serve(ctx context.Context, cfg *config.Config) error {
	// Create data directory
	err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	err = models.Connect(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := models.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	url, err := cfg.URL()
	if err != nil {
		return err
	}

	opts := router.Options{
		AllowOrigins: cfg.AllowOrigins,
		EnablePprof:  cfg.EnablePprof,
	}

	r, teardown, err := router.Config(url, opts)
	defer teardown()
	if err != nil {
		return err
	}

	co := v1.Controller{
		Sessions:      session.NewStore(cfg.SessionLimit, cfg.SessionTTL),
		DefaultTarget: cfg.DefaultTarget,
	}
	router.AttachRoutes(co, r.Group("/"), opts)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		co.Sessions.Run(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
