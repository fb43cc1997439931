package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"team-timeline/internal/api"
	"team-timeline/internal/cache"
	"team-timeline/internal/config"
	"team-timeline/internal/db"
	k "team-timeline/internal/kafka"
	"team-timeline/internal/worker"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), appConfig)
	},
}

func runServe(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.InfoContext(ctx, "Starting service...")

	apiCfg := api.Config{MaxUploadBytes: cfg.Server.MaxUploadBytes}
	if cfg.Database.URL != "" {
		store, err := db.Init(ctx, db.Config{
			ConnString:     cfg.Database.URL,
			MigrationsPath: cfg.Database.MigrationsPath,
		})
		if err != nil {
			return err
		}
		defer store.Close()
		apiCfg.DB = store
	} else {
		slog.WarnContext(ctx, "No database configured, schedules are kept in memory")
	}

	scheduleCache := cache.New(cache.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerTopic: cfg.Kafka.Topic,
	})
	defer scheduleCache.Close(context.Background())
	apiCfg.Cache = scheduleCache

	wg := sync.WaitGroup{}
	if cfg.Kafka.Brokers != "" {
		kafkaCfg := k.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}
		if err := k.EnsureTopic(ctx, kafkaCfg); err != nil {
			return err
		}
		publisher := k.NewPublisher(kafkaCfg)
		defer publisher.Close(context.Background())
		apiCfg.Publisher = publisher

		scheduleCache.Hydrate(ctx)
		wCache := worker.New(worker.Config{
			Name:      "schedule-cache",
			Processor: scheduleCache,
		})
		wg.Go(func() {
			wCache.Run(ctx)
		})
	} else {
		slog.WarnContext(ctx, "No kafka brokers configured, schedule events are disabled")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.New(apiCfg).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var err error
	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "Shutting down...")
	case err = <-serveErr:
		slog.ErrorContext(ctx, "HTTP server error", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.ErrorContext(shutdownCtx, "HTTP server shutdown failed", "error", shutdownErr)
	}
	wg.Wait()
	return err
}
