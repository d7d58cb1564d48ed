package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/visitorgate/visitor-admin/internal/api"
	"github.com/visitorgate/visitor-admin/internal/api/handler"
	"github.com/visitorgate/visitor-admin/internal/core/service"
	"github.com/visitorgate/visitor-admin/internal/infrastructure/db/mongo"
	"github.com/visitorgate/visitor-admin/internal/infrastructure/db/redis"
	"github.com/visitorgate/visitor-admin/internal/infrastructure/export"
	"github.com/visitorgate/visitor-admin/internal/infrastructure/queue"
	"github.com/visitorgate/visitor-admin/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	visitorSvc := service.NewVisitorService(st.visitors, export.NewXLSXReporter(loc), loc, logger.Component("visitor_service"))
	userSvc := service.NewUserService(st.users, st.presence, logger.Component("user_service"))
	presenceSvc := service.NewPresenceService(st.presence, logger.Component("presence_service"))
	authSvc := service.NewAuthService(st.users, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth_service"))

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher := queue.NewDispatcher(cfg.Presence.Workers, presenceSvc, logger.Component("presence_dispatcher"))
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.Dependencies{
		Auth:       authSvc,
		Visitors:   visitorSvc,
		Users:      userSvc,
		Presence:   presenceSvc,
		Heartbeats: dispatcher,
		Readiness: map[string]handler.Check{
			"mongodb": mongo.Ping(st.mongoClient),
			"redis":   redis.Ping(st.redisClient),
		},
		JWTSecret: cfg.JWTSecret,
		Location:  loc,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("timezone", loc.String()).Msg("http server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	stopWorkers()

	log.Info().Msg("server stopped")
	return nil
}
