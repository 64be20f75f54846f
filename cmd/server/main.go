// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service
// packages.
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

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	filmhandler "filmorate/internal/film/handler"
	filmservice "filmorate/internal/film/service"
	filmstore "filmorate/internal/film/store"
	"filmorate/internal/platform/config"
	"filmorate/internal/platform/httpserver"
	"filmorate/internal/platform/logger"
	"filmorate/internal/platform/metrics"
	"filmorate/internal/platform/middleware"
	userhandler "filmorate/internal/user/handler"
	userservice "filmorate/internal/user/service"
	userstore "filmorate/internal/user/store"
	"filmorate/pkg/platform/httputil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	m := metrics.New(prometheus.DefaultRegisterer)

	users := userservice.New(userstore.NewInMemoryUserStore(),
		userservice.WithLogger(log),
		userservice.WithMetrics(m),
	)
	films := filmservice.New(filmstore.NewInMemoryFilmStore(), users,
		filmservice.WithLogger(log),
		filmservice.WithMetrics(m),
	)

	router := newRouter(cfg, log, users, films)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting filmorate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func newRouter(cfg *config.Config, log *slog.Logger, users *userservice.Service, films *filmservice.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(log))

	userhandler.New(users, log).Register(r)
	filmhandler.New(films, log, cfg.PopularDefault).Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}
