// Пакет server — HTTP-серверы Locale Gateway с graceful shutdown.
// Публичный сервер проксирует трафик сайта, служебный отдаёт health и metrics.
// Без TLS — TLS termination на edge-платформе.
package server

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

	"github.com/bigkaa/goartstore/locale-gateway/internal/api/handlers"
	"github.com/bigkaa/goartstore/locale-gateway/internal/api/middleware"
	"github.com/bigkaa/goartstore/locale-gateway/internal/config"
)

// Server — HTTP-серверы Locale Gateway.
type Server struct {
	publicServer *http.Server
	mgmtServer   *http.Server
	logger       *slog.Logger
	cfg          *config.Config
}

// New создаёт серверы с настроенными routes и middleware.
// gateway — обработчик публичного трафика (все пути и методы);
// health — обработчики служебных endpoints;
// middlewares — middleware публичного сервера в порядке переданного среза.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	gateway http.Handler,
	health *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) *Server {
	return &Server{
		publicServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      newPublicRouter(gateway, middlewares...),
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		},
		mgmtServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.MgmtPort),
			Handler:      newMgmtRouter(health),
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		},
		logger: logger,
		cfg:    cfg,
	}
}

// newPublicRouter — весь трафик сайта уходит в gateway.
func newPublicRouter(gateway http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	router := chi.NewRouter()
	for _, mw := range middlewares {
		router.Use(mw)
	}
	router.Handle("/", gateway)
	router.Handle("/*", gateway)
	return router
}

// newMgmtRouter — служебные endpoints.
func newMgmtRouter(health *handlers.HealthHandler) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.MetricsMiddleware("mgmt"))
	router.Get("/health/live", health.HealthLive)
	router.Get("/health/ready", health.HealthReady)
	router.Get("/metrics", health.GetMetrics)
	return router
}

// Run запускает серверы и ожидает сигнала завершения (SIGINT, SIGTERM)
// или ошибки любого из серверов. Затем выполняется graceful shutdown обоих.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.RunContext(ctx)
}

// RunContext запускает серверы до отмены ctx.
func (s *Server) RunContext(ctx context.Context) error {
	// Канал для ошибок серверов
	errCh := make(chan error, 2)

	for _, srv := range []*http.Server{s.publicServer, s.mgmtServer} {
		go func() {
			s.logger.Info("HTTP-сервер запущен",
				slog.String("addr", srv.Addr),
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("сервер %s: %w", srv.Addr, err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("Получен сигнал завершения")
	case err := <-errCh:
		runErr = fmt.Errorf("ошибка HTTP-сервера: %w", err)
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	for _, srv := range []*http.Server{s.publicServer, s.mgmtServer} {
		if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
			runErr = fmt.Errorf("ошибка при graceful shutdown: %w", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	s.logger.Info("HTTP-серверы остановлены")
	return nil
}
