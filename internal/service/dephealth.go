// dephealth.go — интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// Locale Gateway мониторит:
//   - upstream (origin-сервер сайта) — HTTP checker к LG_UPSTREAM_HEALTH_PATH (critical)
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками:
//   - app_dependency_health — состояние зависимости (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds — задержка проверки
//   - app_dependency_status — категория статуса
//   - app_dependency_status_detail — детальный статус
package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // регистрация HTTP checker factory
	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamDependency — имя зависимости upstream в метриках и Health().
const UpstreamDependency = "upstream"

// Статусы readiness.
const (
	statusOK   = "ok"
	statusFail = "fail"
)

// DephealthService — сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт сервис мониторинга upstream.
// Метрики регистрируются в глобальном Prometheus registry.
//
// Параметры:
//   - serviceID — имя вершины графа текущего приложения (LG_SERVICE_ID)
//   - group — имя группы в метриках (LG_DEPHEALTH_GROUP)
//   - upstreamURL — URL origin-сервера (LG_UPSTREAM_URL)
//   - healthPath — путь проверки (LG_UPSTREAM_HEALTH_PATH)
//   - checkInterval — интервал проверки (LG_DEPHEALTH_CHECK_INTERVAL)
//   - tlsSkipVerify — пропуск проверки TLS (LG_UPSTREAM_TLS_SKIP_VERIFY)
func NewDephealthService(
	serviceID string,
	group string,
	upstreamURL string,
	healthPath string,
	checkInterval time.Duration,
	tlsSkipVerify bool,
	logger *slog.Logger,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, upstreamURL, healthPath, checkInterval, tlsSkipVerify, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным Prometheus registerer.
// Используется в тестах для изоляции метрик.
func NewDephealthServiceWithRegisterer(
	serviceID string,
	group string,
	upstreamURL string,
	healthPath string,
	checkInterval time.Duration,
	tlsSkipVerify bool,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, upstreamURL, healthPath, checkInterval, tlsSkipVerify,
		logger, dephealth.WithRegisterer(registerer))
}

// newDephealthService — внутренний конструктор.
func newDephealthService(
	serviceID string,
	group string,
	upstreamURL string,
	healthPath string,
	checkInterval time.Duration,
	tlsSkipVerify bool,
	logger *slog.Logger,
	extraOpts ...dephealth.Option,
) (*DephealthService, error) {
	depOpts := []dephealth.DependencyOption{
		dephealth.FromURL(upstreamURL),
		dephealth.WithHTTPHealthPath(healthPath),
		dephealth.CheckInterval(checkInterval),
		dephealth.Critical(true),
	}

	// TLS определяем по схеме upstream
	if parsed, err := url.Parse(upstreamURL); err == nil && parsed.Scheme == "https" {
		depOpts = append(depOpts, dephealth.WithHTTPTLSSkipVerify(tlsSkipVerify))
	}

	opts := make([]dephealth.Option, 0, 2+len(extraOpts))
	opts = append(opts,
		dephealth.WithLogger(logger),
		dephealth.HTTP(UpstreamDependency, depOpts...),
	)
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(serviceID, group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен (upstream)")
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает текущее состояние зависимостей.
// Ключ — "dependency:host:port", значение — true если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}

// CheckReady реализует handlers.ReadinessChecker для upstream.
// До первой проверки upstream считается недоступным.
func (ds *DephealthService) CheckReady() (status, message string) {
	for key, ok := range ds.Health() {
		if !strings.HasPrefix(key, UpstreamDependency+":") {
			continue
		}
		if ok {
			return statusOK, ""
		}
		return statusFail, "upstream недоступен"
	}
	return statusFail, "состояние upstream ещё не получено"
}
