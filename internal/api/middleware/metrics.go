// metrics.go — Prometheus HTTP метрики Locale Gateway.
// Регистрирует метрики: lg_http_requests_total, lg_http_request_duration_seconds.
// Лейбл path не используется: набор путей проксируемого сайта не ограничен,
// вместо него лейбл server (public, mgmt).
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики Locale Gateway
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lg_http_requests_total",
			Help: "Общее количество HTTP-запросов к Locale Gateway",
		},
		[]string{"server", "method", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lg_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к Locale Gateway в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"server", "method"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// server — значение лейбла server.
func MetricsMiddleware(server string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			method := normalizeMethod(r.Method)

			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(server, method, status).Inc()
			httpRequestDuration.WithLabelValues(server, method).Observe(duration)
		})
	}
}

// normalizeMethod ограничивает лейбл метода стандартным набором.
func normalizeMethod(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
		http.MethodConnect, http.MethodTrace:
		return method
	}
	return "OTHER"
}
