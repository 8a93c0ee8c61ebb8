// gateway.go — обработчик публичного трафика: применяет решение оркестратора.
// LOCALE_MISMATCH → 302 + Set-Cookie; остальные состояния → проксирование
// к origin (с добавлением Set-Cookie, если решение его требует).
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/locale-gateway/internal/domain/model"
	"github.com/bigkaa/goartstore/locale-gateway/internal/service"
	"github.com/bigkaa/goartstore/locale-gateway/internal/upstream"
)

// Prometheus-метрики решений.
var (
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lg_decisions_total",
		Help: "Количество решений шлюза по состояниям.",
	}, []string{"state"})

	resolvedLocalesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lg_resolved_locales_total",
		Help: "Количество разрешённых локалей по происхождению (override, cookie, country, default).",
	}, []string{"source"})
)

// Decider — оркестратор решения по запросу.
type Decider interface {
	Decide(rc model.RequestContext) service.Outcome
}

// GatewayHandler — обработчик публичного трафика шлюза.
type GatewayHandler struct {
	decider   Decider
	upstream  http.Handler
	geoHeader string
	logger    *slog.Logger
}

// NewGatewayHandler создаёт обработчик.
// upstream — проксирующий обработчик (upstream.Proxy);
// geoHeader — заголовок геолокации edge-платформы.
func NewGatewayHandler(decider Decider, upstreamHandler http.Handler, geoHeader string, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{
		decider:   decider,
		upstream:  upstreamHandler,
		geoHeader: geoHeader,
		logger:    logger.With(slog.String("component", "gateway")),
	}
}

// ServeHTTP принимает решение и применяет его.
func (h *GatewayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	out := h.decider.Decide(model.NewRequestContext(r, h.geoHeader))

	decisionsTotal.WithLabelValues(out.State.String()).Inc()
	if out.State != service.StateBotBypass && out.State != service.StateNotRedirectable {
		resolvedLocalesTotal.WithLabelValues(out.Decision.Source.String()).Inc()
	}

	h.logger.LogAttrs(r.Context(), slog.LevelDebug, "Решение по локали",
		slog.String("state", out.State.String()),
		slog.String("path", r.URL.Path),
		slog.String("current", out.Current.String()),
		slog.String("target", out.Decision.Tag.String()),
		slog.String("source", out.Decision.Source.String()),
	)

	if out.State == service.StateLocaleMismatch {
		h.redirect(w, r, out)
		return
	}

	if out.Cookie != nil {
		r = r.WithContext(upstream.WithSetCookie(r.Context(), out.Cookie))
	}
	h.upstream.ServeHTTP(w, r)
}

// redirect отвечает 302 на URL с целевой локалью и устанавливает cookie.
// Location записывается как есть: http.Redirect нормализует путь
// и нарушил бы побайтовое сохранение остальной части URL.
func (h *GatewayHandler) redirect(w http.ResponseWriter, r *http.Request, out service.Outcome) {
	location := out.RedirectURL.String()

	h.logger.LogAttrs(r.Context(), slog.LevelDebug, "Редирект на локаль",
		slog.String("location", location),
	)

	http.SetCookie(w, out.Cookie)
	w.Header().Set("Location", location)
	w.WriteHeader(http.StatusFound)
}
