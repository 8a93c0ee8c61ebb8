// Пакет upstream — проксирование запросов к origin-серверу сайта.
//
// Логика:
//   - запрос передаётся origin через httputil.ReverseProxy без изменений
//     (кроме X-Forwarded-* и, опционально, Host);
//   - ответ origin возвращается как есть; если в контексте запроса
//     задан Set-Cookie (WithSetCookie), он добавляется к заголовкам ответа;
//   - ошибка соединения с origin → 502 без повторов.
package upstream

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apierrors "github.com/bigkaa/goartstore/locale-gateway/internal/api/errors"
	"github.com/bigkaa/goartstore/locale-gateway/internal/domain/locale"
)

// upstreamErrorsTotal — ошибки соединения с origin.
var upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "lg_upstream_errors_total",
	Help: "Количество ошибок проксирования к origin-серверу (по причине).",
}, []string{"reason"})

// setCookieKey — ключ контекста для Set-Cookie ответа.
type setCookieKey struct{}

// WithSetCookie возвращает контекст, в котором ответ origin
// должен получить дополнительный Set-Cookie.
func WithSetCookie(ctx context.Context, c *http.Cookie) context.Context {
	return context.WithValue(ctx, setCookieKey{}, c)
}

func setCookieFrom(ctx context.Context) *http.Cookie {
	c, _ := ctx.Value(setCookieKey{}).(*http.Cookie)
	return c
}

// Proxy — reverse proxy к origin-серверу.
type Proxy struct {
	target *url.URL
	proxy  *httputil.ReverseProxy
	logger *slog.Logger
}

// New создаёт proxy.
//
// Параметры:
//   - target: URL origin-сервера (LG_UPSTREAM_URL)
//   - preserveHost: передавать исходный Host (LG_UPSTREAM_PRESERVE_HOST)
//   - tlsSkipVerify: пропускать проверку TLS-сертификатов (LG_UPSTREAM_TLS_SKIP_VERIFY)
//   - logger: логгер
func New(target string, preserveHost, tlsSkipVerify bool, logger *slog.Logger) (*Proxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("некорректный URL upstream %q: %w", target, err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: tlsSkipVerify, //nolint:gosec // настраивается через LG_UPSTREAM_TLS_SKIP_VERIFY
	}

	p := &Proxy{
		target: u,
		logger: logger.With(slog.String("component", "upstream")),
	}

	p.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(u)
			pr.SetXForwarded()
			if preserveHost {
				pr.Out.Host = pr.In.Host
			}
		},
		Transport:      transport,
		ModifyResponse: p.modifyResponse,
		ErrorHandler:   p.errorHandler,
	}

	return p, nil
}

// ServeHTTP проксирует запрос к origin.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.proxy.ServeHTTP(w, r)
}

// modifyResponse добавляет Set-Cookie из контекста запроса.
// Остальные заголовки, статус и тело ответа не меняются.
func (p *Proxy) modifyResponse(resp *http.Response) error {
	if resp.Request == nil {
		return nil
	}
	if c := setCookieFrom(resp.Request.Context()); c != nil {
		resp.Header = locale.WithCookie(resp.Header, c)
	}
	return nil
}

// errorHandler отвечает 502 при ошибке соединения с origin.
func (p *Proxy) errorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		// Клиент закрыл соединение — отвечать уже некому
		upstreamErrorsTotal.WithLabelValues("canceled").Inc()
		p.logger.Debug("Запрос отменён клиентом",
			slog.String("path", r.URL.Path),
		)
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	upstreamErrorsTotal.WithLabelValues("transport").Inc()
	p.logger.Error("Ошибка проксирования к upstream",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("upstream", p.target.String()),
	)
	apierrors.UpstreamUnavailable(w, "Ошибка соединения с upstream")
}
