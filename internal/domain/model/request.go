// Пакет model — доменные модели шлюза локалей.
package model

import (
	"net/http"
	"net/url"
	"strings"
)

// RequestContext — факты запроса, используемые при принятии решения.
// Создаётся на входе запроса и не разделяется между запросами.
type RequestContext struct {
	// URL — URL запроса (путь, query, fragment).
	URL *url.URL
	// Header — заголовки запроса (Accept, Cookie, User-Agent).
	Header http.Header
	// Country — код страны по геолокации в верхнем регистре; пусто — неизвестна.
	Country string
	// UserAgent — значение заголовка User-Agent.
	UserAgent string
}

// NewRequestContext извлекает факты из HTTP-запроса.
// geoHeader — заголовок геолокации, выставляемый edge-платформой (CF-IPCountry).
func NewRequestContext(r *http.Request, geoHeader string) RequestContext {
	rc := RequestContext{
		URL:       r.URL,
		Header:    r.Header,
		UserAgent: r.Header.Get("User-Agent"),
	}
	if geoHeader != "" {
		rc.Country = NormalizeCountry(r.Header.Get(geoHeader))
	}
	return rc
}

// NormalizeCountry приводит код страны к верхнему регистру.
// Значение не из двух латинских букв считается отсутствующим.
func NormalizeCountry(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) != 2 {
		return ""
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return ""
		}
	}
	return s
}
