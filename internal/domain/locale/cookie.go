// cookie.go — cookie предпочтения локали: чтение из заголовков запроса
// и формирование Set-Cookie.
package locale

import (
	"net/http"
	"strings"
	"time"
)

// CookieSpec — параметры cookie предпочтения.
type CookieSpec struct {
	// Name — имя cookie ("hl").
	Name string
	// MaxAge — время жизни cookie (Max-Age, округляется до секунд).
	MaxAge time.Duration
}

// ParseCookieValue проверяет формат значения cookie (^\w{2}(-\w{2})?$)
// и приводит его к нижнему регистру. Наличие тега в таблице не проверяется.
func ParseCookieValue(raw string) (Tag, bool) {
	if !tokenPattern.MatchString(raw) {
		return None, false
	}
	return Tag(strings.ToLower(raw)), true
}

// Read возвращает локаль из cookie запроса.
// Значение некорректного формата считается отсутствующим.
func (s CookieSpec) Read(h http.Header) (Tag, bool) {
	req := &http.Request{Header: h}
	c, err := req.Cookie(s.Name)
	if err != nil {
		return None, false
	}
	return ParseCookieValue(c.Value)
}

// Cookie формирует Set-Cookie для тега: Path=/ и Max-Age из спецификации.
func (s CookieSpec) Cookie(tag Tag) *http.Cookie {
	return &http.Cookie{
		Name:   s.Name,
		Value:  string(tag),
		Path:   "/",
		MaxAge: int(s.MaxAge / time.Second),
	}
}

// WithCookie возвращает копию заголовков с добавленным Set-Cookie.
// Исходные заголовки не изменяются.
func WithCookie(h http.Header, c *http.Cookie) http.Header {
	out := h.Clone()
	if out == nil {
		out = make(http.Header)
	}
	if v := c.String(); v != "" {
		out.Add("Set-Cookie", v)
	}
	return out
}
