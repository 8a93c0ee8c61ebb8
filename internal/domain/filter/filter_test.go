package filter

import (
	"net/http"
	"net/url"
	"testing"
)

func TestBotMatcher_Substring(t *testing.T) {
	m, err := NewBotMatcher([]string{"Googlebot/", "bingbot", "Mediapartners (Googlebot)"})
	if err != nil {
		t.Fatalf("NewBotMatcher() вернул ошибку: %v", err)
	}

	tests := []struct {
		ua   string
		want bool
	}{
		{"Googlebot/2.1 (+http://www.google.com/bot.html)", true},
		{"Mozilla/5.0 (compatible; bingbot/2.0)", true},
		{"Mediapartners (Googlebot)", true},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0", false},
		{"BINGBOT", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.ua); got != tt.want {
			t.Errorf("Match(%q) = %v, ожидается %v", tt.ua, got, tt.want)
		}
	}
}

func TestBotMatcher_Pattern(t *testing.T) {
	m, err := NewBotMatcher([]string{"AdsBot-Google([^-]|$)", "[wW]get"})
	if err != nil {
		t.Fatalf("NewBotMatcher() вернул ошибку: %v", err)
	}

	tests := []struct {
		ua   string
		want bool
	}{
		{"AdsBot-Google (+http://www.google.com/adsbot.html)", true},
		{"AdsBot-Google", true},
		{"AdsBot-Google-Mobile", false},
		{"Wget/1.21", true},
		{"wget/1.21", true},
		{"Mozilla/5.0", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.ua); got != tt.want {
			t.Errorf("Match(%q) = %v, ожидается %v", tt.ua, got, tt.want)
		}
	}
}

// TestBotMatcher_InvalidPatternAsLiteral — сигнатура, не являющаяся
// корректным регулярным выражением, работает как подстрока.
func TestBotMatcher_InvalidPatternAsLiteral(t *testing.T) {
	m, err := NewBotMatcher([]string{"bad(bot", ""})
	if err != nil {
		t.Fatalf("NewBotMatcher() вернул ошибку: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, ожидается 1", m.Len())
	}
	if !m.Match("a bad(bot here") {
		t.Error("ожидалось совпадение подстроки")
	}
	if m.Match("badbot") {
		t.Error("не ожидалось совпадение")
	}
}

func TestBotMatcher_Empty(t *testing.T) {
	m, err := NewBotMatcher(nil)
	if err != nil {
		t.Fatalf("NewBotMatcher() вернул ошибку: %v", err)
	}
	if m.Match("Googlebot/2.1") {
		t.Error("пустой классификатор не должен находить ботов")
	}
}

func TestRedirectability(t *testing.T) {
	r, err := NewRedirectability([]string{"ico", ".css", "js", "jpg", "webp", "png", "svg"})
	if err != nil {
		t.Fatalf("NewRedirectability() вернул ошибку: %v", err)
	}

	const html = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	tests := []struct {
		name   string
		accept string
		path   string
		want   bool
	}{
		{"HTML-страница", html, "/en-us/docs", true},
		{"корень", html, "/", true},
		{"без Accept", "", "/docs", false},
		{"JSON", "application/json", "/docs", false},
		{"любой тип", "*/*", "/docs", false},
		{"стили", html, "/style.css", false},
		{"скрипт", html, "/assets/app.js", false},
		{"иконка", html, "/favicon.ico", false},
		{"расширение в середине", html, "/app.js/page", true},
		{"регистр расширения", html, "/logo.PNG", true},
		{"похожее расширение", html, "/data.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.accept != "" {
				h.Set("Accept", tt.accept)
			}
			u := &url.URL{Path: tt.path}
			if got := r.IsRedirectable(h, u); got != tt.want {
				t.Errorf("IsRedirectable(%q, %q) = %v, ожидается %v", tt.accept, tt.path, got, tt.want)
			}
		})
	}
}

func TestRedirectability_NoExtensions(t *testing.T) {
	r, err := NewRedirectability(nil)
	if err != nil {
		t.Fatalf("NewRedirectability() вернул ошибку: %v", err)
	}
	h := http.Header{"Accept": []string{"text/html"}}
	if !r.IsRedirectable(h, &url.URL{Path: "/style.css"}) {
		t.Error("без списка расширений любой HTML-запрос допустим")
	}
}
