package localedata

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/bigkaa/goartstore/locale-gateway/internal/domain/locale"
)

func TestDefault(t *testing.T) {
	data, err := Default()
	if err != nil {
		t.Fatalf("Default() вернул ошибку: %v", err)
	}

	if data.DefaultCountry != "US" {
		t.Errorf("DefaultCountry = %q, ожидается US", data.DefaultCountry)
	}
	if data.Table.DefaultLocale() != "en" {
		t.Errorf("DefaultLocale = %q, ожидается en", data.Table.DefaultLocale())
	}
	if n := len(data.Table.Known()); n != 10 {
		t.Errorf("известных локалей %d, ожидается 10", n)
	}
	if data.Bots.Len() < 400 {
		t.Errorf("сигнатур ботов %d, ожидается не меньше 400", data.Bots.Len())
	}

	tests := []struct {
		country string
		want    locale.Tag
	}{
		{"US", "en-us"},
		{"CA", "en-us"},
		{"EG", "en-sa"},
		{"IL", "en-jo"},
		{"FR", "en"},
	}
	for _, tt := range tests {
		if d := data.Table.Resolve(locale.ResolveInput{Country: tt.country}); d.Tag != tt.want {
			t.Errorf("Resolve(%s) = %q, ожидается %q", tt.country, d.Tag, tt.want)
		}
	}
}

func TestDefault_Bots(t *testing.T) {
	data, err := Default()
	if err != nil {
		t.Fatalf("Default() вернул ошибку: %v", err)
	}

	bots := []string{
		"Googlebot/2.1 (+http://www.google.com/bot.html)",
		"Mozilla/5.0 (compatible; YandexBot/3.0)",
		"Wget/1.21.4",
		"python-requests/2.31.0",
		"Go-http-client/1.1",
		"Jamie's Spider",
		"curl/8.4.0",
		"AdsBot-Google (+http://www.google.com/adsbot.html)",
	}
	for _, ua := range bots {
		if !data.Bots.Match(ua) {
			t.Errorf("Match(%q) = false, ожидался бот", ua)
		}
	}

	browsers := []string{
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0",
	}
	for _, ua := range browsers {
		if data.Bots.Match(ua) {
			t.Errorf("Match(%q) = true, ожидался браузер", ua)
		}
	}
}

func TestDefault_StaticExtensions(t *testing.T) {
	data, err := Default()
	if err != nil {
		t.Fatalf("Default() вернул ошибку: %v", err)
	}

	h := http.Header{"Accept": []string{"text/html"}}
	for _, p := range []string{"/favicon.ico", "/style.css", "/app.js", "/a.jpg", "/a.webp", "/a.png", "/a.svg"} {
		if data.Redirectability.IsRedirectable(h, &url.URL{Path: p}) {
			t.Errorf("IsRedirectable(%q) = true, ожидается false", p)
		}
	}
}

func TestParse_ScalarAndList(t *testing.T) {
	raw := []byte(`
default_locale: en
default_country: gb
countries:
  GB: en
  CH: [de-ch, fr-ch]
static_extensions: [css]
bots: [bingbot]
`)

	data, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() вернул ошибку: %v", err)
	}
	if data.DefaultCountry != "GB" {
		t.Errorf("DefaultCountry = %q, ожидается GB", data.DefaultCountry)
	}
	if d := data.Table.Resolve(locale.ResolveInput{Country: "CH"}); d.Tag != "de-ch" {
		t.Errorf("Resolve(CH) = %q, ожидается de-ch", d.Tag)
	}
	if !data.Table.IsKnown("fr-ch") {
		t.Error("ожидалась известная локаль fr-ch")
	}
	if d := data.Table.Resolve(locale.ResolveInput{Country: "DE"}); d.Tag != "en" {
		t.Errorf("Resolve(DE) = %q, ожидается en", d.Tag)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"некорректный YAML", "countries: [\n"},
		{"карта вместо локали", "default_locale: en\ndefault_country: US\ncountries:\n  US: {a: b}\n"},
		{"нет default_country", "default_locale: en\ncountries:\n  US: en\n"},
		{"нет стран", "default_locale: en\ndefault_country: US\n"},
		{"default_locale вне таблицы", "default_locale: fr\ndefault_country: US\ncountries:\n  US: en\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("ожидалась ошибка")
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locales.yaml")
	raw := "default_locale: ar\ndefault_country: SA\ncountries:\n  SA: ar\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("запись файла: %v", err)
	}

	data, err := Load(path)
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if data.Table.DefaultLocale() != "ar" {
		t.Errorf("DefaultLocale = %q, ожидается ar", data.Table.DefaultLocale())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("ожидалась ошибка для отсутствующего файла")
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	data, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") вернул ошибку: %v", err)
	}
	if data.DefaultCountry != "US" {
		t.Errorf("DefaultCountry = %q, ожидается US", data.DefaultCountry)
	}
}
