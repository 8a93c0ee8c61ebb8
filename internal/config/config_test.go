package config

import (
	"log/slog"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"LG_UPSTREAM_URL": "http://origin.internal:8000",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, ожидается 8080", cfg.Port)
	}
	if cfg.MgmtPort != 8081 {
		t.Errorf("MgmtPort = %d, ожидается 8081", cfg.MgmtPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if !cfg.UpstreamPreserveHost {
		t.Error("UpstreamPreserveHost = false, ожидается true")
	}
	if cfg.UpstreamHealthPath != "/" {
		t.Errorf("UpstreamHealthPath = %q, ожидается /", cfg.UpstreamHealthPath)
	}
	if cfg.GeoHeader != "CF-IPCountry" {
		t.Errorf("GeoHeader = %q, ожидается CF-IPCountry", cfg.GeoHeader)
	}
	if cfg.CookieName != "hl" {
		t.Errorf("CookieName = %q, ожидается hl", cfg.CookieName)
	}
	if cfg.CookieMaxAge != 31536000*time.Second {
		t.Errorf("CookieMaxAge = %v, ожидается 31536000s", cfg.CookieMaxAge)
	}
	if cfg.OverrideParam != "update_hl" {
		t.Errorf("OverrideParam = %q, ожидается update_hl", cfg.OverrideParam)
	}
	if cfg.BotCacheSize != 10000 {
		t.Errorf("BotCacheSize = %d, ожидается 10000", cfg.BotCacheSize)
	}
	if cfg.BotCacheTTL != time.Hour {
		t.Errorf("BotCacheTTL = %v, ожидается 1h", cfg.BotCacheTTL)
	}
	if !cfg.DephealthEnabled {
		t.Error("DephealthEnabled = false, ожидается true")
	}
	if cfg.DephealthCheckInterval != 15*time.Second {
		t.Errorf("DephealthCheckInterval = %v, ожидается 15s", cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	envs := minimalEnvs()
	envs["LG_PORT"] = "9000"
	envs["LG_MGMT_PORT"] = "9001"
	envs["LG_LOG_LEVEL"] = "debug"
	envs["LG_LOG_FORMAT"] = "text"
	envs["LG_UPSTREAM_PRESERVE_HOST"] = "false"
	envs["LG_GEO_HEADER"] = "X-Country-Code"
	envs["LG_COOKIE_NAME"] = "lang"
	envs["LG_COOKIE_MAX_AGE"] = "720h"
	envs["LG_OVERRIDE_PARAM"] = "lang"
	envs["LG_LOCALES_FILE"] = "/etc/locale-gateway/locales.yaml"
	envs["LG_DEPHEALTH_ENABLED"] = "false"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 9000 || cfg.MgmtPort != 9001 {
		t.Errorf("Port/MgmtPort = %d/%d, ожидается 9000/9001", cfg.Port, cfg.MgmtPort)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	if cfg.UpstreamPreserveHost {
		t.Error("UpstreamPreserveHost = true, ожидается false")
	}
	if cfg.GeoHeader != "X-Country-Code" {
		t.Errorf("GeoHeader = %q", cfg.GeoHeader)
	}
	if cfg.CookieName != "lang" || cfg.OverrideParam != "lang" {
		t.Errorf("CookieName/OverrideParam = %q/%q", cfg.CookieName, cfg.OverrideParam)
	}
	if cfg.CookieMaxAge != 720*time.Hour {
		t.Errorf("CookieMaxAge = %v, ожидается 720h", cfg.CookieMaxAge)
	}
	if cfg.LocalesFile != "/etc/locale-gateway/locales.yaml" {
		t.Errorf("LocalesFile = %q", cfg.LocalesFile)
	}
	if cfg.DephealthEnabled {
		t.Error("DephealthEnabled = true, ожидается false")
	}
}

func TestLoad_MissingUpstream(t *testing.T) {
	t.Setenv("LG_UPSTREAM_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("ожидалась ошибка при отсутствии LG_UPSTREAM_URL")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"порт", "LG_PORT", "abc"},
		{"совпадающие порты", "LG_MGMT_PORT", "8080"},
		{"уровень логов", "LG_LOG_LEVEL", "verbose"},
		{"формат логов", "LG_LOG_FORMAT", "xml"},
		{"схема upstream", "LG_UPSTREAM_URL", "ftp://origin"},
		{"хост upstream", "LG_UPSTREAM_URL", "http://"},
		{"health path", "LG_UPSTREAM_HEALTH_PATH", "health"},
		{"булево", "LG_UPSTREAM_PRESERVE_HOST", "maybe"},
		{"имя cookie", "LG_COOKIE_NAME", "h l"},
		{"max age", "LG_COOKIE_MAX_AGE", "1ms"},
		{"размер кэша", "LG_BOT_CACHE_SIZE", "0"},
		{"ttl кэша", "LG_BOT_CACHE_TTL", "-1s"},
		{"интервал", "LG_DEPHEALTH_CHECK_INTERVAL", "soon"},
		{"shutdown", "LG_SHUTDOWN_TIMEOUT", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvs(t, minimalEnvs())
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Errorf("ожидалась ошибка для %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		if err != nil {
			t.Errorf("parseLogLevel(%q) ошибка: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, ожидается %v", tt.in, got, tt.want)
		}
	}
}
