// Пакет config — загрузка и валидация конфигурации Locale Gateway
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Locale Gateway.
type Config struct {
	// --- Сервер ---

	// Порт публичного HTTP-сервера (проксируемый сайт)
	Port int
	// Порт служебного сервера (health, metrics)
	MgmtPort int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 60s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- Upstream ---

	// URL origin-сервера сайта (обязательный)
	UpstreamURL string
	// Передавать upstream исходный Host запроса
	UpstreamPreserveHost bool
	// Пропускать проверку TLS-сертификата upstream
	UpstreamTLSSkipVerify bool
	// Путь health-проверки upstream для dephealth
	UpstreamHealthPath string

	// --- Локали ---

	// Путь к YAML-файлу таблицы локалей (пусто — встроенная таблица)
	LocalesFile string
	// Заголовок геолокации, выставляемый edge-платформой
	GeoHeader string
	// Имя cookie предпочтения локали
	CookieName string
	// Время жизни cookie предпочтения
	CookieMaxAge time.Duration
	// Имя query-параметра явного выбора локали
	OverrideParam string

	// --- Кэш классификации User-Agent ---

	// Максимальное количество записей
	BotCacheSize int
	// Время жизни записи
	BotCacheTTL time.Duration

	// --- Мониторинг зависимостей (topologymetrics) ---

	// Включить мониторинг upstream
	DephealthEnabled bool
	// Имя вершины графа текущего приложения
	ServiceID string
	// Имя группы в метриках
	DephealthGroup string
	// Интервал проверки
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 5s)
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// LG_PORT — порт публичного сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("LG_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("LG_PORT: %w", err)
	}

	// LG_MGMT_PORT — порт служебного сервера (по умолчанию 8081)
	cfg.MgmtPort, err = getEnvInt("LG_MGMT_PORT", 8081)
	if err != nil {
		return nil, fmt.Errorf("LG_MGMT_PORT: %w", err)
	}
	if cfg.MgmtPort == cfg.Port {
		return nil, fmt.Errorf("LG_MGMT_PORT: совпадает с LG_PORT (%d)", cfg.Port)
	}

	// LG_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("LG_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("LG_LOG_LEVEL: %w", err)
	}

	// LG_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("LG_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("LG_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("LG_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("LG_HTTP_READ_TIMEOUT: %w", err)
	}

	cfg.HTTPWriteTimeout, err = getEnvDuration("LG_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("LG_HTTP_WRITE_TIMEOUT: %w", err)
	}

	cfg.HTTPIdleTimeout, err = getEnvDuration("LG_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("LG_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Upstream ---

	// LG_UPSTREAM_URL — origin-сервер (обязательный, http/https)
	cfg.UpstreamURL, err = getEnvRequired("LG_UPSTREAM_URL")
	if err != nil {
		return nil, err
	}
	if err := validateUpstreamURL(cfg.UpstreamURL); err != nil {
		return nil, fmt.Errorf("LG_UPSTREAM_URL: %w", err)
	}

	cfg.UpstreamPreserveHost, err = getEnvBool("LG_UPSTREAM_PRESERVE_HOST", true)
	if err != nil {
		return nil, fmt.Errorf("LG_UPSTREAM_PRESERVE_HOST: %w", err)
	}

	cfg.UpstreamTLSSkipVerify, err = getEnvBool("LG_UPSTREAM_TLS_SKIP_VERIFY", false)
	if err != nil {
		return nil, fmt.Errorf("LG_UPSTREAM_TLS_SKIP_VERIFY: %w", err)
	}

	cfg.UpstreamHealthPath = getEnvDefault("LG_UPSTREAM_HEALTH_PATH", "/")
	if !strings.HasPrefix(cfg.UpstreamHealthPath, "/") {
		return nil, fmt.Errorf("LG_UPSTREAM_HEALTH_PATH: путь должен начинаться с /: %q", cfg.UpstreamHealthPath)
	}

	// --- Локали ---

	cfg.LocalesFile = os.Getenv("LG_LOCALES_FILE")
	cfg.GeoHeader = getEnvDefault("LG_GEO_HEADER", "CF-IPCountry")

	cfg.CookieName = getEnvDefault("LG_COOKIE_NAME", "hl")
	if strings.ContainsAny(cfg.CookieName, " =;,\t") {
		return nil, fmt.Errorf("LG_COOKIE_NAME: недопустимое имя cookie %q", cfg.CookieName)
	}

	// LG_COOKIE_MAX_AGE — время жизни cookie (по умолчанию 1 год = 31536000s)
	cfg.CookieMaxAge, err = getEnvDuration("LG_COOKIE_MAX_AGE", 365*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("LG_COOKIE_MAX_AGE: %w", err)
	}
	if cfg.CookieMaxAge < time.Second {
		return nil, fmt.Errorf("LG_COOKIE_MAX_AGE: значение должно быть >= 1s")
	}

	cfg.OverrideParam = getEnvDefault("LG_OVERRIDE_PARAM", "update_hl")

	// --- Кэш классификации User-Agent ---

	cfg.BotCacheSize, err = getEnvInt("LG_BOT_CACHE_SIZE", 10000)
	if err != nil {
		return nil, fmt.Errorf("LG_BOT_CACHE_SIZE: %w", err)
	}
	if cfg.BotCacheSize < 1 {
		return nil, fmt.Errorf("LG_BOT_CACHE_SIZE: значение должно быть > 0")
	}

	cfg.BotCacheTTL, err = getEnvDurationFallback("LG_BOT_CACHE_TTL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("LG_BOT_CACHE_TTL: %w", err)
	}

	// --- Мониторинг зависимостей ---

	cfg.DephealthEnabled, err = getEnvBool("LG_DEPHEALTH_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("LG_DEPHEALTH_ENABLED: %w", err)
	}

	cfg.ServiceID = getEnvDefault("LG_SERVICE_ID", "locale-gateway")
	cfg.DephealthGroup = getEnvDefault("LG_DEPHEALTH_GROUP", "locale-gateway")

	cfg.DephealthCheckInterval, err = getEnvDurationFallback("LG_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("LG_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("LG_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("LG_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// validateUpstreamURL проверяет, что URL абсолютный, http/https, с хостом.
func validateUpstreamURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("некорректный URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("недопустимая схема %q, допустимые: http, https", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("не указан хост в %q", raw)
	}
	return nil
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvDurationFallback возвращает time.Duration из переменной окружения.
// Если переменная не задана, используется fallbackVal.
// Если задана — парсится и валидируется (> 0).
func getEnvDurationFallback(key string, fallbackVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallbackVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	if d <= 0 {
		return 0, fmt.Errorf("значение должно быть > 0")
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
