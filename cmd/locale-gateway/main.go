// main.go — точка входа Locale Gateway.
// Инициализация: config → logger → таблица локалей → кэш ботов →
// оркестратор решений → upstream proxy → topologymetrics → HTTP-серверы.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/bigkaa/goartstore/locale-gateway/internal/api/handlers"
	"github.com/bigkaa/goartstore/locale-gateway/internal/api/middleware"
	"github.com/bigkaa/goartstore/locale-gateway/internal/config"
	"github.com/bigkaa/goartstore/locale-gateway/internal/domain/locale"
	"github.com/bigkaa/goartstore/locale-gateway/internal/localedata"
	"github.com/bigkaa/goartstore/locale-gateway/internal/server"
	"github.com/bigkaa/goartstore/locale-gateway/internal/service"
	"github.com/bigkaa/goartstore/locale-gateway/internal/upstream"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// 2. Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Locale Gateway запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.Int("mgmt_port", cfg.MgmtPort),
		slog.String("upstream", cfg.UpstreamURL),
	)

	// 3. Таблица локалей, сигнатуры ботов, статические расширения
	data, err := localedata.Load(cfg.LocalesFile)
	if err != nil {
		logger.Error("Ошибка загрузки таблицы локалей",
			slog.String("file", cfg.LocalesFile),
			slog.String("error", err.Error()),
		)
		log.Fatalf("Ошибка загрузки таблицы локалей: %v", err)
	}
	logger.Info("Таблица локалей загружена",
		slog.Int("locales", len(data.Table.Known())),
		slog.String("default_locale", data.Table.DefaultLocale().String()),
		slog.Int("bot_signatures", data.Bots.Len()),
	)

	// 4. Кэш классификации User-Agent
	botCache := service.NewBotCache(data.Bots, cfg.BotCacheSize, cfg.BotCacheTTL)

	// 5. Оркестратор решений
	engine := service.NewDecisionEngine(service.DecisionConfig{
		Table:           data.Table,
		Bots:            botCache,
		Redirectability: data.Redirectability,
		DefaultCountry:  data.DefaultCountry,
		Cookie:          locale.CookieSpec{Name: cfg.CookieName, MaxAge: cfg.CookieMaxAge},
		OverrideParam:   cfg.OverrideParam,
	})

	// 6. Upstream proxy
	proxy, err := upstream.New(cfg.UpstreamURL, cfg.UpstreamPreserveHost, cfg.UpstreamTLSSkipVerify, logger)
	if err != nil {
		log.Fatalf("Ошибка создания upstream proxy: %v", err)
	}

	// 7. topologymetrics — мониторинг upstream (опционально)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var readiness handlers.ReadinessChecker
	if cfg.DephealthEnabled {
		dephealthSvc, dephealthErr := service.NewDephealthService(
			cfg.ServiceID,
			cfg.DephealthGroup,
			cfg.UpstreamURL,
			cfg.UpstreamHealthPath,
			cfg.DephealthCheckInterval,
			cfg.UpstreamTLSSkipVerify,
			logger,
		)
		if dephealthErr != nil {
			logger.Warn("topologymetrics недоступен, запуск без мониторинга upstream",
				slog.String("error", dephealthErr.Error()),
			)
		} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
			defer dephealthSvc.Stop()
			readiness = dephealthSvc
		}
	}

	// 8. Handlers
	healthHandler := handlers.NewHealthHandler(readiness)
	gatewayHandler := handlers.NewGatewayHandler(engine, proxy, cfg.GeoHeader, logger)

	// 9. HTTP-серверы: request id → metrics → logging
	srv := server.New(cfg, logger, gatewayHandler, healthHandler,
		middleware.RequestID(),
		middleware.MetricsMiddleware("public"),
		middleware.RequestLogger(logger),
	)

	// 10. Запуск серверов (блокирующий вызов с graceful shutdown)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		cancel()
		log.Fatalf("Сервер завершился с ошибкой: %v", err)
	}

	logger.Info("Locale Gateway остановлен")
}
