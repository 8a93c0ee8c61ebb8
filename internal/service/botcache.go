// Пакет service — бизнес-логика Locale Gateway.
// BotCache — LRU-кэш результатов классификации User-Agent с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// maxCachedUserAgentLen — User-Agent длиннее не кэшируется.
const maxCachedUserAgentLen = 512

// Prometheus-метрики кэша.
var (
	botCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lg_bot_cache_hits_total",
		Help: "Общее количество попаданий в кэш классификации User-Agent.",
	})
	botCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lg_bot_cache_misses_total",
		Help: "Общее количество промахов кэша классификации User-Agent.",
	})
)

// BotMatcher — классификатор User-Agent.
type BotMatcher interface {
	Match(userAgent string) bool
}

// BotCache — кэширующий классификатор ботов.
// Кэш не влияет на результат: значение всегда совпадает с ответом matcher.
type BotCache struct {
	matcher BotMatcher
	cache   *expirable.LRU[string, bool]
}

// NewBotCache создаёт кэш с указанным максимальным размером и TTL.
func NewBotCache(matcher BotMatcher, maxSize int, ttl time.Duration) *BotCache {
	return &BotCache{
		matcher: matcher,
		cache:   expirable.NewLRU[string, bool](maxSize, nil, ttl),
	}
}

// IsBot возвращает true, если User-Agent принадлежит боту.
// Обновляет Prometheus-метрики hit/miss.
func (c *BotCache) IsBot(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	if len(userAgent) > maxCachedUserAgentLen {
		return c.matcher.Match(userAgent)
	}

	if isBot, ok := c.cache.Get(userAgent); ok {
		botCacheHitsTotal.Inc()
		return isBot
	}
	botCacheMissesTotal.Inc()

	isBot := c.matcher.Match(userAgent)
	c.cache.Add(userAgent, isBot)
	return isBot
}

// Len возвращает количество записей в кэше.
func (c *BotCache) Len() int {
	return c.cache.Len()
}
