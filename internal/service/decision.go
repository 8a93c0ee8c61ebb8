// decision.go — оркестратор решения по запросу: bypass ботов,
// фильтр HTML-запросов, сравнение текущей и целевой локали,
// политика редиректа и обновления cookie.
//
// Decide — чистая функция: не выполняет I/O и не меняет запрос.
// Применение решения (редирект или проксирование) — в handlers.GatewayHandler.
package service

import (
	"net/http"
	"net/url"

	"github.com/bigkaa/goartstore/locale-gateway/internal/domain/locale"
	"github.com/bigkaa/goartstore/locale-gateway/internal/domain/model"
)

// State — итоговое состояние обработки запроса.
type State int

const (
	// StateBotBypass — бот: проксирование без изменений.
	StateBotBypass State = iota
	// StateNotRedirectable — не HTML или статический ресурс: проксирование без изменений.
	StateNotRedirectable
	// StateLocaleMismatch — локаль пути отличается от целевой: 302 + Set-Cookie.
	StateLocaleMismatch
	// StateLocaleMatchNoCookie — локаль совпадает, cookie нет: проксирование + Set-Cookie.
	StateLocaleMatchNoCookie
	// StateLocaleMatchHasCookie — локаль совпадает, cookie есть
	// (Set-Cookie только при принятом override).
	StateLocaleMatchHasCookie
)

func (s State) String() string {
	switch s {
	case StateBotBypass:
		return "BOT_BYPASS"
	case StateNotRedirectable:
		return "NOT_REDIRECTABLE"
	case StateLocaleMismatch:
		return "LOCALE_MISMATCH"
	case StateLocaleMatchNoCookie:
		return "LOCALE_MATCH_NO_COOKIE"
	case StateLocaleMatchHasCookie:
		return "LOCALE_MATCH_HAS_COOKIE"
	default:
		return "UNKNOWN"
	}
}

// Outcome — решение по запросу.
type Outcome struct {
	State State
	// Current — локаль текущего пути (None — сегмента нет).
	Current locale.Tag
	// Decision — целевая локаль и её происхождение
	// (не заполняется для StateBotBypass и StateNotRedirectable).
	Decision locale.Decision
	// RedirectURL — URL редиректа (только StateLocaleMismatch).
	RedirectURL *url.URL
	// Cookie — Set-Cookie для ответа; nil — заголовки не меняются.
	Cookie *http.Cookie
}

// BotClassifier — классификатор ботов по User-Agent.
type BotClassifier interface {
	IsBot(userAgent string) bool
}

// RedirectabilityFilter — фильтр запросов, допускающих обработку локали.
type RedirectabilityFilter interface {
	IsRedirectable(h http.Header, u *url.URL) bool
}

// DecisionConfig — неизменяемые зависимости оркестратора.
type DecisionConfig struct {
	Table           *locale.Table
	Bots            BotClassifier
	Redirectability RedirectabilityFilter
	// DefaultCountry — страна при отсутствии или некорректной геолокации.
	DefaultCountry string
	Cookie         locale.CookieSpec
	// OverrideParam — имя query-параметра явного выбора локали.
	OverrideParam string
}

// DecisionEngine — оркестратор решения. Безопасен для конкурентного использования.
type DecisionEngine struct {
	table           *locale.Table
	bots            BotClassifier
	redirectability RedirectabilityFilter
	defaultCountry  string
	cookie          locale.CookieSpec
	overrideParam   string
}

// NewDecisionEngine создаёт оркестратор.
func NewDecisionEngine(cfg DecisionConfig) *DecisionEngine {
	return &DecisionEngine{
		table:           cfg.Table,
		bots:            cfg.Bots,
		redirectability: cfg.Redirectability,
		defaultCountry:  cfg.DefaultCountry,
		cookie:          cfg.Cookie,
		overrideParam:   cfg.OverrideParam,
	}
}

// Decide принимает решение по запросу.
func (e *DecisionEngine) Decide(rc model.RequestContext) Outcome {
	if e.bots.IsBot(rc.UserAgent) {
		return Outcome{State: StateBotBypass}
	}

	if !e.redirectability.IsRedirectable(rc.Header, rc.URL) {
		return Outcome{State: StateNotRedirectable}
	}

	current := e.table.Extract(rc.URL.Path)
	cookieTag, hasCookie := e.cookie.Read(rc.Header)

	country := rc.Country
	if country == "" {
		country = e.defaultCountry
	}

	decision := e.table.Resolve(locale.ResolveInput{
		Override: rc.URL.Query().Get(e.overrideParam),
		Cookie:   cookieTag,
		Country:  country,
	})

	out := Outcome{Current: current, Decision: decision}

	switch {
	case decision.Tag != current:
		out.State = StateLocaleMismatch
		out.RedirectURL = e.table.RewriteURL(rc.URL, decision.Tag)
		out.Cookie = e.cookie.Cookie(decision.Tag)
	case !hasCookie:
		out.State = StateLocaleMatchNoCookie
		out.Cookie = e.cookie.Cookie(decision.Tag)
	case decision.Source == locale.SourceOverride:
		// Явный выбор закрепляется в cookie, даже если локаль уже совпадает
		out.State = StateLocaleMatchHasCookie
		out.Cookie = e.cookie.Cookie(decision.Tag)
	default:
		out.State = StateLocaleMatchHasCookie
	}

	return out
}
