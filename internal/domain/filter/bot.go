// Пакет filter — классификаторы запросов, исключающие их из обработки локалей:
// боты по User-Agent и запросы не-HTML ресурсов.
package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// BotMatcher — классификатор User-Agent по списку сигнатур ботов.
// Все сигнатуры компилируются при создании в одно регулярное выражение.
type BotMatcher struct {
	pattern *regexp.Regexp
	size    int
}

// NewBotMatcher строит классификатор.
// Сигнатура совпадает как подстрока с учётом регистра; если она к тому же
// корректное регулярное выражение (например "AdsBot-Google([^-]|$)"),
// она совпадает и как шаблон.
func NewBotMatcher(signatures []string) (*BotMatcher, error) {
	alternatives := make([]string, 0, len(signatures))
	size := 0

	for _, sig := range signatures {
		if sig == "" {
			continue
		}
		size++

		literal := regexp.QuoteMeta(sig)
		alternatives = append(alternatives, literal)
		if literal != sig {
			if _, err := regexp.Compile(sig); err == nil {
				alternatives = append(alternatives, "(?:"+sig+")")
			}
		}
	}

	m := &BotMatcher{size: size}
	if len(alternatives) == 0 {
		return m, nil
	}

	pattern, err := regexp.Compile(strings.Join(alternatives, "|"))
	if err != nil {
		return nil, fmt.Errorf("компиляция сигнатур ботов: %w", err)
	}
	m.pattern = pattern
	return m, nil
}

// Match возвращает true, если User-Agent принадлежит боту.
// Пустой User-Agent ботом не считается.
func (m *BotMatcher) Match(userAgent string) bool {
	if m.pattern == nil || userAgent == "" {
		return false
	}
	return m.pattern.MatchString(userAgent)
}

// Len возвращает количество сигнатур.
func (m *BotMatcher) Len() int {
	return m.size
}
