// table.go — неизменяемая таблица "страна → локаль(и)".
// Строится один раз при старте и читается конкурентно без блокировок.
package locale

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// NoCountry — ключ записи для стран без собственной локали.
const NoCountry = "__no_country__"

// tokenPattern — допустимый формат тега (совпадает с форматом значения cookie).
var tokenPattern = regexp.MustCompile(`^\w{2}(-\w{2})?$`)

// countryPattern — двухбуквенный код страны ISO 3166-1.
var countryPattern = regexp.MustCompile(`^[A-Z]{2}$`)

// TableConfig — исходные данные таблицы локалей.
type TableConfig struct {
	// Countries — код страны (или NoCountry) → одна или несколько локалей.
	Countries map[string][]string
	// DefaultLocale — глобальная локаль по умолчанию (обязательна, должна быть в таблице).
	DefaultLocale string
	// NoCountryDefault — локаль из списка NoCountry, выбираемая для стран вне таблицы.
	// Пусто — DefaultLocale, если она в списке, иначе первый элемент списка.
	NoCountryDefault string
}

// Table — таблица локалей с предвычисленным множеством известных тегов
// и скомпилированным шаблоном локального сегмента пути.
type Table struct {
	countries     map[string][]Tag
	known         []Tag
	knownSet      map[Tag]struct{}
	defaultLocale Tag
	fallback      Tag
	pathPattern   *regexp.Regexp
}

// NewTable валидирует конфигурацию и строит таблицу.
// Все теги приводятся к нижнему регистру и проверяются как BCP 47.
func NewTable(cfg TableConfig) (*Table, error) {
	if len(cfg.Countries) == 0 {
		return nil, fmt.Errorf("таблица локалей пуста")
	}

	t := &Table{
		countries: make(map[string][]Tag, len(cfg.Countries)),
		knownSet:  make(map[Tag]struct{}),
	}

	for key, values := range cfg.Countries {
		country := key
		if country != NoCountry {
			country = strings.ToUpper(strings.TrimSpace(key))
			if !countryPattern.MatchString(country) {
				return nil, fmt.Errorf("некорректный код страны %q", key)
			}
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("страна %s: пустой список локалей", country)
		}

		tags := make([]Tag, 0, len(values))
		for _, v := range values {
			tag, err := parseTag(v)
			if err != nil {
				return nil, fmt.Errorf("страна %s: %w", country, err)
			}
			tags = append(tags, tag)
			t.knownSet[tag] = struct{}{}
		}
		t.countries[country] = tags
	}

	for tag := range t.knownSet {
		t.known = append(t.known, tag)
	}
	sort.Slice(t.known, func(i, j int) bool { return t.known[i] < t.known[j] })

	def, err := parseTag(cfg.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("локаль по умолчанию: %w", err)
	}
	if !t.IsKnown(def) {
		return nil, fmt.Errorf("локаль по умолчанию %q отсутствует в таблице", def)
	}
	t.defaultLocale = def

	t.fallback, err = t.noCountryFallback(cfg.NoCountryDefault)
	if err != nil {
		return nil, err
	}

	alternatives := make([]string, 0, len(t.known))
	for _, tag := range t.known {
		alternatives = append(alternatives, regexp.QuoteMeta(string(tag)))
	}
	t.pathPattern = regexp.MustCompile(`(?i)^/(` + strings.Join(alternatives, "|") + `)(?:/|$)`)

	return t, nil
}

// noCountryFallback выбирает детерминированную локаль для стран вне таблицы.
func (t *Table) noCountryFallback(configured string) (Tag, error) {
	tags, ok := t.countries[NoCountry]
	if !ok {
		if configured != "" {
			return None, fmt.Errorf("no_country_default задан, но запись %s отсутствует", NoCountry)
		}
		return t.defaultLocale, nil
	}

	if configured != "" {
		tag, err := parseTag(configured)
		if err != nil {
			return None, fmt.Errorf("no_country_default: %w", err)
		}
		if !containsTag(tags, tag) {
			return None, fmt.Errorf("no_country_default %q отсутствует в списке %s", tag, NoCountry)
		}
		return tag, nil
	}

	if containsTag(tags, t.defaultLocale) {
		return t.defaultLocale, nil
	}
	return tags[0], nil
}

// Known возвращает отсортированный список всех известных тегов.
func (t *Table) Known() []Tag {
	out := make([]Tag, len(t.known))
	copy(out, t.known)
	return out
}

// IsKnown проверяет точное совпадение тега с одним из известных.
func (t *Table) IsKnown(tag Tag) bool {
	_, ok := t.knownSet[tag]
	return ok
}

// DefaultLocale возвращает глобальную локаль по умолчанию.
func (t *Table) DefaultLocale() Tag {
	return t.defaultLocale
}

// parseTag нормализует и валидирует тег локали.
func parseTag(raw string) (Tag, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !tokenPattern.MatchString(s) {
		return None, fmt.Errorf("некорректный тег локали %q", raw)
	}
	if _, err := language.Parse(s); err != nil {
		return None, fmt.Errorf("тег локали %q не является BCP 47: %w", raw, err)
	}
	return Tag(s), nil
}

func containsTag(tags []Tag, tag Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
