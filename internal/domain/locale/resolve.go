// resolve.go — выбор целевой локали запроса.
package locale

import "strings"

// ResolveInput — факты запроса, участвующие в выборе локали.
type ResolveInput struct {
	// Override — значение query-параметра явного выбора (может быть пустым).
	Override string
	// Cookie — локаль из cookie предпочтения или None.
	Cookie Tag
	// Country — код страны (геолокация или страна по умолчанию).
	Country string
}

// Resolve выбирает локаль по приоритету:
//  1. Override — только при точном совпадении с известным тегом;
//  2. Cookie — как есть, без сверки с таблицей;
//  3. локаль страны, иначе детерминированная локаль записи __no_country__;
//  4. глобальная локаль по умолчанию.
//
// Всегда возвращает тег.
func (t *Table) Resolve(in ResolveInput) Decision {
	if in.Override != "" && t.IsKnown(Tag(in.Override)) {
		return Decision{Tag: Tag(in.Override), Source: SourceOverride}
	}

	if in.Cookie != None {
		return Decision{Tag: in.Cookie, Source: SourceCookie}
	}

	country := strings.ToUpper(in.Country)
	if country != NoCountry {
		if tags, ok := t.countries[country]; ok {
			return Decision{Tag: tags[0], Source: SourceCountry}
		}
	}

	return Decision{Tag: t.fallback, Source: SourceDefault}
}
