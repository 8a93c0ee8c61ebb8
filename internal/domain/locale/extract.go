// extract.go — извлечение локального сегмента из пути и переписывание URL.
package locale

import (
	"net/url"
	"strings"
)

// locate ищет локальный сегмент в начале пути.
// Возвращает тег и границы сегмента [start, end) в исходной строке.
func (t *Table) locate(path string) (tag Tag, start, end int, ok bool) {
	m := t.pathPattern.FindStringSubmatchIndex(path)
	if m == nil {
		return None, 0, 0, false
	}
	return Tag(strings.ToLower(path[m[2]:m[3]])), m[2], m[3], true
}

// Extract возвращает локаль первого сегмента пути или None.
// Сегмент сравнивается без учёта регистра и должен заканчиваться
// концом пути или "/": "/english-page" не даёт "en".
func (t *Table) Extract(path string) Tag {
	tag, _, _, _ := t.locate(path)
	return tag
}

// RewritePath заменяет локальный сегмент пути на tag,
// а при его отсутствии добавляет "/tag" в начало.
// Остальная часть пути сохраняется байт в байт.
func (t *Table) RewritePath(path string, tag Tag) string {
	if _, start, end, ok := t.locate(path); ok {
		return path[:start] + string(tag) + path[end:]
	}
	return "/" + string(tag) + path
}

// RewriteURL возвращает копию u с переписанным локальным сегментом.
// Query и fragment не меняются; исходный URL не модифицируется.
func (t *Table) RewriteURL(u *url.URL, tag Tag) *url.URL {
	out := *u
	out.Path = t.RewritePath(u.Path, tag)
	if u.RawPath != "" {
		out.RawPath = t.RewritePath(u.RawPath, tag)
	}
	return &out
}
