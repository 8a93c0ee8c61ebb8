// Пакет locale — модель локалей шлюза и чистые функции принятия решения:
// извлечение локали из пути, разрешение целевой локали, переписывание URL
// и формирование cookie предпочтения.
package locale

// Tag — каноническое (нижний регистр) обозначение локали: "en-us", "ar".
type Tag string

// None — отсутствие локали (путь без локального сегмента, cookie не задана).
const None Tag = ""

// String возвращает тег или "none" для пустого значения (для логов и метрик).
func (t Tag) String() string {
	if t == None {
		return "none"
	}
	return string(t)
}

// Source — происхождение выбранной локали.
// Влияет на политику обновления cookie: явный выбор через query
// обновляет cookie даже при совпадении локали.
type Source int

const (
	// SourceDefault — глобальная локаль по умолчанию или запись __no_country__.
	SourceDefault Source = iota
	// SourceCountry — локаль страны по геолокации.
	SourceCountry
	// SourceCookie — значение cookie предпочтения.
	SourceCookie
	// SourceOverride — явный выбор через query-параметр.
	SourceOverride
)

func (s Source) String() string {
	switch s {
	case SourceCountry:
		return "country"
	case SourceCookie:
		return "cookie"
	case SourceOverride:
		return "override"
	default:
		return "default"
	}
}

// Decision — результат разрешения локали: выбранный тег и его происхождение.
type Decision struct {
	Tag    Tag
	Source Source
}
