// redirectable.go — допустимость обработки локали для запроса.
// Редирект и cookie имеют смысл только для HTML-документов.
package filter

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// Redirectability — фильтр HTML-запросов к не-статическим путям.
type Redirectability struct {
	assetPattern *regexp.Regexp
}

// NewRedirectability строит фильтр по списку расширений статических ресурсов
// ("css", ".js"). Сравнение расширений учитывает регистр.
func NewRedirectability(extensions []string) (*Redirectability, error) {
	alternatives := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}
		alternatives = append(alternatives, regexp.QuoteMeta(ext))
	}

	r := &Redirectability{}
	if len(alternatives) == 0 {
		return r, nil
	}

	pattern, err := regexp.Compile(`\.(?:` + strings.Join(alternatives, "|") + `)$`)
	if err != nil {
		return nil, fmt.Errorf("компиляция расширений статики: %w", err)
	}
	r.assetPattern = pattern
	return r, nil
}

// IsRedirectable возвращает false, если Accept не допускает text/html
// или путь оканчивается расширением статического ресурса.
func (r *Redirectability) IsRedirectable(h http.Header, u *url.URL) bool {
	accept := strings.Join(h.Values("Accept"), ",")
	if !strings.Contains(accept, "text/html") {
		return false
	}

	if r.assetPattern != nil && r.assetPattern.MatchString(u.Path) {
		return false
	}

	return true
}
