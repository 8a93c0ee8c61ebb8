// Пакет localedata — загрузка статических данных шлюза из YAML:
// таблица "страна → локаль", сигнатуры ботов, расширения статики.
// Данные загружаются один раз при старте и далее только читаются.
package localedata

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bigkaa/goartstore/locale-gateway/internal/domain/filter"
	"github.com/bigkaa/goartstore/locale-gateway/internal/domain/locale"
	"github.com/bigkaa/goartstore/locale-gateway/internal/domain/model"
)

// defaultData — встроенная таблица, используемая без LG_LOCALES_FILE.
//
//go:embed locales.yaml
var defaultData []byte

// TagList — одна локаль или список локалей страны.
// В YAML допускаются обе формы: `US: en-us` и `US: [en-us, en]`.
type TagList []string

// UnmarshalYAML принимает скаляр или последовательность строк.
func (l *TagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = TagList{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	default:
		return fmt.Errorf("строка %d: ожидается локаль или список локалей", node.Line)
	}
}

// File — структура YAML-файла данных.
type File struct {
	DefaultLocale    string             `yaml:"default_locale"`
	DefaultCountry   string             `yaml:"default_country"`
	NoCountryDefault string             `yaml:"no_country_default"`
	Countries        map[string]TagList `yaml:"countries"`
	StaticExtensions []string           `yaml:"static_extensions"`
	Bots             []string           `yaml:"bots"`
}

// Data — скомпилированные данные, готовые к конкурентному чтению.
type Data struct {
	Table           *locale.Table
	DefaultCountry  string
	Bots            *filter.BotMatcher
	Redirectability *filter.Redirectability
}

// Load загружает данные из файла path; пустой path — встроенная таблица.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение файла локалей: %w", err)
	}
	data, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("файл локалей %s: %w", path, err)
	}
	return data, nil
}

// Default возвращает встроенную таблицу.
func Default() (*Data, error) {
	return Parse(defaultData)
}

// Parse разбирает и валидирует YAML.
func Parse(raw []byte) (*Data, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("разбор YAML: %w", err)
	}

	countries := make(map[string][]string, len(f.Countries))
	for k, v := range f.Countries {
		countries[k] = v
	}

	table, err := locale.NewTable(locale.TableConfig{
		Countries:        countries,
		DefaultLocale:    f.DefaultLocale,
		NoCountryDefault: f.NoCountryDefault,
	})
	if err != nil {
		return nil, err
	}

	defaultCountry := model.NormalizeCountry(f.DefaultCountry)
	if defaultCountry == "" {
		return nil, fmt.Errorf("default_country: некорректный код страны %q", strings.TrimSpace(f.DefaultCountry))
	}

	bots, err := filter.NewBotMatcher(f.Bots)
	if err != nil {
		return nil, err
	}

	redirectability, err := filter.NewRedirectability(f.StaticExtensions)
	if err != nil {
		return nil, err
	}

	return &Data{
		Table:           table,
		DefaultCountry:  defaultCountry,
		Bots:            bots,
		Redirectability: redirectability,
	}, nil
}
