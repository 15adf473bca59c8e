package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Bundle holds the locale dictionaries. It is constructed once by the
// top-level wiring and injected where needed; there are no package-level
// globals. Lookup falls back locale -> default locale -> the key itself.
type Bundle struct {
	defaultLocale string
	dictionaries  map[string]map[string]string
}

// Load reads every <locale>.json dictionary from dir. Each file is a flat
// key-to-string mapping.
func Load(dir, defaultLocale string) (*Bundle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading locale dir: %w", err)
	}

	b := &Bundle{
		defaultLocale: defaultLocale,
		dictionaries:  map[string]map[string]string{},
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		locale := entry.Name()[:len(entry.Name())-len(".json")]
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading locale %s: %w", locale, err)
		}
		var dict map[string]string
		if err := json.Unmarshal(raw, &dict); err != nil {
			return nil, fmt.Errorf("parsing locale %s: %w", locale, err)
		}
		b.dictionaries[locale] = dict
	}
	return b, nil
}

// FromMaps builds a bundle from in-memory dictionaries
func FromMaps(defaultLocale string, dictionaries map[string]map[string]string) *Bundle {
	b := &Bundle{
		defaultLocale: defaultLocale,
		dictionaries:  map[string]map[string]string{},
	}
	for locale, dict := range dictionaries {
		copied := make(map[string]string, len(dict))
		for k, v := range dict {
			copied[k] = v
		}
		b.dictionaries[locale] = copied
	}
	return b
}

// T resolves a key in the given locale, falling back to the default locale
// and finally to the key itself.
func (b *Bundle) T(locale, key string) string {
	if dict, ok := b.dictionaries[locale]; ok {
		if v, ok := dict[key]; ok {
			return v
		}
	}
	if dict, ok := b.dictionaries[b.defaultLocale]; ok {
		if v, ok := dict[key]; ok {
			return v
		}
	}
	return key
}

// Dictionary returns one locale's full dictionary, or nil when unknown
func (b *Bundle) Dictionary(locale string) map[string]string {
	dict, ok := b.dictionaries[locale]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(dict))
	for k, v := range dict {
		out[k] = v
	}
	return out
}

// Locales lists the loaded locales, sorted
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.dictionaries))
	for locale := range b.dictionaries {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}
