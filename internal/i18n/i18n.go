// Package i18n provides translated UI strings from embedded YAML catalogs.
// Nested catalog keys are flattened with dots, so
//
//	editor:
//	  title: Title
//
// is looked up as "editor.title". Values may contain {{name}} placeholders.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLang is used when a requested language has no catalog.
const DefaultLang = "en"

var (
	loadOnce sync.Once
	catalogs map[string]map[string]string
)

func loadCatalogs() map[string]map[string]string {
	loadOnce.Do(func() {
		catalogs = make(map[string]map[string]string)
		entries, err := fs.ReadDir(localeFS, "locales")
		if err != nil {
			log.Printf("i18n: reading catalogs: %v", err)
			return
		}
		for _, e := range entries {
			name := e.Name()
			data, err := localeFS.ReadFile(path.Join("locales", name))
			if err != nil {
				log.Printf("i18n: reading %s: %v", name, err)
				continue
			}
			flat, err := parseCatalog(data)
			if err != nil {
				log.Printf("i18n: parsing %s: %v", name, err)
				continue
			}
			catalogs[strings.TrimSuffix(name, path.Ext(name))] = flat
		}
	})
	return catalogs
}

// parseCatalog decodes a YAML catalog and flattens it to dotted keys.
func parseCatalog(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, v any, out map[string]string) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case nil:
	default:
		out[prefix] = fmt.Sprint(val)
	}
}

// Supported lists the languages with a catalog.
func Supported() []string {
	var langs []string
	for lang := range loadCatalogs() {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Locale is the active language of one session or command.
type Locale struct {
	mu   sync.RWMutex
	lang string
}

// New returns a Locale for lang, falling back to English.
func New(lang string) *Locale {
	l := &Locale{}
	l.SetLocale(lang)
	return l
}

// resolve maps a requested tag such as "zh-CN" onto a catalog name.
func resolve(lang string) (string, bool) {
	all := loadCatalogs()
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := all[lang]; ok {
		return lang, true
	}
	if base, _, found := strings.Cut(strings.ReplaceAll(lang, "_", "-"), "-"); found {
		if _, ok := all[base]; ok {
			return base, true
		}
	}
	return DefaultLang, false
}

// SetLocale switches language. Unknown languages select English.
func (l *Locale) SetLocale(lang string) {
	resolved, ok := resolve(lang)
	if !ok && lang != "" {
		log.Printf("i18n: locale %q not found, falling back to %q", lang, DefaultLang)
	}
	l.mu.Lock()
	l.lang = resolved
	l.mu.Unlock()
}

// Lang returns the active catalog name.
func (l *Locale) Lang() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

func (l *Locale) lookup(key string) (string, bool) {
	all := loadCatalogs()
	if s, ok := all[l.Lang()][key]; ok && s != "" {
		return s, true
	}
	s, ok := all[DefaultLang][key]
	return s, ok && s != ""
}

// Has reports whether key is translated in the active language or English.
func (l *Locale) Has(key string) bool {
	_, ok := l.lookup(key)
	return ok
}

// T returns the translation of key, or key itself when there is none.
func (l *Locale) T(key string) string {
	s, ok := l.lookup(key)
	if !ok {
		log.Printf("i18n: missing key %q", key)
		return key
	}
	return s
}

var placeholder = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Tf translates key and fills its {{name}} placeholders from params.
// Placeholders without a param are left as they are.
func (l *Locale) Tf(key string, params map[string]any) string {
	s := l.T(key)
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := strings.TrimSpace(m[2 : len(m)-2])
		if v, ok := params[name]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}

// Fallbacks returns the generator placeholders for this language.
func (l *Locale) Fallbacks() diagrams.Fallbacks {
	return diagrams.Fallbacks{
		QuadrantTitle:  l.T("fallback.quadrant_title"),
		QuadrantXLeft:  l.T("fallback.quadrant_x_left"),
		QuadrantXRight: l.T("fallback.quadrant_x_right"),
		QuadrantYDown:  l.T("fallback.quadrant_y_down"),
		QuadrantYUp:    l.T("fallback.quadrant_y_up"),
		QuadrantPoint:  l.T("fallback.quadrant_point"),
		TimelinePeriod: l.T("fallback.timeline_period"),
		MindmapRoot:    l.T("fallback.mindmap_root"),
		GanttSection:   l.T("fallback.gantt_section"),
	}
}
