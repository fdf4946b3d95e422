// Package i18n holds the localization tables and per-request language selection.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the single fallback used when a key or language is missing.
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Language string                 `yaml:"language"`
	Label    string                 `yaml:"label"`
	Messages map[string]interface{} `yaml:"messages"`
}

// Catalog maps a language code to its flattened key→string table.
// It is read-only after Load.
type Catalog struct {
	defaultLang string
	order       []string
	labels      map[string]string
	messages    map[string]map[string]string
	matcher     language.Matcher
	tags        []language.Tag
}

var defaultCatalog = mustLoadEmbedded()

func mustLoadEmbedded() *Catalog {
	c, err := Load(embeddedLocales, DefaultLanguage)
	if err != nil {
		panic(fmt.Sprintf("i18n: load embedded catalogs: %v", err))
	}
	return c
}

// Default returns the embedded catalog with English as fallback.
func Default() *Catalog {
	return defaultCatalog
}

// LoadEmbedded reads the built-in catalogs with defaultLang as fallback.
func LoadEmbedded(defaultLang string) (*Catalog, error) {
	return Load(embeddedLocales, defaultLang)
}

// Load reads every locales/*.yaml file in fsys.
func Load(fsys fs.FS, defaultLang string) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		defaultLang: defaultLang,
		labels:      map[string]string{},
		messages:    map[string]map[string]string{},
	}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		lang := strings.TrimSpace(file.Language)
		if lang == "" {
			return nil, fmt.Errorf("catalog %s: language is required", path)
		}
		if _, dup := c.messages[lang]; dup {
			return nil, fmt.Errorf("catalog %s: language %q defined twice", path, lang)
		}
		if _, err := language.Parse(lang); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}

		flat := map[string]string{}
		if err := flatten("", file.Messages, flat); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		c.messages[lang] = flat
		c.labels[lang] = file.Label
		c.order = append(c.order, lang)
	}

	if _, ok := c.messages[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s is not defined in catalogs", defaultLang)
	}

	// The default goes first so the matcher prefers it on ties.
	sort.SliceStable(c.order, func(i, j int) bool { return c.order[i] == defaultLang && c.order[j] != defaultLang })
	for _, lang := range c.order {
		c.tags = append(c.tags, language.MustParse(lang))
	}
	c.matcher = language.NewMatcher(c.tags)

	return c, nil
}

func flatten(prefix string, in map[string]interface{}, out map[string]string) error {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]interface{}:
			if err := flatten(full, v, out); err != nil {
				return err
			}
		case nil:
			return fmt.Errorf("key %q has no value", full)
		default:
			out[full] = fmt.Sprint(v)
		}
	}
	return nil
}

// Languages returns the supported codes, default first.
func (c *Catalog) Languages() []string {
	return append([]string{}, c.order...)
}

// DefaultLanguage returns the fallback language code.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

// Has reports whether lang has a table.
func (c *Catalog) Has(lang string) bool {
	_, ok := c.messages[lang]
	return ok
}

// Label returns the language's own display name.
func (c *Catalog) Label(lang string) string {
	return c.labels[lang]
}

// Keys returns the sorted keys of one language table.
func (c *Catalog) Keys(lang string) []string {
	table := c.messages[lang]
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the raw message for key, falling back to the default language only.
func (c *Catalog) Lookup(lang, key string) (string, bool) {
	if table, ok := c.messages[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg, true
		}
	}
	if lang != c.defaultLang {
		msg, ok := c.messages[c.defaultLang][key]
		return msg, ok
	}
	return "", false
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Translate looks up key and substitutes {{name}} placeholders from params.
// Unknown keys render as the key itself; unknown placeholders are left in place.
func (c *Catalog) Translate(lang, key string, params map[string]string) string {
	msg, ok := c.Lookup(lang, key)
	if !ok {
		return key
	}
	if len(params) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		if v, ok := params[name]; ok {
			return v
		}
		return m
	})
}

// Match picks the best supported language for the parsed preference list.
func (c *Catalog) Match(prefs ...language.Tag) string {
	if len(prefs) == 0 {
		return c.defaultLang
	}
	_, idx, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.defaultLang
	}
	return c.order[idx]
}

// Next returns the language after lang in the supported list, wrapping around.
// The shell's toggle uses it to flip between languages.
func (c *Catalog) Next(lang string) string {
	for i, l := range c.order {
		if l == lang {
			return c.order[(i+1)%len(c.order)]
		}
	}
	return c.defaultLang
}
