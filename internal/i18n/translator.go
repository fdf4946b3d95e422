package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translator binds a catalog to one language for the duration of a render,
// so a single page can never mix languages.
type Translator struct {
	catalog *Catalog
	lang    string
	printer *message.Printer
}

// Translator returns a translator for lang, normalised to a supported language.
func (c *Catalog) Translator(lang string) Translator {
	if !c.Has(lang) {
		lang = c.defaultLang
	}
	return Translator{
		catalog: c,
		lang:    lang,
		printer: message.NewPrinter(language.MustParse(lang)),
	}
}

// Lang is the active language code.
func (t Translator) Lang() string {
	return t.lang
}

// T translates key. Params are alternating name/value pairs: T("form.step", "current", 1, "total", 3).
func (t Translator) T(key string, pairs ...interface{}) string {
	if len(pairs) == 0 {
		return t.catalog.Translate(t.lang, key, nil)
	}
	params := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		params[fmt.Sprint(pairs[i])] = fmt.Sprint(pairs[i+1])
	}
	return t.catalog.Translate(t.lang, key, params)
}

// TParams translates key with named params.
func (t Translator) TParams(key string, params map[string]string) string {
	return t.catalog.Translate(t.lang, key, params)
}

// Number formats n with the language's digit grouping.
func (t Translator) Number(n int) string {
	if t.printer == nil {
		return fmt.Sprint(n)
	}
	return t.printer.Sprintf("%d", n)
}

// NextLang is the language the shell toggle switches to.
func (t Translator) NextLang() string {
	return t.catalog.Next(t.lang)
}
