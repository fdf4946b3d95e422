package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "im_lang"
)

// ResolveLanguage determines the language for the request.
// Order: ?lang= query, cookie, Accept-Language, default.
// The bool reports whether the query choice should be persisted as a cookie.
func (c *Catalog) ResolveLanguage(r *http.Request) (string, bool) {
	if r == nil {
		return c.defaultLang, false
	}

	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" && c.Has(v) {
		return v, true
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil && c.Has(cookie.Value) {
		return cookie.Value, false
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return c.Match(tags...), false
		}
	}

	return c.defaultLang, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
	})
}
