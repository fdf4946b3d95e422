package page

import (
	"context"
	"net/http"
	"net/url"

	"internmatch-web/internal/i18n"
	"internmatch-web/internal/models"
)

// Page is everything the shell template needs. Data holds the view's own model.
type Page struct {
	Route        Route
	RequestURI   string
	T            i18n.Translator
	Notification *models.Notification
	Data         interface{}
}

// NavItem is one header link.
type NavItem struct {
	Path   string
	Key    string
	Active bool
}

// New starts a page for r using the request's translator.
func New(r *http.Request, route Route) *Page {
	return &Page{
		Route:      route,
		RequestURI: r.URL.RequestURI(),
		T:          TranslatorFrom(r.Context()),
	}
}

func (p *Page) Lang() string {
	return p.T.Lang()
}

// Nav returns the header links with the current route marked active.
func (p *Page) Nav() []NavItem {
	items := make([]NavItem, 0, len(Routes))
	for _, r := range Routes {
		items = append(items, NavItem{Path: r.Path(), Key: r.NavKey(), Active: r == p.Route})
	}
	return items
}

// ToggleURL switches to the other language and comes back to this page.
func (p *Page) ToggleURL() string {
	q := url.Values{}
	q.Set("to", p.T.NextLang())
	q.Set("next", p.RequestURI)
	return "/lang?" + q.Encode()
}

// NotificationTitle and NotificationText are empty without a notification.
func (p *Page) NotificationTitle() string {
	if p.Notification == nil {
		return ""
	}
	return p.T.T("notify." + string(p.Notification.Kind) + "_title")
}

func (p *Page) NotificationText() string {
	if p.Notification == nil {
		return ""
	}
	return p.T.TParams(p.Notification.Key, p.Notification.Params)
}

type translatorKey struct{}

// WithTranslator fixes the request's language for every render.
func WithTranslator(ctx context.Context, t i18n.Translator) context.Context {
	return context.WithValue(ctx, translatorKey{}, t)
}

// TranslatorFrom returns the request translator, or the default language's.
func TranslatorFrom(ctx context.Context) i18n.Translator {
	if t, ok := ctx.Value(translatorKey{}).(i18n.Translator); ok {
		return t
	}
	return i18n.Default().Translator(i18n.DefaultLanguage)
}
