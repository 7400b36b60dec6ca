package localemap

import (
	"context"
	"net/http"
)

type translatorCtxKey struct{}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	cookieName string
}

// WithLocaleCookie sets the cookie consulted before the Accept-Language
// header. Defaults to "lang". An empty name disables the cookie source.
func WithLocaleCookie(name string) MiddlewareOption {
	return func(cfg *middlewareConfig) {
		cfg.cookieName = name
	}
}

// Middleware resolves the request locale (cookie first, then the
// Accept-Language header), preloads its chain, and stores a Translator
// bound to it in the request context.
//
// A failed preload is logged and the request proceeds: lookups against an
// unloaded chain degrade to returning the key, never to an error page.
func Middleware(m *LocaleMap, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{cookieName: "lang"}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := m.requestLocale(r, cfg.cookieName)

			if err := m.Preload(r.Context(), locale); err != nil {
				m.logger.Warn("locale preload failed",
					"locale", locale.String(), "error", err)
			}

			ctx := context.WithValue(r.Context(), translatorCtxKey{}, m.Translator(locale))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestLocale picks the locale for a request from the cookie or the
// Accept-Language header, falling back to the default locale.
func (m *LocaleMap) requestLocale(r *http.Request, cookieName string) Locale {
	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil {
			if loc, err := ParseLocale(cookie.Value); err == nil && m.SupportsLocale(loc) {
				return loc
			}
		}
	}
	return m.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
}

// TranslatorFromContext extracts the request's Translator.
// Returns nil when the Middleware is not installed.
func TranslatorFromContext(ctx context.Context) *Translator {
	if t, ok := ctx.Value(translatorCtxKey{}).(*Translator); ok {
		return t
	}
	return nil
}

// LocaleFromContext extracts the request's resolved locale.
// Returns the zero Locale when the Middleware is not installed.
func LocaleFromContext(ctx context.Context) Locale {
	if t := TranslatorFromContext(ctx); t != nil {
		return t.locale
	}
	return Locale{}
}
