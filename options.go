package localemap

import (
	"fmt"
	"log/slog"
)

// Option configures the LocaleMap during construction. All configuration
// happens in New; the resulting instance is immutable apart from its
// dictionary cache.
type Option func(*LocaleMap) error

// WithSupportedLocales sets the supported locale set. Each code is parsed
// and validated; the code string itself is kept verbatim as the asset path
// component, so "en-US" addresses an en-US directory even though parsing
// normalizes casing.
func WithSupportedLocales(codes ...string) Option {
	return func(m *LocaleMap) error {
		if len(codes) == 0 {
			return fmt.Errorf("%w: empty supported locale set", ErrConfiguration)
		}
		m.supported = make(map[Locale]string, len(codes))
		for _, code := range codes {
			loc, err := ParseLocale(code)
			if err != nil {
				return fmt.Errorf("%w: supported locale %q: %s", ErrConfiguration, code, err)
			}
			m.supported[loc] = code
		}
		return nil
	}
}

// WithDefaultLocale sets the default locale, the final member of every
// fallback chain. It must be present in the supported set.
func WithDefaultLocale(code string) Option {
	return func(m *LocaleMap) error {
		loc, err := ParseLocale(code)
		if err != nil {
			return fmt.Errorf("%w: default locale %q: %s", ErrConfiguration, code, err)
		}
		m.defaultLocale = loc
		return nil
	}
}

// WithFallbacks sets the fallback map. Every locale listed for a key is
// layered in order when resolving that key's chain, most-specific first.
// All referenced locales must be in the supported set.
func WithFallbacks(fallbacks map[string][]string) Option {
	return func(m *LocaleMap) error {
		m.fallbacks = make(map[Locale][]Locale, len(fallbacks))
		for from, toList := range fallbacks {
			fromLoc, err := ParseLocale(from)
			if err != nil {
				return fmt.Errorf("%w: fallback key %q: %s", ErrConfiguration, from, err)
			}
			chain := make([]Locale, 0, len(toList))
			for _, to := range toList {
				toLoc, err := ParseLocale(to)
				if err != nil {
					return fmt.Errorf("%w: fallback %q -> %q: %s", ErrConfiguration, from, to, err)
				}
				chain = append(chain, toLoc)
			}
			m.fallbacks[fromLoc] = chain
		}
		return nil
	}
}

// WithLoader sets the asset loader. Required.
func WithLoader(l Loader) Option {
	return func(m *LocaleMap) error {
		if l == nil {
			return fmt.Errorf("%w: nil loader", ErrConfiguration)
		}
		m.loader = l
		return nil
	}
}

// WithBaseFileNames sets the ordered list of logical asset groups loaded
// per locale (e.g. "common", "validation"). Defaults to "common".
// A name may contain slashes;
// path separators become dots in the merged key space, so a key "required"
// in "forms/validation" is addressed as "forms.validation.required".
func WithBaseFileNames(names ...string) Option {
	return func(m *LocaleMap) error {
		if len(names) == 0 {
			return fmt.Errorf("%w: empty base file name list", ErrConfiguration)
		}
		for _, name := range names {
			if name == "" {
				return fmt.Errorf("%w: empty base file name", ErrConfiguration)
			}
		}
		m.baseNames = append([]string(nil), names...)
		return nil
	}
}

// WithAutoClean controls eviction of stale cache entries after a successful
// load: entries outside the supported set and supported entries outside any
// active chain are removed. Enabled by default.
func WithAutoClean(enabled bool) Option {
	return func(m *LocaleMap) error {
		m.autoClean = enabled
		return nil
	}
}

// WithLogger sets the logger used for non-fatal load diagnostics.
// Defaults to a discard handler.
func WithLogger(l *slog.Logger) Option {
	return func(m *LocaleMap) error {
		if l != nil {
			m.logger = l
		}
		return nil
	}
}

// WithMissingKeyHandler sets a handler invoked when a message lookup finds
// no template in the active locale's merged dictionary. Useful for
// detecting untranslated keys in running systems.
func WithMissingKeyHandler(handler func(locale Locale, key string)) Option {
	return func(m *LocaleMap) error {
		m.missingKey = handler
		return nil
	}
}
