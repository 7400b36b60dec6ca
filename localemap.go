package localemap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultLocale is used when no default locale is configured.
const DefaultLocale = "en"

// LocaleMap resolves message strings across locales. It loads and merges
// translation dictionaries through a Loader, following a configured
// fallback chain, and caches the merged result per locale.
//
// Configuration is frozen in New. Loading is the only operation that
// performs I/O; lookups are synchronous and operate on already-published
// immutable dictionaries, so any number of readers may run concurrently
// with loads.
type LocaleMap struct {
	// Frozen configuration.
	supported     map[Locale]string // locale -> verbatim asset path component
	defaultLocale Locale
	fallbacks     map[Locale][]Locale
	loader        Loader
	baseNames     []string
	autoClean     bool
	logger        *slog.Logger
	missingKey    func(locale Locale, key string)

	// Dictionary cache.
	mu      sync.RWMutex
	current Locale
	entries map[Locale]*cacheEntry
	views   map[Locale]*view
	flight  singleflight.Group
	// loadGen is bumped by dropChain; a fetch started under an older
	// generation must not write its result into entries.
	loadGen uint64
}

// New creates a LocaleMap from the given options and validates the
// configuration: the default locale and every locale referenced by the
// fallback map must be members of the supported set, and a loader must be
// provided.
func New(opts ...Option) (*LocaleMap, error) {
	m := &LocaleMap{
		supported:     map[Locale]string{MustParseLocale(DefaultLocale): DefaultLocale},
		defaultLocale: MustParseLocale(DefaultLocale),
		baseNames:     []string{"common"},
		autoClean:     true,
		logger:        slog.New(slog.DiscardHandler),
		entries:       make(map[Locale]*cacheEntry),
		views:         make(map[Locale]*view),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if m.loader == nil {
		return nil, fmt.Errorf("%w: a loader is required", ErrConfiguration)
	}
	if _, ok := m.supported[m.defaultLocale]; !ok {
		return nil, fmt.Errorf("%w: default locale %q is not in the supported set", ErrConfiguration, m.defaultLocale)
	}
	for from, toList := range m.fallbacks {
		if _, ok := m.supported[from]; !ok {
			return nil, fmt.Errorf("%w: fallback key %q is not in the supported set", ErrConfiguration, from)
		}
		for _, to := range toList {
			if _, ok := m.supported[to]; !ok {
				return nil, fmt.Errorf("%w: fallback %q -> %q is not in the supported set", ErrConfiguration, from, to)
			}
		}
	}

	return m, nil
}

// SupportedLocales returns the supported locales in unspecified order.
func (m *LocaleMap) SupportedLocales() []Locale {
	locales := make([]Locale, 0, len(m.supported))
	for loc := range m.supported {
		locales = append(locales, loc)
	}
	return locales
}

// SupportsLocale reports whether the locale is in the supported set.
func (m *LocaleMap) SupportsLocale(loc Locale) bool {
	_, ok := m.supported[loc]
	return ok
}

// DefaultLocale returns the configured default locale.
func (m *LocaleMap) DefaultLocale() Locale {
	return m.defaultLocale
}

// CurrentLocale returns the active locale, or the zero Locale before the
// first successful Load or SetLocale.
func (m *LocaleMap) CurrentLocale() Locale {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Load loads the active locale's chain, or the default locale's chain when
// no locale has been activated yet. Safe for concurrent use; concurrent
// loads of the same locale share a single fetch sequence.
func (m *LocaleMap) Load(ctx context.Context) error {
	target := m.CurrentLocale()
	if target.IsZero() {
		target = m.defaultLocale
	}
	head, err := m.load(ctx, target)
	if err != nil {
		return err
	}
	m.setCurrent(head)
	return nil
}

// SetLocale switches the active locale, loading its chain first. A locale
// outside the supported set falls through to the default locale's chain.
// The active locale changes only after the chain loads successfully.
func (m *LocaleMap) SetLocale(ctx context.Context, loc Locale) error {
	head, err := m.load(ctx, loc)
	if err != nil {
		return err
	}
	m.setCurrent(head)
	return nil
}

// Preload loads the chains of the given locales without switching the
// active locale. Useful for warming per-request locales in servers.
func (m *LocaleMap) Preload(ctx context.Context, locales ...Locale) error {
	for _, loc := range locales {
		if _, err := m.load(ctx, loc); err != nil {
			return err
		}
	}
	return nil
}

// Reload discards the active chain's cached dictionaries and loads them
// again. Readers holding the previous dictionary keep a valid stale view
// until the replacement is published.
func (m *LocaleMap) Reload(ctx context.Context) error {
	target := m.CurrentLocale()
	if target.IsZero() {
		target = m.defaultLocale
	}

	m.dropChain(m.chainHead(target))

	_, err := m.load(ctx, target)
	return err
}

// load resolves the chain for a target locale, fetches every member not
// already cached, and publishes the fallback-flattened dictionary under
// the chain head. A fetch failure of the chain head or the default locale
// propagates; any other member degrades to an empty contribution.
func (m *LocaleMap) load(ctx context.Context, target Locale) (Locale, error) {
	chain := m.resolveChain(target)
	head := chain[0]

	dicts := make([]map[string]string, 0, len(chain))
	for _, loc := range chain {
		dict, err := m.localeDict(ctx, loc)
		if err != nil {
			if loc == head || loc == m.defaultLocale ||
				errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return Locale{}, fmt.Errorf("localemap: load %q: %w", head, err)
			}
			m.logger.Warn("fallback locale unavailable, contributing empty dictionary",
				"locale", loc.String(), "error", err)
			dict = nil
		}
		dicts = append(dicts, dict)
	}

	m.publishView(head, chain, layerChain(dicts))
	return head, nil
}

// chainHead returns the locale whose view a target resolves to: the target
// itself when supported, the default locale otherwise.
func (m *LocaleMap) chainHead(target Locale) Locale {
	if _, ok := m.supported[target]; ok {
		return target
	}
	return m.defaultLocale
}

func (m *LocaleMap) setCurrent(loc Locale) {
	m.mu.Lock()
	m.current = loc
	m.mu.Unlock()
}

// viewDict returns the published dictionary a locale resolves to, or nil
// when its chain has not been loaded.
func (m *LocaleMap) viewDict(loc Locale) map[string]string {
	head := m.chainHead(loc)

	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.views[head]; ok {
		return v.dict
	}
	return nil
}

// CachedLocales returns the locales with a cached per-locale dictionary,
// in unspecified order. Intended for diagnostics and tests.
func (m *LocaleMap) CachedLocales() []Locale {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locales := make([]Locale, 0, len(m.entries))
	for loc := range m.entries {
		locales = append(locales, loc)
	}
	return locales
}

// Get retrieves the message for a key in the active locale.
// Equivalent to GetFormatted with no arguments.
func (m *LocaleMap) Get(key string) string {
	return m.GetFormatted(key)
}

// GetFormatted retrieves the message for a key in the active locale,
// applying variant selection and placeholder substitution from args.
// It never fails: a missing key renders as the key itself.
func (m *LocaleMap) GetFormatted(key string, args ...Arg) string {
	return m.Translator(m.CurrentLocale()).GetFormatted(key, args...)
}
