package localemap

import (
	"context"
	"errors"
	"fmt"
)

// cacheEntry holds the load outcome for a single locale: its per-locale
// dictionary (merged across base files) or the error of the last attempt.
// Entries are replaced wholesale, never mutated in place.
type cacheEntry struct {
	dict map[string]string
	err  error
}

// view is a published, fallback-flattened dictionary for one chain head.
type view struct {
	dict  map[string]string
	chain []Locale
}

// localeDict returns the per-locale dictionary for a chain member, fetching
// and merging it when not cached. Concurrent calls for the same locale are
// coalesced into a single fetch sequence via singleflight; every waiter
// receives the same dictionary reference or the same error.
//
// A previously failed entry is retried. Cancellation does not record a
// failed entry, so a later call starts from a clean state.
func (m *LocaleMap) localeDict(ctx context.Context, loc Locale) (map[string]string, error) {
	m.mu.RLock()
	entry, ok := m.entries[loc]
	gen := m.loadGen
	m.mu.RUnlock()
	if ok && entry.err == nil {
		return entry.dict, nil
	}

	ch := m.flight.DoChan(loc.String(), func() (any, error) {
		dict, err := m.fetchLocale(ctx, loc)

		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			// Cancelled loads leave no trace; the next attempt retries cleanly.
			return nil, err
		}

		m.mu.Lock()
		// A dropChain since this fetch started makes the result stale:
		// deliver it to the waiters but keep it out of the cache.
		if m.loadGen == gen {
			m.entries[loc] = &cacheEntry{dict: dict, err: err}
		}
		m.mu.Unlock()

		return dict, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(map[string]string), nil
	}
}

// fetchLocale fetches every configured base file for a locale and merges
// the results into the per-locale dictionary.
func (m *LocaleMap) fetchLocale(ctx context.Context, loc Locale) (map[string]string, error) {
	pathComponent, ok := m.supported[loc]
	if !ok {
		return nil, fmt.Errorf("%w: fallback locale %q is not in the supported set", ErrConfiguration, loc)
	}

	bases := make([]fetchedBase, 0, len(m.baseNames))
	for _, name := range m.baseNames {
		raw, err := m.loader.Fetch(ctx, pathComponent, name)
		if err != nil {
			return nil, fmt.Errorf("locale %q, base %q: %w", loc, name, err)
		}
		bases = append(bases, fetchedBase{name: name, raw: raw})
	}

	return mergeBases(bases)
}

// publishView stores a freshly layered dictionary for a chain head as one
// atomic reference swap and runs auto-clean when enabled. Readers holding
// the previous dictionary keep a consistent, if stale, snapshot.
func (m *LocaleMap) publishView(head Locale, chain []Locale, dict map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.views[head] = &view{dict: dict, chain: chain}
	if m.autoClean {
		m.autoCleanLocked()
	}
}

// autoCleanLocked evicts cache entries and views that no active chain
// references: views for locales outside the supported set, and entries for
// locales that are neither supported nor part of any published chain.
// Caller must hold m.mu.
func (m *LocaleMap) autoCleanLocked() {
	for head := range m.views {
		if _, ok := m.supported[head]; !ok {
			delete(m.views, head)
		}
	}

	active := make(map[Locale]struct{}, len(m.entries))
	for _, v := range m.views {
		for _, loc := range v.chain {
			active[loc] = struct{}{}
		}
	}

	for loc := range m.entries {
		_, supported := m.supported[loc]
		_, inChain := active[loc]
		if !supported || !inChain {
			delete(m.entries, loc)
			m.logger.Debug("evicted cached locale", "locale", loc.String())
		}
	}
}

// dropChain removes the view and entries of a chain so that a subsequent
// load re-fetches them. In-flight results for the dropped locales are
// forgotten to guarantee a fresh fetch sequence.
func (m *LocaleMap) dropChain(head Locale) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.views[head]
	if !ok {
		return
	}
	delete(m.views, head)
	m.loadGen++
	for _, loc := range v.chain {
		delete(m.entries, loc)
		m.flight.Forget(loc.String())
	}
}
