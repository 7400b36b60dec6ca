package localemap_test

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localemap"
)

// mapLoader serves dictionaries from memory and records every fetch,
// keyed "{locale}/{base}".
type mapLoader struct {
	mu    sync.Mutex
	dicts map[string]localemap.RawDictionary
	calls []string
	delay time.Duration
}

func newMapLoader(dicts map[string]localemap.RawDictionary) *mapLoader {
	return &mapLoader{dicts: dicts}
}

func (l *mapLoader) Fetch(ctx context.Context, locale, base string) (localemap.RawDictionary, error) {
	key := locale + "/" + base

	l.mu.Lock()
	l.calls = append(l.calls, key)
	delay := l.delay
	dict, ok := l.dicts[key]
	l.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", localemap.ErrNotFound, key)
	}
	return maps.Clone(dict), nil
}

// fetchCalls returns a copy of the recorded fetch keys.
func (l *mapLoader) fetchCalls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// countCalls returns how many times a single (locale, base) pair was fetched.
func (l *mapLoader) countCalls(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c == key {
			n++
		}
	}
	return n
}

// setDict replaces one dictionary, for reload tests.
func (l *mapLoader) setDict(key string, dict localemap.RawDictionary) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dicts[key] = dict
}

// fixtureDicts mirrors a typical asset tree: en is the complete base
// translation, en-US overrides a message, pt-BR is partially translated.
func fixtureDicts() map[string]localemap.RawDictionary {
	return map[string]localemap.RawDictionary{
		"en/common": {
			"message_id":        "Some message",
			"only_english":      "Only in English",
			"parameterized":     "Here is some parameter: $x",
			"contextual_male":   "Thanks, sir",
			"contextual_female": "Thanks, ma'am",
			"qty_empty":         "You have nothing",
			"qty_one":           "You have one item",
			"qty_multiple":      "You have $number items",
		},
		"en-US/common": {
			"message_id": "Some American message",
		},
		"pt-BR/common": {
			"message_id": "Alguma mensagem",
		},
	}
}

// writeAsset writes one translation file under root, creating the locale
// directory as needed.
func writeAsset(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newFixtureMap builds a LocaleMap over fixtureDicts with the chain
// pt-BR -> en-US -> en and en-US as the default locale.
func newFixtureMap(t *testing.T, loader localemap.Loader, extra ...localemap.Option) *localemap.LocaleMap {
	t.Helper()

	opts := []localemap.Option{
		localemap.WithSupportedLocales("en", "en-US", "pt-BR"),
		localemap.WithDefaultLocale("en-US"),
		localemap.WithFallbacks(map[string][]string{
			"en-US": {"en"},
			"pt-BR": {"en-US"},
		}),
		localemap.WithLoader(loader),
		localemap.WithBaseFileNames("common"),
	}

	lm, err := localemap.New(append(opts, extra...)...)
	require.NoError(t, err)
	return lm
}
