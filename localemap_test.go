package localemap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localemap"
)

func TestNew(t *testing.T) {
	t.Parallel()

	loader := newMapLoader(nil)

	t.Run("requires a loader", func(t *testing.T) {
		t.Parallel()
		_, err := localemap.New()
		require.ErrorIs(t, err, localemap.ErrConfiguration)
	})

	t.Run("defaults to en", func(t *testing.T) {
		t.Parallel()
		lm, err := localemap.New(localemap.WithLoader(loader))
		require.NoError(t, err)
		assert.Equal(t, "en", lm.DefaultLocale().String())
		assert.True(t, lm.SupportsLocale(localemap.MustParseLocale("en")))
	})

	t.Run("rejects default locale outside the supported set", func(t *testing.T) {
		t.Parallel()
		_, err := localemap.New(
			localemap.WithLoader(loader),
			localemap.WithSupportedLocales("en", "de"),
			localemap.WithDefaultLocale("fr"),
		)
		require.ErrorIs(t, err, localemap.ErrConfiguration)
	})

	t.Run("rejects fallbacks referencing unsupported locales", func(t *testing.T) {
		t.Parallel()
		_, err := localemap.New(
			localemap.WithLoader(loader),
			localemap.WithSupportedLocales("en", "de"),
			localemap.WithDefaultLocale("en"),
			localemap.WithFallbacks(map[string][]string{"de": {"fr"}}),
		)
		require.ErrorIs(t, err, localemap.ErrConfiguration)
	})

	t.Run("rejects malformed supported locale", func(t *testing.T) {
		t.Parallel()
		_, err := localemap.New(
			localemap.WithLoader(loader),
			localemap.WithSupportedLocales("en", "no-such-locale-tag"),
		)
		require.ErrorIs(t, err, localemap.ErrConfiguration)
	})

	t.Run("rejects empty supported set and empty base names", func(t *testing.T) {
		t.Parallel()
		_, err := localemap.New(localemap.WithLoader(loader), localemap.WithSupportedLocales())
		require.ErrorIs(t, err, localemap.ErrConfiguration)

		_, err = localemap.New(localemap.WithLoader(loader), localemap.WithBaseFileNames(""))
		require.ErrorIs(t, err, localemap.ErrConfiguration)

		_, err = localemap.New(localemap.WithLoader(loader), localemap.WithBaseFileNames())
		require.ErrorIs(t, err, localemap.ErrConfiguration)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("loads the default chain and activates it", func(t *testing.T) {
		t.Parallel()
		lm := newFixtureMap(t, newMapLoader(fixtureDicts()))

		assert.True(t, lm.CurrentLocale().IsZero())
		require.NoError(t, lm.Load(ctx))
		assert.Equal(t, "en-US", lm.CurrentLocale().String())
		assert.Equal(t, "Some American message", lm.Get("common.message_id"))
	})

	t.Run("fetches every chain member exactly once, ending at the default", func(t *testing.T) {
		t.Parallel()
		loader := newMapLoader(fixtureDicts())
		lm := newFixtureMap(t, loader)

		require.NoError(t, lm.SetLocale(ctx, localemap.MustParseLocale("pt-BR")))
		assert.Equal(t, []string{"pt-BR/common", "en-US/common", "en/common"}, loader.fetchCalls())
	})

	t.Run("unsupported locale falls through to the default chain", func(t *testing.T) {
		t.Parallel()
		lm := newFixtureMap(t, newMapLoader(fixtureDicts()))

		require.NoError(t, lm.SetLocale(ctx, localemap.MustParseLocale("fr")))
		assert.Equal(t, "en-US", lm.CurrentLocale().String())
		assert.Equal(t, "Some American message", lm.Get("common.message_id"))
	})

	t.Run("missing required locale fails the load", func(t *testing.T) {
		t.Parallel()
		dicts := fixtureDicts()
		delete(dicts, "en-US/common")
		lm := newFixtureMap(t, newMapLoader(dicts))

		err := lm.Load(ctx)
		require.ErrorIs(t, err, localemap.ErrNotFound)
		assert.True(t, lm.CurrentLocale().IsZero())
	})

	t.Run("missing non-required fallback member contributes nothing", func(t *testing.T) {
		t.Parallel()
		dicts := fixtureDicts()
		delete(dicts, "en-US/common")

		lm, err := localemap.New(
			localemap.WithSupportedLocales("en", "en-US", "pt-BR"),
			localemap.WithDefaultLocale("en"),
			localemap.WithFallbacks(map[string][]string{"pt-BR": {"en-US"}}),
			localemap.WithLoader(newMapLoader(dicts)),
			localemap.WithBaseFileNames("common"),
		)
		require.NoError(t, err)

		require.NoError(t, lm.SetLocale(ctx, localemap.MustParseLocale("pt-BR")))
		// en-US is absent from the chain's assets but neither requested
		// nor default, so the load succeeds and keys resolve through en.
		assert.Equal(t, "Alguma mensagem", lm.Get("common.message_id"))
		assert.Equal(t, "Only in English", lm.Get("common.only_english"))
	})

	t.Run("reload replaces dictionaries wholesale", func(t *testing.T) {
		t.Parallel()
		loader := newMapLoader(fixtureDicts())
		lm := newFixtureMap(t, loader)

		require.NoError(t, lm.Load(ctx))
		assert.Equal(t, "Some American message", lm.Get("common.message_id"))

		loader.setDict("en-US/common", localemap.RawDictionary{"message_id": "Updated message"})
		require.NoError(t, lm.Reload(ctx))
		assert.Equal(t, "Updated message", lm.Get("common.message_id"))
	})

	t.Run("colliding keys across base files fail the load", func(t *testing.T) {
		t.Parallel()
		// "extra.greeting" nested under common collides with the
		// "greeting" entry of the common/extra base file.
		loader := newMapLoader(map[string]localemap.RawDictionary{
			"en/common":       {"extra.greeting": "Hello"},
			"en/common/extra": {"greeting": "Howdy"},
		})
		lm, err := localemap.New(
			localemap.WithLoader(loader),
			localemap.WithBaseFileNames("common", "common/extra"),
		)
		require.NoError(t, err)

		require.ErrorIs(t, lm.Load(ctx), localemap.ErrDuplicateKey)
	})
}

func TestGetFormatted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newLoaded := func(t *testing.T) *localemap.LocaleMap {
		t.Helper()
		lm := newFixtureMap(t, newMapLoader(fixtureDicts()))
		require.NoError(t, lm.Load(ctx))
		return lm
	}

	t.Run("substitutes named variables", func(t *testing.T) {
		t.Parallel()
		lm := newLoaded(t)
		got := lm.GetFormatted("common.parameterized", localemap.Vars{"x": "foo"})
		assert.Equal(t, "Here is some parameter: foo", got)
	})

	t.Run("selects gender variants", func(t *testing.T) {
		t.Parallel()
		lm := newLoaded(t)
		assert.Equal(t, "Thanks, ma'am", lm.GetFormatted("common.contextual", localemap.Female))
		assert.Equal(t, "Thanks, sir", lm.GetFormatted("common.contextual", localemap.Male))
	})

	t.Run("selects quantity variants and binds $number", func(t *testing.T) {
		t.Parallel()
		lm := newLoaded(t)
		assert.Equal(t, "You have nothing", lm.GetFormatted("common.qty", localemap.Qty(0)))
		assert.Equal(t, "You have one item", lm.GetFormatted("common.qty", localemap.Qty(1)))
		assert.Equal(t, "You have 2 items", lm.GetFormatted("common.qty", localemap.Qty(2)))
		assert.Equal(t, "You have 15 items", lm.GetFormatted("common.qty", localemap.Qty(15)))
	})

	t.Run("only exactly one selects the singular variant", func(t *testing.T) {
		t.Parallel()
		lm := newLoaded(t)
		assert.Equal(t, "You have -1 items", lm.GetFormatted("common.qty", localemap.Qty(-1)))
		assert.Equal(t, "You have -5 items", lm.GetFormatted("common.qty", localemap.Qty(-5)))
	})

	t.Run("falls back to the unsuffixed key for variant-free templates", func(t *testing.T) {
		t.Parallel()
		lm := newLoaded(t)
		assert.Equal(t, "Some American message", lm.GetFormatted("common.message_id", localemap.Qty(3)))
	})

	t.Run("merges variable maps left to right", func(t *testing.T) {
		t.Parallel()
		lm := newLoaded(t)
		got := lm.GetFormatted("common.parameterized",
			localemap.Vars{"x": "first"},
			localemap.Vars{"x": "second"},
		)
		assert.Equal(t, "Here is some parameter: second", got)
	})

	t.Run("missing key returns the key and notifies the handler", func(t *testing.T) {
		t.Parallel()
		var missed []string
		lm := newFixtureMap(t, newMapLoader(fixtureDicts()),
			localemap.WithMissingKeyHandler(func(loc localemap.Locale, key string) {
				missed = append(missed, loc.String()+":"+key)
			}),
		)
		require.NoError(t, lm.Load(ctx))

		assert.Equal(t, "common.nope", lm.Get("common.nope"))
		assert.Equal(t, []string{"en-US:common.nope"}, missed)
	})

	t.Run("lookup before any load degrades to the key", func(t *testing.T) {
		t.Parallel()
		lm := newFixtureMap(t, newMapLoader(fixtureDicts()))
		assert.Equal(t, "common.message_id", lm.Get("common.message_id"))
	})
}

func TestTranslator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reads a preloaded locale without switching the active one", func(t *testing.T) {
		t.Parallel()
		lm := newFixtureMap(t, newMapLoader(fixtureDicts()))
		require.NoError(t, lm.Load(ctx))

		ptBR := localemap.MustParseLocale("pt-BR")
		require.NoError(t, lm.Preload(ctx, ptBR))

		tr := lm.Translator(ptBR)
		assert.Equal(t, "Alguma mensagem", tr.Get("common.message_id"))
		assert.Equal(t, ptBR, tr.Locale())
		assert.Equal(t, "en-US", lm.CurrentLocale().String())
	})

	t.Run("default-only keys resolve through any chain", func(t *testing.T) {
		t.Parallel()
		lm := newFixtureMap(t, newMapLoader(fixtureDicts()))
		ptBR := localemap.MustParseLocale("pt-BR")
		require.NoError(t, lm.Preload(ctx, ptBR))

		assert.Equal(t, "Only in English", lm.Translator(ptBR).Get("common.only_english"))
	})

	t.Run("unsupported locale reads the default view", func(t *testing.T) {
		t.Parallel()
		lm := newFixtureMap(t, newMapLoader(fixtureDicts()))
		require.NoError(t, lm.Load(ctx))

		tr := lm.Translator(localemap.MustParseLocale("fr"))
		assert.Equal(t, "Some American message", tr.Get("common.message_id"))
	})
}
