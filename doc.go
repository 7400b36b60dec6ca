// Package localemap resolves human-readable message strings across locales
// with fallback chains, gender and quantity message variants, and $name
// placeholder substitution.
//
// A LocaleMap is configured once with a supported locale set, a default
// locale, a fallback map, and an asset loader. Loading a locale fetches one
// dictionary per configured base file name, merges them, layers the
// locale's entire fallback chain (most specific wins), and publishes the
// result as an immutable snapshot. Lookups never perform I/O and never
// fail: a missing key renders as the key itself.
//
// # Basic Usage
//
//	lm, err := localemap.New(
//		localemap.WithSupportedLocales("en", "en-US", "pt-BR"),
//		localemap.WithDefaultLocale("en-US"),
//		localemap.WithFallbacks(map[string][]string{
//			"en-US": {"en"},
//			"pt-BR": {"en-US"},
//		}),
//		localemap.WithLoader(localemap.NewDirLoader("res/lang")),
//		localemap.WithBaseFileNames("common"),
//	)
//	if err != nil {
//		// configuration error
//	}
//
//	if err := lm.Load(ctx); err != nil {
//		// asset fetch failed
//	}
//
//	msg := lm.Get("common.message_id")
//
// # Asset Layout
//
// The loader addresses one file per (locale, base file name) pair as
// {src}/{locale}/{base}.json, where the locale path segment is the exact
// string from the supported set. Files hold flat or nested objects of
// string templates; nesting flattens to dot notation. YAML files are
// accepted by the filesystem loader. HTTP and Redis loaders cover remote
// assets.
//
// # Variants and Placeholders
//
// Message variants are encoded in key suffixes and selected by call
// arguments:
//
//	lm.GetFormatted("common.contextual", localemap.Female) // common.contextual_female
//	lm.GetFormatted("common.qty", localemap.Qty(0))        // common.qty_empty
//	lm.GetFormatted("common.qty", localemap.Qty(1))        // common.qty_one
//	lm.GetFormatted("common.qty", localemap.Qty(7))        // common.qty_multiple, $number = 7
//
// Templates reference variables as $name; values come from Vars arguments,
// and a quantity is bound as $number. $$ escapes a literal dollar sign.
// Unknown placeholder names are left literal so authoring mistakes stay
// visible.
//
//	lm.GetFormatted("common.parameterized", localemap.Vars{"x": "foo"})
//
// # Servers
//
// Translator binds a locale without switching the process-wide active one,
// and Middleware resolves a per-request locale from a cookie or the
// Accept-Language header:
//
//	handler := localemap.Middleware(lm)(mux)
//
//	func greet(w http.ResponseWriter, r *http.Request) {
//		t := localemap.TranslatorFromContext(r.Context())
//		fmt.Fprint(w, t.Get("common.greeting"))
//	}
//
// # Concurrency
//
// Loading is context-aware and cancellable. Concurrent loads of the same
// locale coalesce into one fetch sequence; published dictionaries are
// immutable and replaced by whole-reference swaps, so readers require no
// synchronization and never observe a partially merged state.
package localemap
