package localemap

// Translator is a read view of the LocaleMap bound to a fixed locale.
// It is cheap to create, safe for concurrent use, and always observes the
// most recently published dictionary of its locale's chain, which makes it
// the right handle for per-request locales in servers.
type Translator struct {
	m      *LocaleMap
	locale Locale
}

// Translator returns a read view bound to the given locale. A locale
// outside the supported set resolves through the default locale's chain.
func (m *LocaleMap) Translator(locale Locale) *Translator {
	return &Translator{m: m, locale: locale}
}

// Locale returns the locale the translator is bound to.
func (t *Translator) Locale() Locale {
	return t.locale
}

// Get retrieves the message for a key.
// Equivalent to GetFormatted with no arguments.
func (t *Translator) Get(key string) string {
	return t.GetFormatted(key)
}

// GetFormatted retrieves the message for a key, applying variant selection
// and placeholder substitution from args.
//
// Resolution order: the variant key derived from a Gender or Qty selector
// ("{key}_female", "{key}_one", ...), then the unsuffixed key for templates
// without variants. When both are absent the key itself is returned and
// the missing-key handler, if any, is invoked. Lookup never fails and
// never suspends.
func (t *Translator) GetFormatted(key string, args ...Arg) string {
	c := collect(args)
	dict := t.m.viewDict(t.locale)

	if dict != nil {
		if c.suffix != "" {
			if tmpl, ok := dict[key+c.suffix]; ok {
				return substitute(tmpl, c.vars)
			}
		}
		if tmpl, ok := dict[key]; ok {
			return substitute(tmpl, c.vars)
		}
	}

	if t.m.missingKey != nil {
		t.m.missingKey(t.locale, key)
	}
	return key
}
