package localemap

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies a language variant as a language code with an optional
// region code. It is an immutable comparable value, safe to use as a map key.
// The zero value is not a valid locale.
type Locale struct {
	lang   string
	region string
}

// legacyAliases maps bare region shortcuts accepted for historical reasons
// to their full locale tags.
var legacyAliases = map[string]string{
	"br": "pt-BR",
	"us": "en-US",
	"jp": "ja-JP",
}

// ParseLocale parses a locale string in the form "language" or
// "language-REGION" (an underscore separator is also accepted).
// Input is case-insensitive; the result is normalized to a lowercase
// language subtag and an uppercase region subtag.
// Returns ErrInvalidLocale for empty or malformed input.
func ParseLocale(s string) (Locale, error) {
	if s == "" {
		return Locale{}, fmt.Errorf("%w: empty string", ErrInvalidLocale)
	}

	normalized := strings.ReplaceAll(s, "_", "-")
	if alias, ok := legacyAliases[strings.ToLower(normalized)]; ok {
		normalized = alias
	}

	langPart, regionPart, hasRegion := strings.Cut(normalized, "-")
	if langPart == "" {
		return Locale{}, fmt.Errorf("%w: %q", ErrInvalidLocale, s)
	}
	if hasRegion && regionPart == "" {
		return Locale{}, fmt.Errorf("%w: %q has a dangling separator", ErrInvalidLocale, s)
	}

	base, err := language.ParseBase(langPart)
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q: %s", ErrInvalidLocale, s, err)
	}

	loc := Locale{lang: base.String()}

	if hasRegion {
		region, err := language.ParseRegion(regionPart)
		if err != nil {
			return Locale{}, fmt.Errorf("%w: %q: %s", ErrInvalidLocale, s, err)
		}
		loc.region = region.String()
	}

	return loc, nil
}

// MustParseLocale is like ParseLocale but panics on invalid input.
// Intended for statically known locale tags.
func MustParseLocale(s string) Locale {
	loc, err := ParseLocale(s)
	if err != nil {
		panic(err)
	}
	return loc
}

// Language returns the lowercase language subtag, e.g. "pt".
func (l Locale) Language() string { return l.lang }

// Region returns the uppercase region subtag, e.g. "BR",
// or an empty string when the locale has no region.
func (l Locale) Region() string { return l.region }

// IsZero reports whether the locale is the zero value.
func (l Locale) IsZero() bool { return l.lang == "" }

// Base returns the locale stripped of its region, e.g. "pt" for "pt-BR".
func (l Locale) Base() Locale { return Locale{lang: l.lang} }

// String returns the canonical tag: "language" or "language-REGION".
func (l Locale) String() string {
	if l.region == "" {
		return l.lang
	}
	return l.lang + "-" + l.region
}

// MarshalText implements encoding.TextMarshaler using the canonical tag.
func (l Locale) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseLocale.
func (l *Locale) UnmarshalText(text []byte) error {
	loc, err := ParseLocale(string(text))
	if err != nil {
		return err
	}
	*l = loc
	return nil
}
