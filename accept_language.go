package localemap

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength bounds header parsing work for oversized input.
const maxAcceptLanguageLength = 4096

// acceptedTag is one Accept-Language entry with its quality value.
type acceptedTag struct {
	locale  Locale
	quality float64
}

// MatchAcceptLanguage negotiates the best supported locale for an HTTP
// Accept-Language header. The highest-quality matching entry wins,
// whether it matches exactly or through its base language; an exact match
// is preferred only over a base-language match of equal quality. A base
// language matches the bare language itself or, deterministically, the
// smallest supported regional variant of it. With no match, or an empty
// header, the default locale is returned.
func (m *LocaleMap) MatchAcceptLanguage(header string) Locale {
	var best Locale
	bestQuality := -1.0
	bestExact := false

	for _, tag := range parseAcceptLanguage(header) {
		if m.SupportsLocale(tag.locale) {
			if tag.quality > bestQuality || (tag.quality == bestQuality && !bestExact) {
				best, bestQuality, bestExact = tag.locale, tag.quality, true
			}
			continue
		}
		if candidate, ok := m.baseMatch(tag.locale); ok && tag.quality > bestQuality {
			best, bestQuality, bestExact = candidate, tag.quality, false
		}
	}

	if best.IsZero() {
		return m.defaultLocale
	}
	return best
}

// baseMatch resolves an unsupported locale through its base language.
func (m *LocaleMap) baseMatch(loc Locale) (Locale, bool) {
	base := loc.Base()
	if m.SupportsLocale(base) {
		return base, true
	}
	return m.supportedVariantOf(base)
}

// supportedVariantOf returns the lexicographically smallest supported
// locale sharing the given base language, for a stable negotiation result.
func (m *LocaleMap) supportedVariantOf(base Locale) (Locale, bool) {
	var best Locale
	for loc := range m.supported {
		if loc.Language() != base.Language() {
			continue
		}
		if best.IsZero() || loc.String() < best.String() {
			best = loc
		}
	}
	return best, !best.IsZero()
}

// parseAcceptLanguage parses an Accept-Language header into parsed locales
// sorted by descending quality. Wildcards, malformed entries, and entries
// with q=0 are dropped.
func parseAcceptLanguage(header string) []acceptedTag {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []acceptedTag

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		tagPart, qPart, hasQuality := strings.Cut(part, ";")
		tagPart = strings.TrimSpace(tagPart)

		if hasQuality {
			qPart = strings.TrimSpace(qPart)
			if strings.HasPrefix(qPart, "q=") {
				if q, err := strconv.ParseFloat(qPart[2:], 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if tagPart == "" || tagPart == "*" || quality == 0 {
			continue
		}

		loc, err := ParseLocale(tagPart)
		if err != nil {
			continue
		}

		tags = append(tags, acceptedTag{locale: loc, quality: quality})
	}

	slices.SortStableFunc(tags, func(a, b acceptedTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	return tags
}
