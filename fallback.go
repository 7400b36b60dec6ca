package localemap

// resolveChain computes the ordered, de-duplicated fallback chain for a
// requested locale. The chain starts with the requested locale when it is
// supported (otherwise with the default locale), continues depth-first
// through every locale listed in the fallback map, skips already-visited
// locales to break cycles, and always terminates with the default locale.
func (m *LocaleMap) resolveChain(requested Locale) []Locale {
	start := requested
	if _, ok := m.supported[requested]; !ok {
		start = m.defaultLocale
	}

	seen := make(map[Locale]struct{})
	chain := make([]Locale, 0, len(m.supported))

	var walk func(loc Locale)
	walk = func(loc Locale) {
		if _, ok := seen[loc]; ok {
			return
		}
		seen[loc] = struct{}{}
		chain = append(chain, loc)
		for _, fb := range m.fallbacks[loc] {
			walk(fb)
		}
	}
	walk(start)

	if _, ok := seen[m.defaultLocale]; !ok {
		chain = append(chain, m.defaultLocale)
	}

	return chain
}
