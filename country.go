package localemap

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed data/countries.json
var countriesJSON []byte

//go:embed data/locale_countries.json
var localeCountriesJSON []byte

// CountryCode is a read-only ISO 3166-1 country entry.
type CountryCode struct {
	Alpha2 string
	Alpha3 string
	Name   string
}

// String returns the alpha-2 code.
func (c CountryCode) String() string { return c.Alpha2 }

type countryTables struct {
	byAlpha2 map[string]CountryCode
	byAlpha3 map[string]CountryCode
	// byLocale maps a locale tag ("pt-BR") or bare language ("ja")
	// to an alpha-2 code.
	byLocale map[string]string
}

var loadCountryTables = sync.OnceValue(func() *countryTables {
	var raw map[string]struct {
		Alpha3 string `json:"alpha3"`
		Name   string `json:"name"`
	}
	if err := json.Unmarshal(countriesJSON, &raw); err != nil {
		panic(fmt.Sprintf("localemap: corrupt embedded country table: %v", err))
	}

	t := &countryTables{
		byAlpha2: make(map[string]CountryCode, len(raw)),
		byAlpha3: make(map[string]CountryCode, len(raw)),
	}
	for alpha2, entry := range raw {
		cc := CountryCode{Alpha2: alpha2, Alpha3: entry.Alpha3, Name: entry.Name}
		t.byAlpha2[alpha2] = cc
		t.byAlpha3[entry.Alpha3] = cc
	}

	if err := json.Unmarshal(localeCountriesJSON, &t.byLocale); err != nil {
		panic(fmt.Sprintf("localemap: corrupt embedded locale-country table: %v", err))
	}

	return t
})

// ParseCountry looks up a country by its ISO 3166-1 alpha-2 or alpha-3 code,
// case-insensitively. Returns ErrUnknownCountry when the code is absent
// from the table.
func ParseCountry(s string) (CountryCode, error) {
	tables := loadCountryTables()

	code := strings.ToUpper(strings.TrimSpace(s))
	var cc CountryCode
	var ok bool
	if len(code) == 3 {
		cc, ok = tables.byAlpha3[code]
	} else {
		cc, ok = tables.byAlpha2[code]
	}
	if !ok {
		return CountryCode{}, fmt.Errorf("%w: %q", ErrUnknownCountry, s)
	}
	return cc, nil
}

// Country returns the country associated with the locale.
// A locale with a region resolves through the region code directly;
// a bare language resolves through the static locale-country table
// (e.g. "ja" maps to Japan). The second return value reports whether
// an association exists.
func (l Locale) Country() (CountryCode, bool) {
	if l.IsZero() {
		return CountryCode{}, false
	}

	tables := loadCountryTables()

	if l.region != "" {
		if cc, ok := tables.byAlpha2[l.region]; ok {
			return cc, true
		}
	}

	if alpha2, ok := tables.byLocale[l.String()]; ok {
		if cc, ok := tables.byAlpha2[alpha2]; ok {
			return cc, true
		}
	}
	if alpha2, ok := tables.byLocale[l.lang]; ok {
		if cc, ok := tables.byAlpha2[alpha2]; ok {
			return cc, true
		}
	}

	return CountryCode{}, false
}
