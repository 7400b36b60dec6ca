package localemap

import "errors"

var (
	// ErrInvalidLocale indicates a locale string that is not a valid
	// "language" or "language-REGION" tag.
	ErrInvalidLocale = errors.New("localemap: invalid locale")

	// ErrUnknownCountry indicates a country code absent from the ISO table.
	ErrUnknownCountry = errors.New("localemap: unknown country")

	// ErrConfiguration indicates an invalid LocaleMap configuration,
	// such as a default locale missing from the supported set.
	ErrConfiguration = errors.New("localemap: invalid configuration")

	// ErrNotFound indicates a missing asset file for a locale.
	ErrNotFound = errors.New("localemap: asset not found")

	// ErrTransport indicates an asset fetch failure (I/O, network, decode).
	ErrTransport = errors.New("localemap: asset fetch failed")

	// ErrDuplicateKey indicates colliding message keys across base files
	// within a single locale.
	ErrDuplicateKey = errors.New("localemap: duplicate message key")
)
