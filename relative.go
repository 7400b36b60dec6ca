package localemap

import "time"

// Relative-time message keys. Each unit key is subject to the usual
// quantity variant selection, so dictionaries provide e.g.
// "time.minutes_one" and "time.minutes_multiple" with a $number
// placeholder, plus a plain "time.just_now".
const (
	keyJustNow = "time.just_now"
	keyMinutes = "time.minutes"
	keyHours   = "time.hours"
	keyDays    = "time.days"
	keyWeeks   = "time.weeks"
	keyMonths  = "time.months"
	keyYears   = "time.years"
)

// RelativeTime renders a duration as localized relative-time wording
// ("5 minutes ago"), driven entirely by the dictionary: the unit bucket
// picks the message key and the amount goes through quantity-variant
// selection. Like every lookup, missing keys degrade to the key itself.
func (t *Translator) RelativeTime(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs < 0 {
		secs = -secs
	}

	if secs < 60 {
		return t.Get(keyJustNow)
	}

	minutes := secs / 60
	if minutes < 60 {
		return t.GetFormatted(keyMinutes, Qty(minutes))
	}

	hours := minutes / 60
	if hours < 24 {
		return t.GetFormatted(keyHours, Qty(hours))
	}

	days := hours / 24
	if days < 7 {
		return t.GetFormatted(keyDays, Qty(days))
	}

	weeks := days / 7
	if weeks < 5 {
		return t.GetFormatted(keyWeeks, Qty(weeks))
	}

	months := max(days/30, 1)
	if months < 12 {
		return t.GetFormatted(keyMonths, Qty(months))
	}

	years := max(months/12, 1)
	return t.GetFormatted(keyYears, Qty(years))
}
