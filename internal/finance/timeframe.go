package finance

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ResolveTimeframe maps a loosely-specified timeframe phrase to a concrete
// date. The second return value reports whether the date was inferred rather
// than stated: an empty or unrecognized phrase falls back to the nearest
// upcoming Saturday with the assumption flag set.
//
// Matching is case-insensitive substring matching in priority order:
// tomorrow, weekend/saturday/sunday, friday, week. Underscores and
// whitespace runs collapse to single spaces first, so "this_weekend" and
// "this weekend" are the same phrase.
func ResolveTimeframe(phrase string, today civil.Date) (civil.Date, bool) {
	if strings.TrimSpace(phrase) == "" {
		return nearestSaturday(today), true
	}

	lower := strings.Join(strings.Fields(strings.ReplaceAll(strings.ToLower(phrase), "_", " ")), " ")

	switch {
	case strings.Contains(lower, "tomorrow"):
		return today.AddDays(1), false
	case strings.Contains(lower, "weekend"), strings.Contains(lower, "saturday"), strings.Contains(lower, "sunday"):
		return nearestSaturday(today), false
	case strings.Contains(lower, "friday"):
		return nearestFriday(today), false
	case strings.Contains(lower, "week"):
		return today.AddDays(7), false
	}

	return nearestSaturday(today), true
}

// nearestSaturday is the next upcoming Saturday; on a Saturday it is a full
// week out, never today.
func nearestSaturday(today civil.Date) civil.Date {
	days := int(time.Saturday) - int(weekday(today))
	if days <= 0 {
		days = 7
	}
	return today.AddDays(days)
}

func nearestFriday(today civil.Date) civil.Date {
	days := int(time.Friday) - int(weekday(today))
	if days == 0 {
		days = 7
	} else if days < 0 {
		days = 6 // Saturday wraps to the Friday six days out
	}
	return today.AddDays(days)
}

func weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}
