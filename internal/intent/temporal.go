package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Temporal periods inferred from keywords.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

var (
	// "del 1/3 al 15/3/2025", "desde el 1/3/2025 hasta el 15/3/2025",
	// "desde 2025-03-01 hasta 2025-03-15".
	dateToken       = `(\d{1,2}/\d{1,2}(?:/\d{2,4})?|\d{4}-\d{1,2}-\d{1,2})`
	explicitRangeRe = regexp.MustCompile(
		`(?:del|desde)(?:\s+el)?\s+` + dateToken + `\s+(?:al|hasta)(?:\s+el)?\s+` + dateToken)

	// Keyword fallbacks, checked in priority order; first match wins.
	// The text is normalized, so "año" arrives as "ano".
	periodProbes = []struct {
		period string
		re     *regexp.Regexp
	}{
		{PeriodToday, regexp.MustCompile(`\bhoy\b`)},
		{PeriodWeek, regexp.MustCompile(`\bseman(a|al)\b`)},
		{PeriodMonth, regexp.MustCompile(`\bmes\b|\bmensual\b`)},
		{PeriodYear, regexp.MustCompile(`\bano\b|\banual\b|\bejercicio\b`)},
	}
)

// detectTemporal extracts a temporal scope from the expanded question: an
// explicit date-range parse first, then the keyword fallbacks. Returns nil
// when nothing temporal is present.
func detectTemporal(expanded string, now time.Time) *TemporalScope {
	if m := explicitRangeRe.FindStringSubmatch(expanded); m != nil {
		start, okStart := parseDay(m[1], now)
		end, okEnd := parseDay(m[2], now)
		if okStart && okEnd && !end.Before(start) {
			return &TemporalScope{Start: &start, End: &end}
		}
	}

	for _, p := range periodProbes {
		if p.re.MatchString(expanded) {
			return &TemporalScope{Period: p.period}
		}
	}
	return nil
}

// parseDay parses d/m, d/m/y, or an ISO y-m-d date. A missing year
// defaults to the current year; two-digit years are 2000-based.
func parseDay(s string, now time.Time) (time.Time, bool) {
	if strings.Contains(s, "-") {
		return parseISODay(s, now)
	}
	parts := strings.Split(s, "/")
	if len(parts) < 2 {
		return time.Time{}, false
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, false
	}

	year := now.Year()
	if len(parts) == 3 {
		y, err := strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, false
		}
		if y < 100 {
			y += 2000
		}
		year = y
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), true
}

func parseISODay(s string, now time.Time) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil ||
		month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), true
}

// PeriodRange converts a keyword period into a concrete [start, end] pair:
// today → today/today, week → Sunday-anchored 7-day window, month →
// calendar month, year → calendar year.
func PeriodRange(period string, now time.Time) (time.Time, time.Time, bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case PeriodToday:
		return day, day, true
	case PeriodWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 6), true
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, -1), true
	case PeriodYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, time.Date(now.Year(), 12, 31, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, time.Time{}, false
	}
}
