package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datePattern pairs a regex with a parser for its capture groups.
// Order matters: the first pattern with a match wins, and only its first
// match is considered. A match whose components do not form a real calendar
// date yields no date at all; later patterns are not consulted.
type datePattern struct {
	re    *regexp.Regexp
	parse func(groups []string) (time.Time, bool)
}

var datePatterns = []datePattern{
	// M/D/Y with a 2- or 4-digit year
	{
		re:    regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})\b`),
		parse: parseMDY,
	},
	// M/D/YY
	{
		re:    regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})[/\-](\d{2})\b`),
		parse: parseMDY,
	},
	// "Mon D, YYYY"
	{
		re:    regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* (\d{1,2}),? (\d{4})\b`),
		parse: parseMonDY,
	},
	// "D Mon YYYY"
	{
		re:    regexp.MustCompile(`(?i)\b(\d{1,2}) (Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* (\d{4})\b`),
		parse: parseDMonY,
	},
	// YYYY/M/D
	{
		re:    regexp.MustCompile(`\b(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})\b`),
		parse: parseYMD,
	},
}

var monthKeys = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Date scans recognized text for a date, trying a fixed list of patterns in
// order. Returns ok=false when nothing matches or the first match is invalid.
func Date(text string) (time.Time, bool) {
	for _, p := range datePatterns {
		groups := p.re.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		return p.parse(groups[1:])
	}
	return time.Time{}, false
}

func parseMDY(groups []string) (time.Time, bool) {
	month, _ := strconv.Atoi(groups[0])
	day, _ := strconv.Atoi(groups[1])
	year, _ := strconv.Atoi(groups[2])
	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}
	return calendarDate(year, month, day)
}

func parseMonDY(groups []string) (time.Time, bool) {
	month, ok := monthFromName(groups[0])
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(groups[1])
	year, _ := strconv.Atoi(groups[2])
	return calendarDate(year, int(month), day)
}

func parseDMonY(groups []string) (time.Time, bool) {
	day, _ := strconv.Atoi(groups[0])
	month, ok := monthFromName(groups[1])
	if !ok {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(groups[2])
	return calendarDate(year, int(month), day)
}

func parseYMD(groups []string) (time.Time, bool) {
	year, _ := strconv.Atoi(groups[0])
	month, _ := strconv.Atoi(groups[1])
	day, _ := strconv.Atoi(groups[2])
	return calendarDate(year, month, day)
}

func monthFromName(name string) (time.Month, bool) {
	key := strings.ToLower(name)
	if len(key) > 3 {
		key = key[:3]
	}
	m, ok := monthKeys[key]
	return m, ok
}

// calendarDate builds a date and rejects components that time.Date would
// normalize away (month 13, day 40, ...).
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
