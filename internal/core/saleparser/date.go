package saleparser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDateConfidence = 0.5
	fourTwentyConfidence  = 0.95
	// two-digit years below the pivot are 20xx, the rest 19xx
	twoDigitYearPivot = 50
)

const monthExpr = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// dateParts is what a date rule extracts before it is anchored to "now".
// A zero year means the current year.
type dateParts struct {
	year  int
	month time.Month
	day   int
}

var dateRules = []rule[dateParts]{
	{
		name:       "slash",
		pattern:    regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?\b(\s*` + ounceUnitExpr + `)?`),
		confidence: 0.8,
		build: func(m []string) (dateParts, bool) {
			// "1/2 oz" is a weight
			if m[4] != "" {
				return dateParts{}, false
			}
			month, _ := strconv.Atoi(m[1])
			day, _ := strconv.Atoi(m[2])
			return dateParts{year: expandYear(m[3]), month: time.Month(month), day: day}, true
		},
	},
	{
		name:       "month_day",
		pattern:    regexp.MustCompile(`\b` + monthExpr + `\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4})\b)?`),
		confidence: 0.9,
		build: func(m []string) (dateParts, bool) {
			day, _ := strconv.Atoi(m[2])
			return dateParts{year: expandYear(m[3]), month: monthFromName(m[1]), day: day}, true
		},
	},
	{
		name:       "day_month",
		pattern:    regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?` + monthExpr + `\b(?:,?\s+(\d{4})\b)?`),
		confidence: 0.85,
		build: func(m []string) (dateParts, bool) {
			day, _ := strconv.Atoi(m[1])
			return dateParts{year: expandYear(m[3]), month: monthFromName(m[2]), day: day}, true
		},
	},
}

// relativeDates map a relative phrase to a day offset and confidence.
// Single-day phrases are trusted more than week-granularity ones.
var relativeDates = map[string]struct {
	offsetDays int
	confidence float64
}{
	"yesterday":  {-1, 0.95},
	"last night": {-1, 0.95},
	"today":      {0, 0.95},
	"tonight":    {0, 0.95},
	"tomorrow":   {1, 0.95},
	"last week":  {-7, 0.7},
	"this week":  {0, 0.6},
	"next week":  {7, 0.6},
}

var relativeDatePattern = regexp.MustCompile(`\b(yesterday|last night|today|tonight|tomorrow|last week|this week|next week)\b`)

// extractDate resolves a calendar date from normalized text, anchored at now.
func extractDate(text string, now time.Time) (time.Time, float64) {
	date, confidence := now, defaultDateConfidence
	valid := true

	if parts, c, _, ok := firstMatch(dateRules, text); ok {
		date, valid = parts.resolve(now)
		confidence = c
	} else if m := relativeDatePattern.FindStringSubmatch(text); m != nil {
		rel := relativeDates[m[1]]
		date, confidence = midnight(now).AddDate(0, 0, rel.offsetDays), rel.confidence
	}

	if strings.Contains(text, "4/20") || strings.Contains(text, "4-20") {
		date = time.Date(now.Year(), time.April, 20, 0, 0, 0, 0, now.Location())
		confidence, valid = fourTwentyConfidence, true
	}

	if !valid {
		return now, defaultDateConfidence
	}
	return date, confidence
}

// resolve builds a concrete midnight date. It reports false when the parts
// do not form a real calendar day (month 13, February 30, ...).
func (p dateParts) resolve(now time.Time) (time.Time, bool) {
	year := p.year
	if year == 0 {
		year = now.Year()
	}
	if p.month < time.January || p.month > time.December || p.day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, p.month, p.day, 0, 0, 0, 0, now.Location())
	// time.Date normalizes overflow; a changed month means the day did not exist
	if t.Month() != p.month || t.Day() != p.day {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func expandYear(s string) int {
	if s == "" {
		return 0
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	if len(s) == 2 {
		if y < twoDigitYearPivot {
			return 2000 + y
		}
		return 1900 + y
	}
	return y
}

func monthFromName(name string) time.Month {
	if len(name) < 3 {
		return 0
	}
	return monthsByPrefix[name[:3]]
}
