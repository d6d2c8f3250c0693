package sheet

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDate   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDate = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dashDate  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
)

// NormalizeDate maps the recognized display forms DD/MM/YYYY and
// DD-MM-YYYY to the canonical YYYY-MM-DD. Anything else is returned
// verbatim and treated as an opaque grouping key: equal strings still
// land in the same group even when they are not calendar-valid.
func NormalizeDate(date string) string {
	switch {
	case isoDate.MatchString(date):
		return date
	case slashDate.MatchString(date):
		parts := strings.Split(date, "/")
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	case dashDate.MatchString(date):
		parts := strings.Split(date, "-")
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	}
	return date
}

// IsValidDate reports whether the string is one of the recognized
// date formats. Handlers use it to reject manual edits before they
// reach the engine.
func IsValidDate(date string) bool {
	return isoDate.MatchString(date) || slashDate.MatchString(date) || dashDate.MatchString(date)
}

// ParseHours interprets an hours string as a decimal number, comma or
// dot separator. Empty or non-numeric values count as zero.
func ParseHours(hours string) float64 {
	trimmed := strings.TrimSpace(strings.ReplaceAll(hours, ",", "."))
	if trimmed == "" {
		return 0
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return value
}

// NormalizeHours rewrites a comma decimal to the canonical dot form
// when the value parses as a number. Non-numeric text is kept verbatim
// so the user can still see and fix what they typed.
func NormalizeHours(hours string) string {
	if strings.TrimSpace(hours) == "" {
		return hours
	}
	replaced := strings.ReplaceAll(hours, ",", ".")
	if _, err := strconv.ParseFloat(strings.TrimSpace(replaced), 64); err == nil {
		return replaced
	}
	return hours
}

// FormatHours renders a total with exactly one decimal place.
func FormatHours(total float64) string {
	return strconv.FormatFloat(total, 'f', 1, 64)
}
