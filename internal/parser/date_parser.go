package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeRegex = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)\s+ago$`)

// ParseDate parses the date filters accepted by `tempo log`.
// Supported formats:
// - yyyy-mm-dd (e.g., "2026-08-20")
// - "today", "yesterday"
// - "X days ago", "X weeks ago"
// The result is midnight local time of the named day.
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if matches := relativeRegex.FindStringSubmatch(input); matches != nil {
		amount, err := strconv.Atoi(matches[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid number %q", matches[1])
		}
		switch matches[2] {
		case "day", "days":
			return today.AddDate(0, 0, -amount), nil
		default:
			return today.AddDate(0, 0, -amount*7), nil
		}
	}

	if t, err := time.ParseInLocation("2006-01-02", input, now.Location()); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q. Use: yyyy-mm-dd, today, yesterday, or X days ago", input)
}

// EndOfDay converts a midnight date into the last instant of that day,
// for inclusive --to filters. Computed via the next calendar day so
// 23- and 25-hour DST days resolve correctly.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
}
