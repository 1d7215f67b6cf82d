package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDate validates a yyyy-mm-dd formatted string and returns it
// normalized. Bookings store dates as plain strings so the store can filter
// and order on them lexicographically.
func ParseDate(dateStr string) (string, error) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return "", fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("invalid year: %v", err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid month: %v", err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return "", fmt.Errorf("month must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return "", fmt.Errorf("day must be between 1 and 31")
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// MinutesOfDay converts an HH:MM 24-hour time string into minutes since
// midnight.
func MinutesOfDay(timeStr string) (int32, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format, expected HH:MM")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour: %v", err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute: %v", err)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour must be between 0 and 23")
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute must be between 0 and 59")
	}
	return int32(hour*60 + minute), nil
}

// ExpectedEndTime formats start + duration as an HH:MM string. A job
// crossing midnight wraps around to the next day's clock time; the date
// component is not carried.
func ExpectedEndTime(startTime string, durationMinutes int32) (string, error) {
	start, err := MinutesOfDay(startTime)
	if err != nil {
		return "", err
	}
	end := (start + durationMinutes) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", end/60, end%60), nil
}

// Overlaps tests two half-open minute intervals [aStart, aEnd) and
// [bStart, bEnd). Intervals that merely touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int32) bool {
	return aStart < bEnd && aEnd > bStart
}

// LanguageMatches reports whether an interpreter's language list covers the
// wanted language, by case-insensitive substring match. "Arabic (Levantine)"
// matches a request for "arabic".
func LanguageMatches(languages []string, wanted string) bool {
	w := strings.ToLower(strings.TrimSpace(wanted))
	if w == "" {
		return false
	}
	for _, l := range languages {
		if strings.Contains(strings.ToLower(l), w) {
			return true
		}
	}
	return false
}
