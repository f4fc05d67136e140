package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"apollo/pkg/tz"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxCapacity          = 40

	// NoneAnswer marks an optional field as absent. Matched case-insensitively.
	NoneAnswer = "NONE"
)

// StartTimeLayouts are tried in order when parsing a start time.
var StartTimeLayouts = []string{
	"2006-01-02 3:04 PM",
	"2006-01-02 15:04",
}

func isNone(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), NoneAnswer)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseTitle accepts any title up to MaxTitleLength characters.
func ParseTitle(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxTitleLength {
		return "", ErrInvalidTitle
	}
	return s, nil
}

// ParseDescription returns "" for NONE.
func ParseDescription(s string) (string, error) {
	if isNone(s) {
		return "", nil
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return "", ErrInvalidDescription
	}
	return s, nil
}

// ParseCapacity returns 0 for NONE, otherwise a value in [1, MaxCapacity].
func ParseCapacity(s string) (int, error) {
	if isNone(s) {
		return 0, nil
	}
	s = strings.TrimSpace(s)
	if !isDigits(s) {
		return 0, ErrInvalidCapacity
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxCapacity {
		return 0, ErrInvalidCapacity
	}
	return n, nil
}

// ParseTimeZoneChoice maps a 1-based menu index to one of zones.
func ParseTimeZoneChoice(s string, zones []string) (string, error) {
	s = strings.TrimSpace(s)
	if !isDigits(s) {
		return "", ErrInvalidTimeZone
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(zones) {
		return "", ErrInvalidTimeZone
	}
	return zones[n-1], nil
}

// ParseStartTime reads s as a wall clock time in zone and returns it in UTC.
// The result must not be before now.
func ParseStartTime(s, zone string, now time.Time) (time.Time, error) {
	loc, err := tz.Location(zone)
	if err != nil {
		return time.Time{}, err
	}
	s = strings.ToUpper(strings.Join(strings.Fields(s), " "))
	for _, layout := range StartTimeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		utc := t.UTC()
		if utc.Before(now) {
			return time.Time{}, ErrStartTimeInPast
		}
		return utc, nil
	}
	return time.Time{}, ErrInvalidStartTime
}
