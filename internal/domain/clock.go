package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock parses an "HH:MM" wall-clock time into minutes after midnight.
// A trailing ":SS" is accepted and ignored.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes after midnight as "HH:MM", wrapping into [0, 24h).
func FormatClock(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes shifts an "HH:MM" time by delta minutes, wrapping across
// midnight in either direction. Unparseable input is returned unchanged.
func AddMinutes(hhmm string, delta int) string {
	m, err := ParseClock(hhmm)
	if err != nil {
		return hhmm
	}
	return FormatClock(m + delta)
}

// MinutesBetween is the forward distance from start to end, wrapping past
// midnight: MinutesBetween("23:30", "00:15") == 45.
func MinutesBetween(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	d := (e - s) % minutesPerDay
	if d < 0 {
		d += minutesPerDay
	}
	return d, nil
}
