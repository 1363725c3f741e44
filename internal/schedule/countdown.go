package schedule

import (
	"fmt"
	"time"
)

// NextOccurrence returns the next instant at which target falls in now's
// location. A target equal to now counts as passed and rolls to the next
// calendar day.
func NextOccurrence(target Clock, now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), target.Hour, target.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, target.Hour, target.Minute, 0, 0, now.Location())
	}
	return next
}

// Countdown returns the time left until the next occurrence of targetText.
// The result is always positive.
func Countdown(targetText string, now time.Time) (time.Duration, error) {
	target, err := ParseTargetTime(targetText)
	if err != nil {
		return 0, err
	}
	return NextOccurrence(target, now).Sub(now), nil
}

// CountdownText formats the countdown as "Mm" under an hour and "Hh Mm"
// otherwise, flooring to whole minutes.
func CountdownText(targetText string, now time.Time) (string, error) {
	d, err := Countdown(targetText, now)
	if err != nil {
		return "", err
	}
	return FormatCountdown(d), nil
}

// FormatCountdown renders d in whole minutes. Negative durations render as
// "0m".
func FormatCountdown(d time.Duration) string {
	mins := int(d / time.Minute)
	if mins < 0 {
		mins = 0
	}
	h, m := mins/60, mins%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
