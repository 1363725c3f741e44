package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the length of the circular clock.
const MinutesPerDay = 1440

// ErrInvalidTimeFormat is matched by every TimeError via errors.Is.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// TimeError reports a target time that is not "H:MM AM|PM".
type TimeError struct {
	Text   string
	Reason string
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("INVALID_TIME_FORMAT: %q: %s", e.Text, e.Reason)
}

func (e *TimeError) Is(target error) bool {
	return target == ErrInvalidTimeFormat
}

// Clock is a time of day in 24-hour form.
type Clock struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String formats the clock as a canonical target time.
func (c Clock) String() string {
	return FormatTargetTime(c.Hour, c.Minute)
}

// ParseTargetTime parses "H:MM AM" or "H:MM PM". 12 AM is hour 0 and
// 12 PM is hour 12.
func ParseTargetTime(text string) (Clock, error) {
	fields := strings.Split(text, " ")
	if len(fields) != 2 {
		return Clock{}, &TimeError{Text: text, Reason: "want \"H:MM AM|PM\""}
	}

	hm := strings.Split(fields[0], ":")
	if len(hm) != 2 || len(hm[1]) != 2 || len(hm[0]) == 0 || len(hm[0]) > 2 {
		return Clock{}, &TimeError{Text: text, Reason: "want H:MM"}
	}
	h, err := strconv.Atoi(hm[0])
	if err != nil || h < 1 || h > 12 {
		return Clock{}, &TimeError{Text: text, Reason: "hour must be 1-12"}
	}
	m, err := strconv.Atoi(hm[1])
	if err != nil || m < 0 || m > 59 {
		return Clock{}, &TimeError{Text: text, Reason: "minute must be 00-59"}
	}

	switch fields[1] {
	case "AM":
		if h == 12 {
			h = 0
		}
	case "PM":
		if h != 12 {
			h += 12
		}
	default:
		return Clock{}, &TimeError{Text: text, Reason: "period must be AM or PM"}
	}

	return Clock{Hour: h, Minute: m}, nil
}

// ValidateTargetTime returns a *TimeError when text cannot be parsed.
func ValidateTargetTime(text string) error {
	_, err := ParseTargetTime(text)
	return err
}

// FormatTargetTime renders a 24-hour time as "H:MM AM|PM".
func FormatTargetTime(hour24, minute int) string {
	period := "AM"
	if hour24 >= 12 {
		period = "PM"
	}
	h := hour24 % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, period)
}

// MinutesOfDay returns minutes since midnight of t in t's location.
// Seconds are ignored.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// CircularDistance is the direction-agnostic distance between two minute
// positions on the daily clock. It is symmetric.
func CircularDistance(a, b int) int {
	forward := ((a-b)%MinutesPerDay + MinutesPerDay) % MinutesPerDay
	backward := ((b-a)%MinutesPerDay + MinutesPerDay) % MinutesPerDay
	return min(forward, backward)
}
