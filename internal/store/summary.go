package store

import (
	"time"

	"github.com/roach88/ritual/internal/model"
)

// Summary aggregates the ledger over a window of days ending today.
type Summary struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	Days           int     `json:"days"`
	DaysTracked    int     `json:"daysTracked"`
	FullDays       int     `json:"fullDays"`
	MorningOnly    int     `json:"morningOnly"`
	NightOnly      int     `json:"nightOnly"`
	Violations     int     `json:"violations"`
	CompletionRate float64 `json:"completionRate"` // FullDays / Days
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
}

// Summarize walks the last days calendar days up to and including now.
// days below 1 is treated as 1.
func Summarize(data model.StreakData, now time.Time, days int) Summary {
	if days < 1 {
		days = 1
	}
	s := Summary{
		To:            TodayKey(now),
		Days:          days,
		CurrentStreak: data.CurrentStreak,
		LongestStreak: data.LongestStreak,
	}

	for i := 0; i < days; i++ {
		key := TodayKey(now.AddDate(0, 0, -i))
		s.From = key
		day, ok := data.CompletionHistory[key]
		if !ok {
			continue
		}
		s.DaysTracked++
		s.Violations += day.Violations
		switch {
		case day.Full():
			s.FullDays++
		case day.Morning:
			s.MorningOnly++
		case day.Night:
			s.NightOnly++
		}
	}

	s.CompletionRate = float64(s.FullDays) / float64(days)
	return s
}
