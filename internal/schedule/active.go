package schedule

import (
	"fmt"
	"time"

	"github.com/roach88/ritual/internal/model"
)

// ActiveRoutineType returns the routine whose target is nearest to now,
// looking both forward and backward. Ties go to morning.
//
// This is a nearest-neighbour rule: a target ten minutes in the past wins
// over one two hours ahead.
func ActiveRoutineType(morningTarget, nightTarget string, now time.Time) (model.RoutineType, error) {
	morning, err := ParseTargetTime(morningTarget)
	if err != nil {
		return "", fmt.Errorf("morning target: %w", err)
	}
	night, err := ParseTargetTime(nightTarget)
	if err != nil {
		return "", fmt.Errorf("night target: %w", err)
	}

	current := MinutesOfDay(now)
	if CircularDistance(morning.Minutes(), current) <= CircularDistance(night.Minutes(), current) {
		return model.Morning, nil
	}
	return model.Night, nil
}
