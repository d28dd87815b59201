package decision

import (
	"fmt"

	"fourthandshort/domain"
)

// Validate checks every bounded field of a situation. Out-of-range values
// are rejected, never clamped.
func Validate(q domain.SituationQuery) error {
	checks := []struct {
		field string
		value int
		lo    int
		hi    int
	}{
		{"down", q.Down, 1, 4},
		{"ydstogo", q.YardsToGo, 1, 100},
		{"yardline_100", q.YardlineFromGoal, 1, 99},
		{"qtr", q.Quarter, 1, 5},
		{"offense_timeouts", q.OffenseTimeouts, 0, 3},
		{"defense_timeouts", q.DefenseTimeouts, 0, 3},
	}
	for _, c := range checks {
		if c.value < c.lo || c.value > c.hi {
			return &ValidationError{
				Field:   c.field,
				Message: fmt.Sprintf("must be between %d and %d, got %d", c.lo, c.hi, c.value),
			}
		}
	}

	if q.SecondsRemaining < 0 {
		return &ValidationError{
			Field:   "time_remaining",
			Message: fmt.Sprintf("must be >= 0, got %d", q.SecondsRemaining),
		}
	}

	if q.Possession != "" && q.Possession != "offense" && q.Possession != "defense" {
		return &ValidationError{
			Field:   "possession",
			Message: fmt.Sprintf("must be offense or defense, got %q", q.Possession),
		}
	}

	return nil
}
