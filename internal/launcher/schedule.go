package launcher

import (
	"fmt"
	"time"

	"adlaunch/internal/models"
)

// Schedule is the validated flight window with its per-day spend.
type Schedule struct {
	Start            time.Time
	End              time.Time
	Days             int
	DailyBudgetCents int64
}

// ComputeSchedule splits the total budget across the flight. Days count
// inclusively, so a campaign starting and ending on the same date runs one
// day. The per-day amount must reach minDailyCents and the window must span
// at least 24 hours; the budget floor is checked first so a short, underfunded
// flight reports the budget problem.
func ComputeSchedule(start, end time.Time, budgetCents, minDailyCents int64) (Schedule, error) {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	daily := budgetCents / int64(days)
	if daily < minDailyCents {
		return Schedule{}, &models.ValidationError{
			Field:  "budget",
			Reason: fmt.Sprintf("a daily budget of %d cents over %d day(s) is below the %d cent minimum", daily, days, minDailyCents),
		}
	}
	if end.Sub(start) < 24*time.Hour {
		return Schedule{}, &models.ValidationError{
			Field:  "final_date",
			Reason: "the campaign must run for at least 24 hours",
		}
	}
	return Schedule{Start: start, End: end, Days: days, DailyBudgetCents: daily}, nil
}
