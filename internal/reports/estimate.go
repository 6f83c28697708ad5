package reports

import (
	"time"

	"github.com/projscope/projscope/internal/vcs"
)

// Rates configures how development effort is priced.
type Rates struct {
	HourlyRate   float64
	HoursPerDay  float64
	DaysPerMonth float64
}

// DevelopmentEstimate is a rough effort estimate derived from the commit
// history: the calendar span between the first and last commit, the number of
// distinct days with at least one commit, and the cost those active days
// represent at the configured rates.
type DevelopmentEstimate struct {
	FirstCommit   time.Time
	LastCommit    time.Time
	TotalCommits  int
	ActiveDays    int
	CalendarDays  int
	EstimatedCost float64
}

// Months expresses the active development time in working months.
func (e DevelopmentEstimate) Months(rates Rates) float64 {
	if rates.DaysPerMonth <= 0 {
		return 0
	}
	return float64(e.ActiveDays) / rates.DaysPerMonth
}

// Estimate computes the development estimate for a history. An empty history
// yields the zero estimate.
func Estimate(history *vcs.CommitHistory, rates Rates) DevelopmentEstimate {
	if history == nil || history.IsEmpty() {
		return DevelopmentEstimate{}
	}

	first := history.First().When()
	last := history.Last().When()

	activeDays := len(history.GroupByDay())
	calendarDays := int(last.Sub(first).Hours()/24) + 1

	return DevelopmentEstimate{
		FirstCommit:   first,
		LastCommit:    last,
		TotalCommits:  history.Size(),
		ActiveDays:    activeDays,
		CalendarDays:  calendarDays,
		EstimatedCost: float64(activeDays) * rates.HoursPerDay * rates.HourlyRate,
	}
}
