package reports

import (
	"time"

	"github.com/projscope/projscope/internal/timeperiods"
	"github.com/projscope/projscope/internal/vcs"
)

// Schedule describes the working calendar used to classify commit times.
// Hours are local, and the working day is the half-open range
// [DayStartHour, DayEndHour).
type Schedule struct {
	DayStartHour int
	DayEndHour   int
	Holidays     *timeperiods.TimePeriods
}

// DefaultSchedule is a nine-to-five week with no holidays.
func DefaultSchedule() Schedule {
	return Schedule{DayStartHour: 9, DayEndHour: 17}
}

// IsWorkTime reports whether t falls on a working weekday within working
// hours and outside any holiday period.
func (s Schedule) IsWorkTime(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if s.Holidays != nil && s.Holidays.IsDuring(t) {
		return false
	}
	return t.Hour() >= s.DayStartHour && t.Hour() < s.DayEndHour
}

// DuringWorkHours is a predicate matching commits made during working hours.
func (s Schedule) DuringWorkHours() vcs.Predicate {
	return func(record *vcs.CommitRecord) bool {
		return record != nil && s.IsWorkTime(record.When())
	}
}

// AfterHours is a predicate matching commits made outside working hours,
// including weekends and holidays.
func (s Schedule) AfterHours() vcs.Predicate {
	return func(record *vcs.CommitRecord) bool {
		return record != nil && !s.IsWorkTime(record.When())
	}
}
