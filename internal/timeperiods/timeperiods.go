// Package timeperiods models sets of inclusive date ranges used as reusable
// time-window predicates, e.g. for excluding holidays from commit queries.
package timeperiods

import (
	"fmt"
	"strings"
	"time"
)

const (
	datePattern    = "2006-01-02"
	rangeSeparator = "--"
)

// DateRange is an inclusive [Start, End] interval of calendar days. A single
// date is a range whose start equals its end.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range, enforcing start <= end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncate(start)
	end = truncate(end)
	if start.After(end) {
		return DateRange{}, fmt.Errorf("start date [%s] must be on or before end date [%s]",
			start.Format(datePattern), end.Format(datePattern))
	}
	return DateRange{Start: start, End: end}, nil
}

// SingleDate builds the degenerate range covering one day.
func SingleDate(date time.Time) DateRange {
	d := truncate(date)
	return DateRange{Start: d, End: d}
}

// ParseDateRange parses either a single "yyyy-mm-dd" date or a
// "start--end" range.
func ParseDateRange(token string) (DateRange, error) {
	token = strings.TrimSpace(token)

	dates := strings.SplitN(token, rangeSeparator, 2)

	start, err := time.ParseInLocation(datePattern, strings.TrimSpace(dates[0]), time.Local)
	if err != nil {
		return DateRange{}, fmt.Errorf("date(s) %q are not valid", token)
	}

	if len(dates) == 1 {
		return SingleDate(start), nil
	}

	end, err := time.ParseInLocation(datePattern, strings.TrimSpace(dates[1]), time.Local)
	if err != nil {
		return DateRange{}, fmt.Errorf("date(s) %q are not valid", token)
	}

	return NewDateRange(start, end)
}

// Contains reports whether the date falls inside the range, both ends
// inclusive.
func (r DateRange) Contains(date time.Time) bool {
	d := truncate(date)
	return !(d.Before(r.Start) || d.After(r.End))
}

func (r DateRange) String() string {
	if r.Start.Equal(r.End) {
		return r.Start.Format(datePattern)
	}
	return r.Start.Format(datePattern) + rangeSeparator + r.End.Format(datePattern)
}

// TimePeriods is a set of date ranges answering "is this date during any
// configured range".
type TimePeriods struct {
	ranges []DateRange
}

// Of collects the given ranges into a TimePeriods.
func Of(ranges ...DateRange) *TimePeriods {
	return &TimePeriods{ranges: append([]DateRange(nil), ranges...)}
}

// OfSingleDates builds one single-day range per date.
func OfSingleDates(dates ...time.Time) *TimePeriods {
	periods := &TimePeriods{}
	for _, date := range dates {
		periods.ranges = append(periods.ranges, SingleDate(date))
	}
	return periods
}

// Parse parses a comma-separated list of single dates and start--end ranges,
// e.g. "2024-01-01,2024-03-01--2024-03-31". Empty tokens are skipped; a
// malformed token fails with an error naming it.
func Parse(dates string) (*TimePeriods, error) {
	periods := &TimePeriods{}
	for _, token := range strings.Split(dates, ",") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		r, err := ParseDateRange(token)
		if err != nil {
			return nil, err
		}
		periods.ranges = append(periods.ranges, r)
	}
	return periods, nil
}

// IsDuring reports whether any configured range contains the date.
func (p *TimePeriods) IsDuring(date time.Time) bool {
	for _, r := range p.ranges {
		if r.Contains(date) {
			return true
		}
	}
	return false
}

// AsPredicate exposes IsDuring as a reusable predicate.
func (p *TimePeriods) AsPredicate() func(time.Time) bool {
	return p.IsDuring
}

// Ranges returns the configured date ranges.
func (p *TimePeriods) Ranges() []DateRange {
	return append([]DateRange(nil), p.ranges...)
}

func (p *TimePeriods) Size() int { return len(p.ranges) }

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
