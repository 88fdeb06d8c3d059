package view

import (
	"time"
)

// DateRange is a preset window for the transaction list.
type DateRange int

const (
	RangeAll       DateRange = 0
	RangeThisMonth DateRange = 1
	RangeLastMonth DateRange = 2
	RangeThisYear  DateRange = 3

	rangeCount = 4
)

func (r DateRange) String() string {
	switch r {
	case RangeAll:
		return "All Time"
	case RangeThisMonth:
		return "This Month"
	case RangeLastMonth:
		return "Last Month"
	case RangeThisYear:
		return "This Year"
	}

	return "Unknown"
}

func (r DateRange) Next() DateRange {
	return (r + 1) % rangeCount
}

// Bounds returns the inclusive window of r relative to now. Both are nil for
// RangeAll.
func (r DateRange) Bounds(now time.Time) (*time.Time, *time.Time) {
	var start time.Time

	switch r {
	case RangeThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &start, new(start.AddDate(0, 1, 0).Add(-time.Nanosecond))
	case RangeLastMonth:
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		return &start, new(start.AddDate(0, 1, 0).Add(-time.Nanosecond))
	case RangeThisYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return &start, new(start.AddDate(1, 0, 0).Add(-time.Nanosecond))
	}

	return nil, nil
}
