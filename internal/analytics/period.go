package analytics

import (
	"fmt"
	"time"
)

// Period is one calendar month. Month is zero-based (0 = January).
type Period struct {
	Month int
	Year  int
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()) - 1, Year: t.Year()}
}

// Previous returns the month before p, wrapping January to December of the
// previous year.
func (p Period) Previous() Period {
	if p.Month == 0 {
		return Period{Month: 11, Year: p.Year - 1}
	}

	return Period{Month: p.Month - 1, Year: p.Year}
}

// Contains reports whether t falls in p. Dates are calendar days stored at
// midnight UTC, so t is read in UTC whatever location it carries.
func (p Period) Contains(t time.Time) bool {
	t = t.UTC()
	return int(t.Month())-1 == p.Month && t.Year() == p.Year
}

func (p Period) Validate() error {
	if p.Month < 0 || p.Month > 11 {
		return fmt.Errorf("%w: month %d out of range 0-11", ErrInvalidInput, p.Month)
	}

	if p.Year < 1 || p.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidInput, p.Year)
	}

	return nil
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month+1).String()[:3], p.Year)
}
