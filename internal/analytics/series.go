package analytics

import (
	"time"

	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

type MonthTotal struct {
	Month string // Jan..Dec
	Total int64
}

// Series holds one bucket per calendar month, January first.
type Series [12]MonthTotal

// MonthlySeries buckets absolute amounts by calendar month. Years are
// collapsed: January 2024 and January 2025 share the Jan bucket. Dates are
// read in UTC.
func MonthlySeries(txs []*transaction.Transaction) Series {
	var s Series
	for i := range s {
		s[i].Month = time.Month(i + 1).String()[:3]
	}

	for _, tx := range txs {
		s[tx.Date.UTC().Month()-1].Total += tx.AbsAmount()
	}

	return s
}
