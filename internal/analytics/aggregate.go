package analytics

import (
	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

// Totals maps a category to its accumulated absolute amount in cents.
// Categories without transactions are absent, not zero.
type Totals map[category.Category]int64

// Sum adds up every category total.
func (t Totals) Sum() int64 {
	var sum int64
	for _, v := range t {
		sum += v
	}

	return sum
}

// Ordered returns the present categories in canonical enumeration order.
func (t Totals) Ordered() []category.Category {
	out := make([]category.Category, 0, len(t))

	for _, c := range category.All {
		if _, ok := t[c]; ok {
			out = append(out, c)
		}
	}

	return out
}

// CategoryTotals sums absolute transaction amounts per category. A nil period
// includes every transaction; otherwise only those dated inside it count.
// Transactions without a category are skipped.
func CategoryTotals(txs []*transaction.Transaction, period *Period) Totals {
	totals := make(Totals)

	for _, tx := range txs {
		if !tx.Category.IsSet() {
			continue
		}

		if period != nil && !period.Contains(tx.Date) {
			continue
		}

		totals[tx.Category] += tx.AbsAmount()
	}

	return totals
}
