package analytics

import (
	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

type CategoryCount struct {
	Category category.Category
	Count    int
}

type CategoryAmount struct {
	Category category.Category
	Amount   int64
}

// Summary rolls up a transaction set. Every field is nil when the set is
// empty so callers can tell "no data" apart from zero.
type Summary struct {
	TotalSpend  *int64
	TopByCount  *CategoryCount
	TopByAmount *CategoryAmount
	MostRecent  *transaction.Transaction
}

func (s Summary) clone() Summary {
	if s.TotalSpend != nil {
		s.TotalSpend = new(*s.TotalSpend)
	}

	if s.TopByCount != nil {
		s.TopByCount = new(*s.TopByCount)
	}

	if s.TopByAmount != nil {
		s.TopByAmount = new(*s.TopByAmount)
	}

	if s.MostRecent != nil {
		s.MostRecent = new(*s.MostRecent)
	}

	return s
}

// Empty reports whether the summary was built from no transactions.
func (s Summary) Empty() bool {
	return s.TotalSpend == nil
}

// Summarize computes the total absolute spend over all transactions, the
// categories with the most transactions and the largest amount, and the most
// recent transaction. Ties go to whichever was encountered first.
// Uncategorised transactions count toward the total only.
func Summarize(txs []*transaction.Transaction) Summary {
	if len(txs) == 0 {
		return Summary{}
	}

	var (
		total   int64
		order   []category.Category
		counts  = make(map[category.Category]int)
		amounts = make(map[category.Category]int64)
		recent  *transaction.Transaction
	)

	for _, tx := range txs {
		total += tx.AbsAmount()

		if recent == nil || tx.Date.After(recent.Date) {
			recent = tx
		}

		if !tx.Category.IsSet() {
			continue
		}

		if _, seen := counts[tx.Category]; !seen {
			order = append(order, tx.Category)
		}

		counts[tx.Category]++
		amounts[tx.Category] += tx.AbsAmount()
	}

	s := Summary{TotalSpend: &total}

	for _, c := range order {
		if s.TopByCount == nil || counts[c] > s.TopByCount.Count {
			s.TopByCount = &CategoryCount{Category: c, Count: counts[c]}
		}

		if s.TopByAmount == nil || amounts[c] > s.TopByAmount.Amount {
			s.TopByAmount = &CategoryAmount{Category: c, Amount: amounts[c]}
		}
	}

	mostRecent := *recent
	s.MostRecent = &mostRecent

	return s
}
