package analytics

import (
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

var ErrInvalidInput = errors.New("invalid analytics input")

// ValidateSnapshot asserts the record invariants the computations rely on.
// It fails on the first offending entry.
func ValidateSnapshot(txs []*transaction.Transaction, budgets []*budget.Budget) error {
	for i, tx := range txs {
		if tx == nil {
			return fmt.Errorf("%w: transaction %d is nil", ErrInvalidInput, i)
		}

		if err := tx.Validate(); err != nil {
			return fmt.Errorf("%w: transaction %d (%s): %w", ErrInvalidInput, i, tx.ID, err)
		}
	}

	for i, b := range budgets {
		if b == nil {
			return fmt.Errorf("%w: budget %d is nil", ErrInvalidInput, i)
		}

		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: budget %d (%s): %w", ErrInvalidInput, i, b.Category, err)
		}
	}

	return nil
}
