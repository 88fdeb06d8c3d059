package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/validation"
)

var (
	ErrNotFound = errors.New("transaction not found")
	ErrInvalid  = errors.New("invalid transaction")
)

// MaxDescriptionLen bounds Description, in characters.
const MaxDescriptionLen = 100

// Type is derived from the sign of the amount.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction represents a single income or expense record.
type Transaction struct {
	ID          uuid.UUID
	Amount      int64             `validate:"ne=0"` // Signed cents; negative is an expense
	Description string            `validate:"required,max=100"`
	Category    category.Category `validate:"omitempty,category"`
	Date        time.Time         `validate:"required"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

func (t *Transaction) Type() Type {
	if t.Amount < 0 {
		return TypeExpense
	}

	return TypeIncome
}

// AbsAmount returns the magnitude of the amount in cents.
func (t *Transaction) AbsAmount() int64 {
	if t.Amount < 0 {
		return -t.Amount
	}

	return t.Amount
}

// Validate checks the record invariants: non-zero amount, a description of at
// most 100 characters, a known category when one is set, and a date.
func (t *Transaction) Validate() error {
	if err := validation.Validator().Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}
