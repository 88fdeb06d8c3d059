package budget

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/validation"
)

var (
	ErrNotFound = errors.New("budget not found")
	ErrInvalid  = errors.New("invalid budget")
)

const (
	MinYear = 2020
	MaxYear = 2100
)

// Budget is the spending ceiling for one category in one calendar month.
// At most one budget exists per (Category, Month, Year).
type Budget struct {
	ID        uuid.UUID
	Category  category.Category `validate:"required,category"`
	Amount    int64             `validate:"gte=0"`       // Cents
	Month     int               `validate:"gte=0,lte=11"` // 0 = January
	Year      int               `validate:"gte=2020,lte=2100"`
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (b *Budget) Validate() error {
	if err := validation.Validator().Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}
