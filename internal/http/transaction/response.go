package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

// Response is the JSON shape of a transaction.
type Response struct {
	ID          uuid.UUID         `json:"id"`
	Amount      int64             `json:"amount"`
	Type        transaction.Type  `json:"type"`
	Description string            `json:"description"`
	Category    category.Category `json:"category,omitempty"`
	Date        time.Time         `json:"date"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

// ToResponse is shared with the import handler so both return the same shape.
func ToResponse(tx *transaction.Transaction) Response {
	return Response{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Type:        tx.Type(),
		Description: tx.Description,
		Category:    tx.Category,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

func ToResponseList(txs []*transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}
