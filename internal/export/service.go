package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/MrJamesThe3rd/spendwise/internal/importer/spendwise"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

// Service writes transactions in the layout the spendwise import profile
// reads back.
type Service struct {
	transactions *transaction.Service
}

func NewService(txService *transaction.Service) *Service {
	return &Service{transactions: txService}
}

// Export writes the transactions matching filter to w and returns how many
// rows were written.
func (s *Service) Export(ctx context.Context, filter transaction.ListFilter, w io.Writer) (int, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = spendwise.Comma

	if err := cw.Write(spendwise.Header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		if err := cw.Write(record(tx)); err != nil {
			return 0, fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(txs), nil
}

func record(tx *transaction.Transaction) []string {
	return []string{
		tx.Date.Format(spendwise.DateLayout),
		tx.Description,
		spendwise.FormatAmount(tx.Amount),
		tx.Category.String(),
	}
}

// Filename names an export produced at t, e.g. spendwise_20251015.csv.
func Filename(t time.Time) string {
	return fmt.Sprintf("spendwise_%s.csv", t.Format("20060102"))
}
