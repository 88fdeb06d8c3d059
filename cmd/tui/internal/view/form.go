package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/importer/spendwise"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

var errPositiveAmount = errors.New("amount must be greater than zero")

func categoryOptions() []huh.Option[category.Category] {
	opts := make([]huh.Option[category.Category], 0, len(category.All))
	for _, c := range category.All {
		opts = append(opts, huh.NewOption(c.String(), c))
	}

	return opts
}

// parseMagnitude reads a positive amount typed by the user into cents.
func parseMagnitude(s string) (int64, error) {
	cents, err := spendwise.ParseAmount(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	if cents <= 0 {
		return 0, errPositiveAmount
	}

	return cents, nil
}

func validateMagnitude(s string) error {
	_, err := parseMagnitude(s)
	return err
}

func validateDate(s string) error {
	if _, err := time.Parse(spendwise.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

// transactionParams turns the add form's fields into create params. The
// amount is entered unsigned; the type decides its sign.
func transactionParams(desc, amount string, typ transaction.Type, c category.Category, date string) (transaction.CreateParams, error) {
	cents, err := parseMagnitude(amount)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	if typ == transaction.TypeExpense {
		cents = -cents
	}

	d, err := time.Parse(spendwise.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("invalid date %q", date)
	}

	return transaction.CreateParams{
		Amount:      cents,
		Description: strings.TrimSpace(desc),
		Category:    c,
		Date:        d,
	}, nil
}
