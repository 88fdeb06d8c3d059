// Package spendwise reads the application's own CSV layout, the one written
// by the exporter: a header row followed by date;description;amount;category.
package spendwise

import (
	"github.com/shopspring/decimal"
)

const (
	Comma      = ';'
	DateLayout = "2006-01-02"

	ColDate        = "date"
	ColDescription = "description"
	ColAmount      = "amount"
	ColCategory    = "category"
)

// Header is the column order written on export.
var Header = []string{ColDate, ColDescription, ColAmount, ColCategory}

// FormatAmount renders signed cents with a dot and two decimals: -1250 is
// "-12.50".
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ParseAmount reads a dot-decimal amount into signed cents, rounding half
// away from zero past the second decimal.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	return d.Shift(2).Round(0).IntPart(), nil
}
