package spendwise

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	enc "github.com/MrJamesThe3rd/spendwise/internal/encoding"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

var ErrMissingHeader = errors.New("missing header: expected date, description and amount columns")

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads rows under the header. Columns may come in any order and the
// category column is optional. Rows with a zero amount are skipped.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = Comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	headerIdx := firstNonBlank(rows)
	if headerIdx < 0 {
		return nil, ErrMissingHeader
	}

	cols, err := columns(rows[headerIdx])
	if err != nil {
		return nil, err
	}

	var params []transaction.CreateParams

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2

		if blank(row) {
			continue
		}

		p, skip, err := cols.parse(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if skip {
			continue
		}

		params = append(params, p)
	}

	return params, nil
}

type columnSet struct {
	date, description, amount, category int
}

func columns(header []string) (columnSet, error) {
	cols := columnSet{date: -1, description: -1, amount: -1, category: -1}

	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case ColDate:
			cols.date = i
		case ColDescription:
			cols.description = i
		case ColAmount:
			cols.amount = i
		case ColCategory:
			cols.category = i
		}
	}

	if cols.date < 0 || cols.description < 0 || cols.amount < 0 {
		return cols, ErrMissingHeader
	}

	return cols, nil
}

func (c columnSet) parse(row []string) (transaction.CreateParams, bool, error) {
	date, err := time.Parse(DateLayout, cell(row, c.date))
	if err != nil {
		return transaction.CreateParams{}, false, fmt.Errorf("invalid date %q", cell(row, c.date))
	}

	amount, err := ParseAmount(cell(row, c.amount))
	if err != nil {
		return transaction.CreateParams{}, false, fmt.Errorf("invalid amount %q", cell(row, c.amount))
	}

	if amount == 0 {
		return transaction.CreateParams{}, true, nil
	}

	description := cell(row, c.description)
	if description == "" {
		return transaction.CreateParams{}, false, errors.New("missing description")
	}

	cat := category.Unset
	if raw := cell(row, c.category); raw != "" {
		cat, err = category.Parse(raw)
		if err != nil {
			return transaction.CreateParams{}, false, err
		}
	}

	return transaction.CreateParams{
		Amount:      amount,
		Description: description,
		Category:    cat,
		Date:        date,
	}, false, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

func firstNonBlank(rows [][]string) int {
	for i, row := range rows {
		if !blank(row) {
			return i
		}
	}

	return -1
}
