// Package cgd reads the CSV exports of Caixa Geral de Depósitos: the current
// account (conta), the statement (extrato) and the card (cartão) listings.
package cgd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/spendwise/internal/encoding"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

const dateLayout = "02-01-2006"

var ErrUnknownLayout = errors.New("no matching CGD format found: expected columns for conta, extrato, or cartão")

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse finds the header row among the preamble the bank writes, then reads
// every row below it that starts with a date. Expenses come out negative.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	l, cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, ErrUnknownLayout
	}

	var params []transaction.CreateParams

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2

		date, err := time.Parse(dateLayout, cell(row, cols[l.date]))
		if err != nil {
			// preamble, page markers and totals
			continue
		}

		desc := cell(row, cols[l.desc])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount := l.amountOf(row, cols)
		if amount == 0 {
			continue
		}

		params = append(params, transaction.CreateParams{
			Amount:      amount,
			Description: desc,
			Date:        date,
		})
	}

	return params, nil
}

func findHeader(rows [][]string) (layout, map[string]int, int, bool) {
	for rowIdx, row := range rows {
		cols := make(map[string]int, len(row))

		for i, c := range row {
			if name := strings.TrimSpace(c); name != "" {
				cols[name] = i
			}
		}

		for _, l := range layouts {
			if l.matches(cols) {
				return l, cols, rowIdx, true
			}
		}
	}

	return layout{}, nil, 0, false
}

func (l layout) matches(cols map[string]int) bool {
	for _, name := range l.required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// amountOf returns signed cents, or 0 when the row carries no usable amount.
func (l layout) amountOf(row []string, cols map[string]int) int64 {
	if l.mode == amountSigned {
		return europeanCents(cell(row, cols[l.amount]))
	}

	if debit := europeanCents(cell(row, cols[l.debit])); debit != 0 {
		return -abs(debit)
	}

	return abs(europeanCents(cell(row, cols[l.credit])))
}

// europeanCents reads "1.234,56" as 123456. Unparseable input yields 0.
func europeanCents(s string) int64 {
	if s == "" {
		return 0
	}

	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0
	}

	return d.Shift(2).Round(0).IntPart()
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
