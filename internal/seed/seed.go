package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

//go:generate mockgen -source=seed.go -destination=seed_mock.go -package=seed
type Transactions interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
	CreateBatch(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error)
}

type Budgets interface {
	Set(ctx context.Context, params budget.SetParams) (*budget.Budget, error)
}

type Service struct {
	transactions Transactions
	budgets      Budgets
}

func NewService(transactions Transactions, budgets Budgets) *Service {
	return &Service{transactions: transactions, budgets: budgets}
}

type Result struct {
	Transactions int
	Budgets      int
}

// sample is a transaction relative to the seeded month: monthOffset 0 is the
// current month, -1 the one before.
type sample struct {
	monthOffset int
	day         int
	amount      int64
	description string
	category    category.Category
}

var samples = []sample{
	{0, 1, -280_00, "Monthly Rent Payment", category.Housing},
	{0, 3, -42_00, "Weekly Grocery Shopping", category.Food},
	{0, 5, -28_00, "Fuel for Car", category.Transportation},
	{0, 8, -15_00, "Movie Night with Friends", category.Entertainment},
	{0, 10, -32_00, "Electricity Bill", category.Utilities},
	{0, 12, -21_00, "Doctor Visit", category.Healthcare},
	{0, 15, -18_00, "Online Course Subscription", category.Education},
	{0, 18, -45_00, "Monthly Grocery Stock", category.Food},
	{0, 20, -22_00, "Car Service", category.Transportation},
	{0, 22, -12_00, "Netflix & Spotify", category.Entertainment},
	{0, 25, -38_00, "New Clothes Shopping", category.Shopping},
	{0, 1, 850_00, "Monthly Salary", category.Other},
	{0, 15, 150_00, "Freelance Project Payment", category.Other},
	{-1, 1, -260_00, "Monthly Rent Payment", category.Housing},
	{-1, 4, -38_00, "Weekly Grocery Shopping", category.Food},
	{-1, 7, -25_00, "Fuel for Car", category.Transportation},
	{-1, 10, -18_00, "Concert Tickets", category.Entertainment},
	{-1, 12, -29_00, "Water & Gas Bills", category.Utilities},
	{-1, 1, 820_00, "Monthly Salary", category.Other},
}

var sampleBudgets = []struct {
	category category.Category
	amount   int64
}{
	{category.Housing, 350_00},
	{category.Food, 120_00},
	{category.Transportation, 80_00},
	{category.Entertainment, 50_00},
	{category.Utilities, 60_00},
	{category.Healthcare, 40_00},
	{category.Education, 30_00},
	{category.Shopping, 80_00},
}

// Seed loads demo data for the month containing now. Transactions are only
// added to an empty ledger; budgets are upserted, so seeding twice leaves one
// budget per category.
func (s *Service) Seed(ctx context.Context, now time.Time) (*Result, error) {
	var res Result

	existing, err := s.transactions.List(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	if len(existing) == 0 {
		created, err := s.transactions.CreateBatch(ctx, sampleParams(now))
		if err != nil {
			return nil, fmt.Errorf("seeding transactions: %w", err)
		}

		res.Transactions = len(created)
	} else {
		slog.Info("skipping transaction seed", "existing", len(existing))
	}

	month, year := int(now.Month())-1, now.Year()

	for _, b := range sampleBudgets {
		_, err := s.budgets.Set(ctx, budget.SetParams{
			Category: b.category,
			Amount:   b.amount,
			Month:    month,
			Year:     year,
		})
		if err != nil {
			return nil, fmt.Errorf("seeding %s budget: %w", b.category, err)
		}

		res.Budgets++
	}

	return &res, nil
}

func sampleParams(now time.Time) []transaction.CreateParams {
	params := make([]transaction.CreateParams, 0, len(samples))

	for _, s := range samples {
		params = append(params, transaction.CreateParams{
			Amount:      s.amount,
			Description: s.description,
			Category:    s.category,
			Date:        time.Date(now.Year(), now.Month()+time.Month(s.monthOffset), s.day, 0, 0, 0, 0, time.UTC),
		})
	}

	return params
}
