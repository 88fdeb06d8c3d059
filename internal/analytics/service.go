package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=analytics
type TransactionSource interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type BudgetSource interface {
	List(ctx context.Context, filter budget.ListFilter) ([]*budget.Budget, error)
}

// Dashboard is everything derived for one period from one snapshot.
type Dashboard struct {
	Period            Period
	Categories        Totals // current period
	AllTimeCategories Totals
	Monthly           Series
	Comparison        []ComparisonRow
	Insights          []Insight
	Summary           Summary
}

// Compute derives the dashboard for period from a snapshot of every
// transaction and the period's budgets. It does not modify its inputs.
func Compute(period Period, txs []*transaction.Transaction, budgets []*budget.Budget) (*Dashboard, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	if err := ValidateSnapshot(txs, budgets); err != nil {
		return nil, err
	}

	previous := period.Previous()
	current := CategoryTotals(txs, &period)

	return &Dashboard{
		Period:            period,
		Categories:        current,
		AllTimeCategories: CategoryTotals(txs, nil),
		Monthly:           MonthlySeries(txs),
		Comparison:        Compare(current, budgets),
		Insights:          Insights(current, CategoryTotals(txs, &previous), budgets),
		Summary:           Summarize(txs),
	}, nil
}

// Clone returns a deep copy of d that shares no maps, slices or pointers
// with it.
func (d *Dashboard) Clone() *Dashboard {
	c := *d
	c.Categories = maps.Clone(d.Categories)
	c.AllTimeCategories = maps.Clone(d.AllTimeCategories)
	c.Comparison = slices.Clone(d.Comparison)
	c.Insights = slices.Clone(d.Insights)
	c.Summary = d.Summary.clone()

	return &c
}

type Service struct {
	transactions TransactionSource
	budgets      BudgetSource
	cache        *cache.Cache
}

// NewService builds a service that memoises dashboards for ttl. A snapshot
// change produces a new cache key, so ttl only bounds memory.
func NewService(transactions TransactionSource, budgets BudgetSource, ttl, cleanup time.Duration) *Service {
	return &Service{
		transactions: transactions,
		budgets:      budgets,
		cache:        cache.New(ttl, cleanup),
	}
}

// Dashboard fetches the current snapshot and returns the dashboard for period.
// Each call gets its own copy, so callers may modify the result.
func (s *Service) Dashboard(ctx context.Context, period Period) (*Dashboard, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	var (
		txs     []*transaction.Transaction
		budgets []*budget.Budget
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		txs, err = s.transactions.List(gctx, transaction.ListFilter{})
		if err != nil {
			return fmt.Errorf("listing transactions: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error

		budgets, err = s.budgets.List(gctx, budget.ListFilter{Month: &period.Month, Year: &period.Year})
		if err != nil {
			return fmt.Errorf("listing budgets: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ValidateSnapshot(txs, budgets); err != nil {
		return nil, err
	}

	key, err := snapshotKey(period, txs, budgets)
	if err != nil {
		// Hashing only fails on unsupported types; compute uncached.
		slog.Warn("failed to hash analytics snapshot", "error", err)
		return Compute(period, txs, budgets)
	}

	if cached, ok := s.cache.Get(key); ok {
		return cached.(*Dashboard).Clone(), nil
	}

	d, err := Compute(period, txs, budgets)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(key, d)

	return d.Clone(), nil
}

type txKey struct {
	ID          string
	Amount      int64
	Category    string
	Date        int64
	Zone        string
	Description string
}

type budgetKey struct {
	Category string
	Amount   int64
	Month    int
	Year     int
}

type snapshot struct {
	Period       Period
	Transactions []txKey
	Budgets      []budgetKey
}

// snapshotKey hashes exactly the fields the computations read. Entries must
// be non-nil.
func snapshotKey(period Period, txs []*transaction.Transaction, budgets []*budget.Budget) (string, error) {
	snap := snapshot{
		Period:       period,
		Transactions: make([]txKey, 0, len(txs)),
		Budgets:      make([]budgetKey, 0, len(budgets)),
	}

	for _, tx := range txs {
		snap.Transactions = append(snap.Transactions, txKey{
			ID:          tx.ID.String(),
			Amount:      tx.Amount,
			Category:    string(tx.Category),
			Date:        tx.Date.UnixNano(),
			Zone:        tx.Date.Location().String(),
			Description: tx.Description,
		})
	}

	for _, b := range budgets {
		snap.Budgets = append(snap.Budgets, budgetKey{
			Category: string(b.Category),
			Amount:   b.Amount,
			Month:    b.Month,
			Year:     b.Year,
		})
	}

	h, err := hashstructure.Hash(snap, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("hashing snapshot: %w", err)
	}

	return strconv.FormatUint(h, 16), nil
}
