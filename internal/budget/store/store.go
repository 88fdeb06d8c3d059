package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectBudgetColumns = `id, category, amount, month, year, created_at, updated_at`

func scanBudget(s scanner) (*budget.Budget, error) {
	var (
		b   budget.Budget
		cat string
	)

	if err := s.Scan(&b.ID, &cat, &b.Amount, &b.Month, &b.Year, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}

	b.Category = category.Category(cat)

	return &b, nil
}

// UpsertBudget relies on the unique (category, month, year) index: setting a
// budget for an existing key updates its amount and keeps its id.
func (s *Store) UpsertBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (category, amount, month, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (category, month, year)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, b.Category, b.Amount, b.Month, b.Year).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, filter budget.ListFilter) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets`

	var args []any

	if filter.Month != nil && filter.Year != nil {
		query += ` WHERE month = $1 AND year = $2`

		args = append(args, *filter.Month, *filter.Year)
	}

	query += ` ORDER BY year, month, created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budgets: %w", err)
	}

	return budgets, nil
}

func (s *Store) UpdateAmount(ctx context.Context, id uuid.UUID, amount int64) (*budget.Budget, error) {
	query := `
		UPDATE budgets
		SET amount = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + selectBudgetColumns

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, amount, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("updating budget: %w", err)
	}

	return b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return budget.ErrNotFound
	}

	return nil
}
