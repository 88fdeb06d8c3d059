package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCategory(ctx context.Context, description string) (category.Category, error) {
	query := `
		SELECT category
		FROM category_rules
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var c category.Category

	err := s.db.QueryRowContext(ctx, query, description).Scan(&c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.Unset, nil
		}

		return category.Unset, fmt.Errorf("finding category rule: %w", err)
	}

	return c, nil
}

// CreateRule stores a rule. Learning the same pattern again replaces its
// category.
func (s *Store) CreateRule(ctx context.Context, pattern string, c category.Category) error {
	query := `
		INSERT INTO category_rules (pattern, category, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (pattern) DO UPDATE SET category = EXCLUDED.category, created_at = NOW()
	`

	_, err := s.db.ExecContext(ctx, query, pattern, c)
	if err != nil {
		return fmt.Errorf("creating category rule: %w", err)
	}

	return nil
}
