package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	UpsertBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, filter ListFilter) ([]*Budget, error)
	UpdateAmount(ctx context.Context, id uuid.UUID, amount int64) (*Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type SetParams struct {
	Category category.Category
	Amount   int64
	Month    int
	Year     int
}

// ListFilter restricts budgets to one month. Both fields must be set
// together; leaving both nil lists every budget.
type ListFilter struct {
	Month *int
	Year  *int
}

// Set creates the budget for the params' category and month, or updates the
// amount of the one that already exists.
func (s *Service) Set(ctx context.Context, params SetParams) (*Budget, error) {
	b := &Budget{
		Category: params.Category,
		Amount:   params.Amount,
		Month:    params.Month,
		Year:     params.Year,
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Budget, error) {
	if (filter.Month == nil) != (filter.Year == nil) {
		return nil, fmt.Errorf("%w: month and year must be given together", ErrInvalid)
	}

	return s.repo.ListBudgets(ctx, filter)
}

func (s *Service) UpdateAmount(ctx context.Context, id uuid.UUID, amount int64) (*Budget, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrInvalid)
	}

	return s.repo.UpdateAmount(ctx, id, amount)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, id)
}
