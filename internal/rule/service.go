package rule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
)

var ErrInvalid = errors.New("invalid rule")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=rule
type Repository interface {
	FindCategory(ctx context.Context, description string) (category.Category, error)
	CreateRule(ctx context.Context, pattern string, c category.Category) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category of the longest learned pattern contained in
// description, or category.Unset when none matches.
func (s *Service) Suggest(ctx context.Context, description string) (category.Category, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return category.Unset, nil
	}

	return s.repo.FindCategory(ctx, description)
}

// Learn remembers that descriptions containing pattern belong to c.
func (s *Service) Learn(ctx context.Context, pattern string, c category.Category) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return fmt.Errorf("%w: empty pattern", ErrInvalid)
	}

	if !c.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalid, category.ErrInvalid)
	}

	return s.repo.CreateRule(ctx, pattern, c)
}
