package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/importer/cgd"
	"github.com/MrJamesThe3rd/spendwise/internal/importer/spendwise"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=suggester_mock.go -package=importer
type Suggester interface {
	Suggest(ctx context.Context, description string) (category.Category, error)
}

type Service struct {
	parsers map[Profile]Parser
	rules   Suggester
}

func NewService(rules Suggester) *Service {
	return &Service{
		parsers: map[Profile]Parser{
			ProfileSpendwise: spendwise.NewParser(),
			ProfileCGD:       cgd.NewParser(),
		},
		rules: rules,
	}
}

// Import parses r with the given profile. Descriptions are cut to the
// transaction limit, and rows without a category get the one suggested by
// the learned rules, or Other.
func (s *Service) Import(ctx context.Context, profile Profile, r io.Reader) ([]transaction.CreateParams, error) {
	parser, ok := s.parsers[profile]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, profile)
	}

	params, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	for i := range params {
		params[i].Description = truncate(strings.TrimSpace(params[i].Description), transaction.MaxDescriptionLen)

		if params[i].Category.IsSet() {
			continue
		}

		params[i].Category = s.suggest(ctx, params[i].Description)
	}

	return params, nil
}

func (s *Service) suggest(ctx context.Context, description string) category.Category {
	if s.rules == nil {
		return category.Other
	}

	suggested, err := s.rules.Suggest(ctx, description)
	if err != nil {
		slog.Warn("failed to suggest category", "description", description, "error", err)
		return category.Other
	}

	if !suggested.Valid() {
		return category.Other
	}

	return suggested
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n])
}
