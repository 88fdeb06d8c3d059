package category

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies a transaction or a budget.
type Category string

const (
	Housing        Category = "Housing"
	Transportation Category = "Transportation"
	Food           Category = "Food"
	Utilities      Category = "Utilities"
	Healthcare     Category = "Healthcare"
	Insurance      Category = "Insurance"
	Entertainment  Category = "Entertainment"
	Personal       Category = "Personal"
	Education      Category = "Education"
	Savings        Category = "Savings"
	Debt           Category = "Debt"
	Gifts          Category = "Gifts"
	Travel         Category = "Travel"
	Shopping       Category = "Shopping"
	Other          Category = "Other"

	// Unset marks a transaction that carries no category.
	Unset Category = ""
)

var ErrInvalid = errors.New("invalid category")

// All lists every category in canonical order. Aggregations that need a
// deterministic iteration order walk this slice.
var All = []Category{
	Housing, Transportation, Food,
	Utilities, Healthcare, Insurance, Entertainment, Personal,
	Education, Savings, Debt, Gifts, Travel,
	Shopping, Other,
}

var index = func() map[string]Category {
	m := make(map[string]Category, len(All))
	for _, c := range All {
		m[strings.ToLower(string(c))] = c
	}

	return m
}()

// Valid reports whether c is exactly one of the enumerated names.
func (c Category) Valid() bool {
	known, ok := index[strings.ToLower(string(c))]
	return ok && known == c
}

func (c Category) IsSet() bool {
	return c != Unset
}

func (c Category) String() string {
	return string(c)
}

// Parse resolves s to a known category, ignoring case and surrounding space.
func Parse(s string) (Category, error) {
	c, ok := index[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Unset, fmt.Errorf("%w: %q", ErrInvalid, s)
	}

	return c, nil
}
