package usecase

import (
	"fmt"

	"github.com/vendorscout/backend/internal/domain"
)

// PlanQueries expands categories x countries into one sourcing task per pair.
// Pure and deterministic: category-major order, fixed query template, no
// external calls.
func PlanQueries(categories, countries []string) []domain.SearchQuery {
	queries := make([]domain.SearchQuery, 0, len(categories)*len(countries))

	for _, category := range categories {
		for _, country := range countries {
			queries = append(queries, domain.SearchQuery{
				Category: category,
				Country:  country,
				Query:    fmt.Sprintf("%s manufacturer supplier %s", category, country),
			})
		}
	}

	return queries
}
