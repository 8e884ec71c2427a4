package pricing

import (
	"context"
	"fmt"

	"github.com/vendorscout/backend/internal/domain"
)

// Enricher aggregates shopping results into price intelligence for a
// (category, country) pair
type Enricher struct {
	client    domain.ShoppingClient
	resultCap int
}

// NewEnricher creates a price enricher. client may be nil when the shopping
// provider has no credential; Available then reports false and the pipeline
// skips enrichment entirely.
func NewEnricher(client domain.ShoppingClient, resultCap int) *Enricher {
	if resultCap < 1 {
		resultCap = 10
	}
	return &Enricher{client: client, resultCap: resultCap}
}

// Available reports whether the shopping provider is configured
func (e *Enricher) Available() bool {
	return e.client != nil
}

// Enrich queries the shopping provider and aggregates the rows: entries are
// deduplicated by (title, source, price), only strictly positive prices are
// kept, the kept set is capped, and min/max/avg are computed over it. No
// valid entry is not an error: the result then has zero samples.
func (e *Enricher) Enrich(ctx context.Context, category, country string) (*domain.PriceIntelligence, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: shopping provider not configured", domain.ErrProviderFailure)
	}

	query := fmt.Sprintf("%s price %s", category, country)
	rows, err := e.client.SearchPrices(ctx, query, country)
	if err != nil {
		return nil, err
	}

	intel := &domain.PriceIntelligence{
		Category: category,
		Country:  country,
		Entries:  Aggregate(rows, e.resultCap),
	}

	for _, entry := range intel.Entries {
		if intel.Samples == 0 {
			intel.Min = entry.Price
			intel.Max = entry.Price
			intel.Currency = entry.Currency
		} else {
			if entry.Price < intel.Min {
				intel.Min = entry.Price
			}
			if entry.Price > intel.Max {
				intel.Max = entry.Price
			}
		}
		intel.Avg += entry.Price
		intel.Samples++
	}
	if intel.Samples > 0 {
		intel.Avg /= float64(intel.Samples)
	}

	return intel, nil
}

// Aggregate deduplicates rows by (title, source, price), drops non-positive
// prices and caps the result
func Aggregate(rows []domain.PriceRow, limit int) []domain.PriceRow {
	seen := make(map[string]bool, len(rows))
	kept := make([]domain.PriceRow, 0, len(rows))

	for _, row := range rows {
		if row.Price <= 0 {
			continue
		}
		key := fmt.Sprintf("%s|%s|%.2f", row.Title, row.Source, row.Price)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
		if len(kept) >= limit {
			break
		}
	}

	return kept
}
