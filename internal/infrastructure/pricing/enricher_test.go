package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorscout/backend/internal/domain"
)

// fakeShopping scripts the shopping provider
type fakeShopping struct {
	rows    []domain.PriceRow
	err     error
	queries []string
}

func (f *fakeShopping) SearchPrices(ctx context.Context, query, country string) ([]domain.PriceRow, error) {
	f.queries = append(f.queries, query)
	return f.rows, f.err
}

func TestEnricherAvailable(t *testing.T) {
	assert.False(t, NewEnricher(nil, 10).Available())
	assert.True(t, NewEnricher(&fakeShopping{}, 10).Available())
}

func TestEnrich(t *testing.T) {
	ctx := context.Background()

	t.Run("computes min max avg over kept entries", func(t *testing.T) {
		client := &fakeShopping{rows: []domain.PriceRow{
			{Title: "Pipe A", Source: "shopmart", Price: 10, Currency: "USD"},
			{Title: "Pipe B", Source: "shopmart", Price: 30, Currency: "USD"},
			{Title: "Pipe C", Source: "shopmart", Price: 20, Currency: "USD"},
		}}
		enricher := NewEnricher(client, 10)

		intel, err := enricher.Enrich(ctx, "Steel Pipes", "China")
		require.NoError(t, err)

		assert.Equal(t, 3, intel.Samples)
		assert.Equal(t, 10.0, intel.Min)
		assert.Equal(t, 30.0, intel.Max)
		assert.Equal(t, 20.0, intel.Avg)
		assert.Equal(t, "USD", intel.Currency)
		assert.Equal(t, "Steel Pipes", intel.Category)
		assert.Equal(t, "China", intel.Country)
	})

	t.Run("builds the query from category and country", func(t *testing.T) {
		client := &fakeShopping{}
		enricher := NewEnricher(client, 10)

		_, err := enricher.Enrich(ctx, "Steel Pipes", "China")
		require.NoError(t, err)
		require.Len(t, client.queries, 1)
		assert.Equal(t, "Steel Pipes price China", client.queries[0])
	})

	t.Run("no valid rows is zero samples, not an error", func(t *testing.T) {
		client := &fakeShopping{rows: []domain.PriceRow{
			{Title: "Unpriced", Source: "shopmart", Price: 0},
		}}
		enricher := NewEnricher(client, 10)

		intel, err := enricher.Enrich(ctx, "Steel Pipes", "China")
		require.NoError(t, err)
		assert.Equal(t, 0, intel.Samples)
		assert.Empty(t, intel.Entries)
	})

	t.Run("provider error propagates", func(t *testing.T) {
		client := &fakeShopping{err: errors.New("boom")}
		enricher := NewEnricher(client, 10)

		_, err := enricher.Enrich(ctx, "Steel Pipes", "China")
		assert.Error(t, err)
	})

	t.Run("nil client reports provider failure", func(t *testing.T) {
		enricher := NewEnricher(nil, 10)
		_, err := enricher.Enrich(ctx, "Steel Pipes", "China")
		assert.ErrorIs(t, err, domain.ErrProviderFailure)
	})
}

func TestAggregate(t *testing.T) {
	t.Run("deduplicates by title source and price", func(t *testing.T) {
		rows := []domain.PriceRow{
			{Title: "Pipe", Source: "shopmart", Price: 10},
			{Title: "Pipe", Source: "shopmart", Price: 10},
			{Title: "Pipe", Source: "othermart", Price: 10},
			{Title: "Pipe", Source: "shopmart", Price: 12},
		}
		kept := Aggregate(rows, 10)
		assert.Len(t, kept, 3)
	})

	t.Run("drops non-positive prices", func(t *testing.T) {
		rows := []domain.PriceRow{
			{Title: "Free", Source: "a", Price: 0},
			{Title: "Refund", Source: "a", Price: -5},
			{Title: "Real", Source: "a", Price: 9.99},
		}
		kept := Aggregate(rows, 10)
		require.Len(t, kept, 1)
		assert.Equal(t, "Real", kept[0].Title)
	})

	t.Run("caps the kept set", func(t *testing.T) {
		rows := make([]domain.PriceRow, 0, 20)
		for i := 0; i < 20; i++ {
			rows = append(rows, domain.PriceRow{Title: "Item", Source: "a", Price: float64(i + 1)})
		}
		assert.Len(t, Aggregate(rows, 5), 5)
	})

	t.Run("preserves input order", func(t *testing.T) {
		rows := []domain.PriceRow{
			{Title: "Second", Source: "a", Price: 20},
			{Title: "First", Source: "a", Price: 10},
		}
		kept := Aggregate(rows, 10)
		require.Len(t, kept, 2)
		assert.Equal(t, "Second", kept[0].Title)
	})
}
