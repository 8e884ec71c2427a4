package sourcing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorscout/backend/internal/domain"
)

func TestMockStrategy(t *testing.T) {
	ctx := context.Background()
	strategy := NewMockStrategy()

	t.Run("mode is mock", func(t *testing.T) {
		assert.Equal(t, domain.ModeMock, strategy.Mode())
	})

	t.Run("same inputs return identical candidates", func(t *testing.T) {
		first, err := strategy.Search(ctx, "Steel Pipes", "China", 5)
		require.NoError(t, err)
		second, err := strategy.Search(ctx, "Steel Pipes", "China", 5)
		require.NoError(t, err)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].CompanyName, second[i].CompanyName)
			assert.Equal(t, first[i].Confidence, second[i].Confidence)
		}
	})

	t.Run("different categories rotate the pool", func(t *testing.T) {
		pipes, err := strategy.Search(ctx, "Steel Pipes", "China", 3)
		require.NoError(t, err)
		textiles, err := strategy.Search(ctx, "Textiles", "China", 3)
		require.NoError(t, err)

		// Not guaranteed different for every hash pair, but these two are
		assert.NotEqual(t, pipes[0].CompanyName, textiles[0].CompanyName)
	})

	t.Run("limit caps the result count", func(t *testing.T) {
		candidates, err := strategy.Search(ctx, "Steel Pipes", "China", 2)
		require.NoError(t, err)
		assert.Len(t, candidates, 2)
	})

	t.Run("limit above pool size returns the whole pool", func(t *testing.T) {
		candidates, err := strategy.Search(ctx, "Steel Pipes", "Vietnam", 50)
		require.NoError(t, err)
		assert.Len(t, candidates, 3)
	})

	t.Run("confidence stays within the mock band", func(t *testing.T) {
		candidates, err := strategy.Search(ctx, "Valves", "India", 5)
		require.NoError(t, err)
		require.NotEmpty(t, candidates)
		for _, candidate := range candidates {
			assert.GreaterOrEqual(t, candidate.Confidence, 0.55)
			assert.LessOrEqual(t, candidate.Confidence, 0.85)
		}
	})

	t.Run("country lookup is case-insensitive", func(t *testing.T) {
		lower, err := strategy.Search(ctx, "Valves", "germany", 2)
		require.NoError(t, err)
		upper, err := strategy.Search(ctx, "Valves", "  GERMANY ", 2)
		require.NoError(t, err)
		assert.Equal(t, lower[0].CompanyName, upper[0].CompanyName)
	})

	t.Run("unknown country synthesizes a generic pool", func(t *testing.T) {
		candidates, err := strategy.Search(ctx, "Coffee Beans", "Atlantis", 3)
		require.NoError(t, err)
		require.Len(t, candidates, 3)
		for _, candidate := range candidates {
			assert.Contains(t, candidate.CompanyName, "Atlantis")
			assert.Equal(t, "Atlantis", candidate.Country)
		}
	})

	t.Run("candidates pass through sanitization", func(t *testing.T) {
		candidates, err := strategy.Search(ctx, "Steel Pipes", "China", 1)
		require.NoError(t, err)
		require.Len(t, candidates, 1)

		candidate := candidates[0]
		assert.NotEmpty(t, candidate.CompanyName)
		assert.Equal(t, []string{"Steel Pipes"}, candidate.ProductCategories)
		assert.Equal(t, []string{"ISO 9001"}, candidate.Certifications)
		assert.Equal(t, "mock", candidate.Raw["source"])
	})
}
