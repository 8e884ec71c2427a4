package sourcing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorscout/backend/internal/domain"
)

func TestWebSearchStrategySearch(t *testing.T) {
	ctx := context.Background()

	snippets := []domain.SearchSnippet{
		{Title: "Shanghai Steel Pipe Co", URL: "https://sspipe.cn", Snippet: "Manufacturer of seamless steel pipes"},
		{Title: "Top 10 pipe suppliers", URL: "https://listicle.example.com", Snippet: "A directory of suppliers"},
	}

	t.Run("extracts candidates from snippets", func(t *testing.T) {
		search := &fakeSearch{snippets: snippets}
		llm := &fakeCompletion{response: `[{"companyName": "Shanghai Steel Pipe Co", "website": "https://sspipe.cn", "confidence": 0.9}]`}
		strategy := NewWebSearchStrategy(search, llm)

		candidates, err := strategy.Search(ctx, "Steel Pipes", "China", 5)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Shanghai Steel Pipe Co", candidates[0].CompanyName)
	})

	t.Run("fetches twice the vendor limit in snippets", func(t *testing.T) {
		search := &fakeSearch{snippets: snippets}
		llm := &fakeCompletion{response: "[]"}
		strategy := NewWebSearchStrategy(search, llm)

		_, err := strategy.Search(ctx, "Steel Pipes", "China", 5)
		require.NoError(t, err)
		require.Len(t, search.limits, 1)
		assert.Equal(t, 10, search.limits[0])
		assert.Equal(t, "Steel Pipes manufacturer supplier China", search.queries[0])
	})

	t.Run("no snippets short-circuits without a completion call", func(t *testing.T) {
		search := &fakeSearch{}
		llm := &fakeCompletion{response: "[]"}
		strategy := NewWebSearchStrategy(search, llm)

		candidates, err := strategy.Search(ctx, "Steel Pipes", "China", 5)
		require.NoError(t, err)
		assert.Empty(t, candidates)
		assert.Empty(t, llm.prompts)
	})

	t.Run("search failure wraps ErrProviderFailure", func(t *testing.T) {
		search := &fakeSearch{err: errors.New("503 unavailable")}
		strategy := NewWebSearchStrategy(search, &fakeCompletion{})

		_, err := strategy.Search(ctx, "Steel Pipes", "China", 5)
		assert.ErrorIs(t, err, domain.ErrProviderFailure)
	})

	t.Run("extraction failure wraps ErrProviderFailure", func(t *testing.T) {
		search := &fakeSearch{snippets: snippets}
		llm := &fakeCompletion{err: errors.New("timeout")}
		strategy := NewWebSearchStrategy(search, llm)

		_, err := strategy.Search(ctx, "Steel Pipes", "China", 5)
		assert.ErrorIs(t, err, domain.ErrProviderFailure)
	})

	t.Run("unparseable extraction yields zero candidates without error", func(t *testing.T) {
		search := &fakeSearch{snippets: snippets}
		llm := &fakeCompletion{response: "no structured data here"}
		strategy := NewWebSearchStrategy(search, llm)

		candidates, err := strategy.Search(ctx, "Steel Pipes", "China", 5)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("snippets are rendered into the extraction prompt", func(t *testing.T) {
		search := &fakeSearch{snippets: snippets}
		llm := &fakeCompletion{response: "[]"}
		strategy := NewWebSearchStrategy(search, llm)

		_, err := strategy.Search(ctx, "Steel Pipes", "China", 3)
		require.NoError(t, err)
		require.Len(t, llm.prompts, 1)
		assert.Contains(t, llm.prompts[0], "up to 3")
		assert.Contains(t, llm.prompts[0], "Shanghai Steel Pipe Co")
		assert.Contains(t, llm.prompts[0], "https://sspipe.cn")
	})
}
