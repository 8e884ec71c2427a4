package sourcing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorscout/backend/internal/domain"
)

func TestAIResearchStrategySearch(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a plain JSON array", func(t *testing.T) {
		llm := &fakeCompletion{response: `[
			{"companyName": "Acme Valves Ltd.", "country": "India", "confidence": 0.8},
			{"companyName": "Bharat Pipe Works", "country": "India", "confidence": 0.72}
		]`}
		strategy := NewAIResearchStrategy(llm)

		candidates, err := strategy.Search(ctx, "Valves", "India", 5)
		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Equal(t, "Acme Valves Ltd.", candidates[0].CompanyName)
		assert.Equal(t, 0.72, candidates[1].Confidence)
	})

	t.Run("parses a fenced response", func(t *testing.T) {
		llm := &fakeCompletion{response: "```json\n[{\"companyName\": \"Fenced Co\"}]\n```"}
		strategy := NewAIResearchStrategy(llm)

		candidates, err := strategy.Search(ctx, "Valves", "India", 5)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Fenced Co", candidates[0].CompanyName)
	})

	t.Run("parses a vendors wrapper object", func(t *testing.T) {
		llm := &fakeCompletion{response: `{"vendors": [{"companyName": "Wrapped Co"}]}`}
		strategy := NewAIResearchStrategy(llm)

		candidates, err := strategy.Search(ctx, "Valves", "India", 5)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Wrapped Co", candidates[0].CompanyName)
	})

	t.Run("malformed response yields zero candidates without error", func(t *testing.T) {
		llm := &fakeCompletion{response: "I could not find any vendors, sorry."}
		strategy := NewAIResearchStrategy(llm)

		candidates, err := strategy.Search(ctx, "Valves", "India", 5)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("provider error wraps ErrProviderFailure", func(t *testing.T) {
		llm := &fakeCompletion{err: errors.New("429 too many requests")}
		strategy := NewAIResearchStrategy(llm)

		_, err := strategy.Search(ctx, "Valves", "India", 5)
		assert.ErrorIs(t, err, domain.ErrProviderFailure)
	})

	t.Run("entries without a company name are dropped", func(t *testing.T) {
		llm := &fakeCompletion{response: `[
			{"companyName": "", "country": "India"},
			{"country": "India"},
			{"companyName": "Kept Co"}
		]`}
		strategy := NewAIResearchStrategy(llm)

		candidates, err := strategy.Search(ctx, "Valves", "India", 5)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Kept Co", candidates[0].CompanyName)
	})

	t.Run("result count capped at limit", func(t *testing.T) {
		llm := &fakeCompletion{response: `[
			{"companyName": "A"}, {"companyName": "B"}, {"companyName": "C"}
		]`}
		strategy := NewAIResearchStrategy(llm)

		candidates, err := strategy.Search(ctx, "Valves", "India", 2)
		require.NoError(t, err)
		assert.Len(t, candidates, 2)
	})

	t.Run("limit and query appear in the prompt", func(t *testing.T) {
		llm := &fakeCompletion{response: "[]"}
		strategy := NewAIResearchStrategy(llm)

		_, err := strategy.Search(ctx, "Steel Pipes", "China", 7)
		require.NoError(t, err)
		require.Len(t, llm.prompts, 1)
		assert.Contains(t, llm.prompts[0], "up to 7")
		assert.Contains(t, llm.prompts[0], "Steel Pipes")
		assert.Contains(t, llm.prompts[0], "China")
	})
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `[{"a": 1}]`, `[{"a": 1}]`},
		{"json fence", "```json\n[1]\n```", "[1]"},
		{"bare fence", "```\n[1]\n```", "[1]"},
		{"surrounding whitespace", "  ```json\n[1]\n```  ", "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.input))
		})
	}
}
