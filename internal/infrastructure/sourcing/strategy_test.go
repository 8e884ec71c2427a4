package sourcing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vendorscout/backend/internal/domain"
)

// fakeCompletion scripts the completion provider
type fakeCompletion struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompletion) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.prompts = append(f.prompts, userPrompt)
	return f.response, f.err
}

// fakeSearch scripts the search provider
type fakeSearch struct {
	snippets []domain.SearchSnippet
	err      error
	queries  []string
	limits   []int
}

func (f *fakeSearch) Search(ctx context.Context, query string, limit int) ([]domain.SearchSnippet, error) {
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	return f.snippets, f.err
}

func TestSelectStrategy(t *testing.T) {
	t.Run("both providers select web-search", func(t *testing.T) {
		strategy := SelectStrategy(&fakeCompletion{}, &fakeSearch{})
		assert.Equal(t, domain.ModeWebSearch, strategy.Mode())
	})

	t.Run("completion only selects ai-research", func(t *testing.T) {
		strategy := SelectStrategy(&fakeCompletion{}, nil)
		assert.Equal(t, domain.ModeAIResearch, strategy.Mode())
	})

	t.Run("search alone cannot extract, falls back to mock", func(t *testing.T) {
		strategy := SelectStrategy(nil, &fakeSearch{})
		assert.Equal(t, domain.ModeMock, strategy.Mode())
	})

	t.Run("no providers select mock", func(t *testing.T) {
		strategy := SelectStrategy(nil, nil)
		assert.Equal(t, domain.ModeMock, strategy.Mode())
	})
}
