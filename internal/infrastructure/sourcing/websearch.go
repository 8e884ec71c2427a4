package sourcing

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/vendorscout/backend/internal/domain"
)

const webSearchSystemPrompt = `You extract vendor records from web search results for procurement.
Rules:
- Only extract actual manufacturers or suppliers. Skip directories, marketplaces, news sites and blogs.
- Use only information present in the snippets. Leave email and phone as null unless they appear verbatim.
- Confidence reflects how clearly the snippet identifies a real vendor, within [0,1].
- Respond with a JSON array only, no prose. Each element:
  {"companyName": string, "country": string, "website": string|null, "email": string|null,
   "phone": string|null, "description": string, "productCategories": [string],
   "certifications": [string], "companySize": string|null, "yearsInBusiness": number|null,
   "confidence": number}`

// WebSearchStrategy sources candidates by querying the search provider and
// extracting vendor records from the snippets with a second completion call
type WebSearchStrategy struct {
	search domain.SearchClient
	llm    domain.CompletionClient
}

// NewWebSearchStrategy creates the web-search sourcing strategy
func NewWebSearchStrategy(search domain.SearchClient, llm domain.CompletionClient) *WebSearchStrategy {
	return &WebSearchStrategy{search: search, llm: llm}
}

// Mode identifies this strategy on the job record
func (s *WebSearchStrategy) Mode() domain.DiscoveryMode {
	return domain.ModeWebSearch
}

// Search runs the two-step pipeline: ranked snippets first, then structured
// extraction. No snippets or an unparseable extraction yield zero candidates
// for the query.
func (s *WebSearchStrategy) Search(ctx context.Context, category, country string, limit int) ([]domain.Candidate, error) {
	query := fmt.Sprintf("%s manufacturer supplier %s", category, country)

	// Fetch more snippets than vendors wanted; extraction filters heavily
	snippets, err := s.search.Search(ctx, query, limit*2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	if len(snippets) == 0 {
		return []domain.Candidate{}, nil
	}

	userPrompt := buildExtractionPrompt(category, country, limit, snippets)
	response, err := s.llm.Complete(ctx, webSearchSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	rawCandidates, err := parseCandidatePayload(response)
	if err != nil {
		log.Printf("[Sourcing] web-search extraction unparseable for %s/%s: %v", category, country, err)
		return []domain.Candidate{}, nil
	}

	return sanitizeAll(rawCandidates, limit), nil
}

// buildExtractionPrompt renders the snippets into the extraction request
func buildExtractionPrompt(category, country string, limit int, snippets []domain.SearchSnippet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extract up to %d vendors of %s in %s from these search results:\n\n", limit, category, country)
	for i, snippet := range snippets {
		fmt.Fprintf(&b, "%d. %s\n   URL: %s\n   %s\n", i+1, snippet.Title, snippet.URL, snippet.Snippet)
	}
	return b.String()
}
