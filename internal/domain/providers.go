package domain

import "context"

// CompletionClient defines the interface for a structured-completion (LLM)
// provider. Complete returns the raw text of the model response; callers
// parse it as JSON.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SearchSnippet is one ranked result from the web-search provider
type SearchSnippet struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchClient defines the interface for the web-search provider
type SearchClient interface {
	Search(ctx context.Context, query string, limit int) ([]SearchSnippet, error)
}

// PriceRow is one structured row from the shopping/price provider
type PriceRow struct {
	Title    string  `json:"title"`
	Source   string  `json:"source"`
	Price    float64 `json:"price"`
	RawPrice string  `json:"rawPrice"`
	Currency string  `json:"currency"`
	URL      string  `json:"url,omitempty"`
	Vendor   string  `json:"vendor,omitempty"`
}

// ShoppingClient defines the interface for the shopping/price provider
type ShoppingClient interface {
	SearchPrices(ctx context.Context, query, country string) ([]PriceRow, error)
}

// ContactExtractor scrapes contact details from a vendor website
type ContactExtractor interface {
	Extract(ctx context.Context, websiteURL string) (*ContactInfo, error)
}

// SourcingStrategy produces sanitized vendor candidates for one
// (category, country) query. Implementations: mock, ai-research, web-search.
type SourcingStrategy interface {
	Mode() DiscoveryMode
	Search(ctx context.Context, category, country string, limit int) ([]Candidate, error)
}

// PriceIntelligence aggregates shopping results for a (category, country)
// pair. Samples is zero when no valid entry was found; that is not an error.
type PriceIntelligence struct {
	Category string     `json:"category"`
	Country  string     `json:"country"`
	Samples  int        `json:"samples"`
	Min      float64    `json:"min"`
	Max      float64    `json:"max"`
	Avg      float64    `json:"avg"`
	Currency string     `json:"currency"`
	Entries  []PriceRow `json:"entries"`
}

// PriceEnricher looks up price intelligence for a (category, country) pair
type PriceEnricher interface {
	// Available reports whether the underlying provider is configured.
	// When false, enrichment is skipped entirely.
	Available() bool
	Enrich(ctx context.Context, category, country string) (*PriceIntelligence, error)
}
