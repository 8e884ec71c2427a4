// Package sourcing implements the candidate sourcing strategies of the
// discovery pipeline: a deterministic mock, AI research via structured
// completion, and web search plus extraction.
package sourcing

import (
	"log"

	"github.com/vendorscout/backend/internal/domain"
)

// SelectStrategy picks the sourcing strategy from the providers that are
// actually configured. Precedence: search + completion -> web-search,
// completion only -> ai-research, neither -> mock. Selection happens once
// at job creation; the chosen mode is persisted on the job.
func SelectStrategy(llm domain.CompletionClient, search domain.SearchClient) domain.SourcingStrategy {
	switch {
	case llm != nil && search != nil:
		log.Printf("[Sourcing] web-search mode selected")
		return NewWebSearchStrategy(search, llm)
	case llm != nil:
		log.Printf("[Sourcing] ai-research mode selected")
		return NewAIResearchStrategy(llm)
	default:
		log.Printf("[Sourcing] mock mode selected (no provider credentials)")
		return NewMockStrategy()
	}
}
