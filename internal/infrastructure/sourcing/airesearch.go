package sourcing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/vendorscout/backend/internal/domain"
)

const aiResearchSystemPrompt = `You are a procurement research assistant. You identify real manufacturers and suppliers.
Rules:
- Only list vendors you have reasonable knowledge of. Never invent companies.
- Confidence must be 0.7-0.95 for well-known companies and 0.4-0.6 otherwise.
- Leave website, email and phone as null when you do not know them. Never fabricate contact details.
- Respond with a JSON array only, no prose. Each element:
  {"companyName": string, "country": string, "website": string|null, "email": string|null,
   "phone": string|null, "description": string, "productCategories": [string],
   "certifications": [string], "companySize": string|null, "yearsInBusiness": number|null,
   "confidence": number}`

// AIResearchStrategy sources candidates with one structured-completion call
// per query
type AIResearchStrategy struct {
	llm domain.CompletionClient
}

// NewAIResearchStrategy creates the ai-research sourcing strategy
func NewAIResearchStrategy(llm domain.CompletionClient) *AIResearchStrategy {
	return &AIResearchStrategy{llm: llm}
}

// Mode identifies this strategy on the job record
func (s *AIResearchStrategy) Mode() domain.DiscoveryMode {
	return domain.ModeAIResearch
}

// Search asks the completion provider for up to limit vendors. A malformed
// response yields zero candidates for the query, not an error.
func (s *AIResearchStrategy) Search(ctx context.Context, category, country string, limit int) ([]domain.Candidate, error) {
	userPrompt := fmt.Sprintf("List up to %d manufacturers or suppliers of %s based in %s.", limit, category, country)

	response, err := s.llm.Complete(ctx, aiResearchSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	rawCandidates, err := parseCandidatePayload(response)
	if err != nil {
		log.Printf("[Sourcing] ai-research response unparseable for %s/%s: %v", category, country, err)
		return []domain.Candidate{}, nil
	}

	return sanitizeAll(rawCandidates, limit), nil
}

// parseCandidatePayload extracts the candidate array from a completion
// response, tolerating markdown code fences and a {"vendors": [...]} wrapper
func parseCandidatePayload(response string) ([]map[string]any, error) {
	text := stripCodeFences(response)

	var list []map[string]any
	if err := json.Unmarshal([]byte(text), &list); err == nil {
		return list, nil
	}

	var wrapper struct {
		Vendors []map[string]any `json:"vendors"`
	}
	if err := json.Unmarshal([]byte(text), &wrapper); err == nil && wrapper.Vendors != nil {
		return wrapper.Vendors, nil
	}

	return nil, fmt.Errorf("%w: neither array nor vendors object", domain.ErrParseFailure)
}

// stripCodeFences removes a surrounding ```json ... ``` block if present
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// sanitizeAll funnels raw payloads through the sanitization boundary,
// dropping entries without a company name
func sanitizeAll(rawCandidates []map[string]any, limit int) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(rawCandidates))
	for _, raw := range rawCandidates {
		candidate := SanitizeCandidate(raw)
		if candidate.CompanyName == "" {
			continue
		}
		candidates = append(candidates, candidate)
		if len(candidates) >= limit {
			break
		}
	}
	return candidates
}
