package sourcing

import (
	"strings"

	"github.com/vendorscout/backend/internal/domain"
)

// knownCandidateFields are the provider payload keys the sanitizer maps onto
// the domain model. Anything else survives only inside the audit payload.
var knownCandidateFields = map[string]bool{
	"companyName":       true,
	"country":           true,
	"website":           true,
	"email":             true,
	"phone":             true,
	"description":       true,
	"productCategories": true,
	"certifications":    true,
	"companySize":       true,
	"yearsInBusiness":   true,
	"confidence":        true,
}

// SanitizeCandidate coerces an untyped provider payload into a Candidate.
// Wrong-typed or missing strings become empty, missing arrays become empty
// slices, confidence is clamped to [0,1] with a 0.5 default, and the full
// raw payload (unknown fields included) is preserved for audit. Provider
// output never enters the domain model without passing through here.
func SanitizeCandidate(raw map[string]any) domain.Candidate {
	candidate := domain.Candidate{
		CompanyName:       coerceString(raw["companyName"]),
		Country:           coerceString(raw["country"]),
		Website:           coerceString(raw["website"]),
		Email:             coerceString(raw["email"]),
		Phone:             coerceString(raw["phone"]),
		Description:       coerceString(raw["description"]),
		ProductCategories: coerceStringSlice(raw["productCategories"]),
		Certifications:    coerceStringSlice(raw["certifications"]),
		CompanySize:       coerceString(raw["companySize"]),
		YearsInBusiness:   coerceInt(raw["yearsInBusiness"]),
		Confidence:        coerceConfidence(raw["confidence"]),
		Raw:               raw,
	}

	candidate.CompanyName = strings.TrimSpace(candidate.CompanyName)
	return candidate
}

// coerceString returns the value when it is a string, otherwise empty
func coerceString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// coerceStringSlice accepts []string or []any of strings; anything else
// becomes an empty slice, never nil
func coerceStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		if v == nil {
			return []string{}
		}
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// coerceInt accepts numeric JSON values; anything else becomes zero
func coerceInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// coerceConfidence clamps to [0,1]; missing or wrong-typed values default
// to 0.5
func coerceConfidence(value any) float64 {
	confidence := 0.5
	switch v := value.(type) {
	case float64:
		confidence = v
	case int:
		confidence = float64(v)
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
