package sourcing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCandidate(t *testing.T) {
	t.Run("maps a well-formed payload", func(t *testing.T) {
		raw := map[string]any{
			"companyName":       "  Acme Industrial Ltd.  ",
			"country":           "Germany",
			"website":           "https://acme.de",
			"email":             "info@acme.de",
			"phone":             "+49 89 1234",
			"description":       "Industrial components",
			"productCategories": []any{"Bearings", "Seals"},
			"certifications":    []any{"ISO 9001"},
			"companySize":       "200-500",
			"yearsInBusiness":   float64(25),
			"confidence":        0.82,
		}

		candidate := SanitizeCandidate(raw)

		assert.Equal(t, "Acme Industrial Ltd.", candidate.CompanyName)
		assert.Equal(t, "Germany", candidate.Country)
		assert.Equal(t, []string{"Bearings", "Seals"}, candidate.ProductCategories)
		assert.Equal(t, 25, candidate.YearsInBusiness)
		assert.Equal(t, 0.82, candidate.Confidence)
	})

	t.Run("missing confidence defaults to 0.5", func(t *testing.T) {
		candidate := SanitizeCandidate(map[string]any{"companyName": "X"})
		assert.Equal(t, 0.5, candidate.Confidence)
	})

	t.Run("confidence clamped to [0,1]", func(t *testing.T) {
		assert.Equal(t, 1.0, SanitizeCandidate(map[string]any{"confidence": 1.5}).Confidence)
		assert.Equal(t, 0.0, SanitizeCandidate(map[string]any{"confidence": -0.2}).Confidence)
	})

	t.Run("wrong-typed confidence defaults to 0.5", func(t *testing.T) {
		candidate := SanitizeCandidate(map[string]any{"confidence": "high"})
		assert.Equal(t, 0.5, candidate.Confidence)
	})

	t.Run("missing strings become empty", func(t *testing.T) {
		candidate := SanitizeCandidate(map[string]any{"companyName": "X"})
		assert.Equal(t, "", candidate.Website)
		assert.Equal(t, "", candidate.Email)
	})

	t.Run("null and wrong-typed strings become empty", func(t *testing.T) {
		candidate := SanitizeCandidate(map[string]any{
			"companyName": "X",
			"website":     nil,
			"email":       42,
		})
		assert.Equal(t, "", candidate.Website)
		assert.Equal(t, "", candidate.Email)
	})

	t.Run("missing arrays become empty slices", func(t *testing.T) {
		candidate := SanitizeCandidate(map[string]any{"companyName": "X"})
		assert.NotNil(t, candidate.ProductCategories)
		assert.Empty(t, candidate.ProductCategories)
		assert.NotNil(t, candidate.Certifications)
	})

	t.Run("non-string array items are dropped", func(t *testing.T) {
		candidate := SanitizeCandidate(map[string]any{
			"productCategories": []any{"Valves", 7, nil},
		})
		assert.Equal(t, []string{"Valves"}, candidate.ProductCategories)
	})

	t.Run("float yearsInBusiness is truncated", func(t *testing.T) {
		candidate := SanitizeCandidate(map[string]any{"yearsInBusiness": 12.9})
		assert.Equal(t, 12, candidate.YearsInBusiness)
	})

	t.Run("full raw payload preserved including unknown fields", func(t *testing.T) {
		raw := map[string]any{
			"companyName": "X",
			"source":      "mock",
			"extraField":  map[string]any{"nested": true},
		}
		candidate := SanitizeCandidate(raw)
		assert.Equal(t, raw, candidate.Raw)
		assert.Equal(t, "mock", candidate.Raw["source"])
	})
}
