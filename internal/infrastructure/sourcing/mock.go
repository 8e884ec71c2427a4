package sourcing

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/vendorscout/backend/internal/domain"
)

// mockVendor is one entry of a per-country candidate pool
type mockVendor struct {
	name    string
	city    string
	website string
}

// countryPools holds small fixed pools of plausible vendors per country.
// Unknown countries fall back to a synthesized generic pool.
var countryPools = map[string][]mockVendor{
	"china": {
		{"Shenzhen Golden Dragon Manufacturing Co.", "Shenzhen", "goldendragon-mfg.cn"},
		{"Guangzhou Huaxing Industrial Ltd.", "Guangzhou", "huaxing-industrial.com"},
		{"Ningbo Eastern Star Trading Co.", "Ningbo", "easternstar-trade.cn"},
		{"Shandong Weifang Export Group", "Weifang", "wfexportgroup.com"},
		{"Dongguan Precision Works Co.", "Dongguan", "dg-precisionworks.cn"},
		{"Jiangsu Lianyun Supply Chain Ltd.", "Nanjing", "lianyun-supply.com"},
	},
	"india": {
		{"Mumbai Apex Exports Pvt. Ltd.", "Mumbai", "apexexports.in"},
		{"Chennai Southern Industries", "Chennai", "southernind.co.in"},
		{"Delhi Continental Trading Co.", "New Delhi", "continentaltrading.in"},
		{"Gujarat Shakti Manufacturing", "Ahmedabad", "shaktimfg.in"},
		{"Pune Precision Products Ltd.", "Pune", "puneprecision.com"},
	},
	"germany": {
		{"Bayerische Industriewerke GmbH", "Munich", "bayerische-iw.de"},
		{"Hanseatic Trading House GmbH", "Hamburg", "hanseatic-th.de"},
		{"Rheinland Fertigung AG", "Cologne", "rheinland-fertigung.de"},
		{"Schwarzwald Komponenten GmbH", "Stuttgart", "schwarzwald-komponenten.de"},
	},
	"united states": {
		{"Midwest Industrial Supply Inc.", "Chicago", "midwestindsupply.com"},
		{"Pacific Coast Manufacturing LLC", "Los Angeles", "pacificcoastmfg.com"},
		{"Atlantic Sourcing Partners", "Atlanta", "atlanticsourcing.com"},
		{"Lone Star Fabrication Co.", "Houston", "lonestarfab.com"},
	},
	"vietnam": {
		{"Hanoi Viet Thanh Production Co.", "Hanoi", "vietthanh-prod.vn"},
		{"Saigon Mekong Industries", "Ho Chi Minh City", "mekong-ind.vn"},
		{"Da Nang Coastal Manufacturing", "Da Nang", "coastalmfg.vn"},
	},
	"turkey": {
		{"Istanbul Anadolu Sanayi A.S.", "Istanbul", "anadolusanayi.com.tr"},
		{"Bursa Marmara Uretim Ltd.", "Bursa", "marmarauretim.com.tr"},
		{"Izmir Ege Export Group", "Izmir", "egeexport.com.tr"},
	},
}

// MockStrategy produces deterministic candidates without any network call.
// Pool order and confidence derive from a hash of the category, so repeated
// runs for the same category are stable.
type MockStrategy struct{}

// NewMockStrategy creates the mock sourcing strategy
func NewMockStrategy() *MockStrategy {
	return &MockStrategy{}
}

// Mode identifies this strategy on the job record
func (s *MockStrategy) Mode() domain.DiscoveryMode {
	return domain.ModeMock
}

// Search returns up to limit candidates from the country pool, rotated and
// scored by the category hash
func (s *MockStrategy) Search(ctx context.Context, category, country string, limit int) ([]domain.Candidate, error) {
	pool, ok := countryPools[strings.ToLower(strings.TrimSpace(country))]
	if !ok {
		pool = genericPool(country)
	}

	seed := categoryHash(category)
	count := limit
	if count > len(pool) {
		count = len(pool)
	}

	candidates := make([]domain.Candidate, 0, count)
	for i := 0; i < count; i++ {
		vendor := pool[(int(seed)+i)%len(pool)]
		// Confidence stays within [0.55, 0.85], stepped by the same hash
		confidence := 0.55 + float64((seed+uint32(i)*7)%31)/100.0

		raw := map[string]any{
			"companyName":       vendor.name,
			"country":           country,
			"website":           "https://" + vendor.website,
			"description":       fmt.Sprintf("%s based in %s, supplier of %s.", vendor.name, vendor.city, category),
			"productCategories": []any{category},
			"certifications":    []any{"ISO 9001"},
			"companySize":       "50-200",
			"confidence":        confidence,
			"source":            "mock",
		}
		candidates = append(candidates, SanitizeCandidate(raw))
	}

	return candidates, nil
}

// genericPool synthesizes a pool for countries without a fixture
func genericPool(country string) []mockVendor {
	label := strings.TrimSpace(country)
	slug := strings.ToLower(strings.ReplaceAll(label, " ", ""))
	return []mockVendor{
		{fmt.Sprintf("%s National Manufacturing Co.", label), label, fmt.Sprintf("%s-mfg.example.com", slug)},
		{fmt.Sprintf("%s Prime Exports Ltd.", label), label, fmt.Sprintf("%s-exports.example.com", slug)},
		{fmt.Sprintf("%s Allied Industries", label), label, fmt.Sprintf("%s-allied.example.com", slug)},
	}
}

// categoryHash is a stable FNV-1a hash of the lowercased category
func categoryHash(category string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(category))))
	return h.Sum32()
}
