package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendorscout/backend/internal/domain"
)

// DedupResult is the outcome of one duplicate check
type DedupResult struct {
	IsDuplicate bool
	Reason      string
}

// Deduplicator decides whether a candidate is new or a duplicate of an
// existing vendor or of another result in the same job
type Deduplicator struct {
	vendors domain.VendorStore
	results domain.ResultStore
}

// NewDeduplicator creates a deduplicator over the given stores
func NewDeduplicator(vendors domain.VendorStore, results domain.ResultStore) *Deduplicator {
	return &Deduplicator{vendors: vendors, results: results}
}

// Check runs the duplicate checks in order: exact case-insensitive name
// against durable vendors, normalized website against durable vendors, then
// case-insensitive name against results already stored under jobID. The
// first match wins. Runs per candidate against the live store, so the answer
// is only as fresh as the store at call time.
func (d *Deduplicator) Check(ctx context.Context, jobID string, candidate *domain.Candidate) (*DedupResult, error) {
	if vendor, err := d.vendors.FindVendorByName(ctx, candidate.CompanyName); err != nil {
		return nil, fmt.Errorf("vendor name lookup: %w", err)
	} else if vendor != nil {
		return &DedupResult{
			IsDuplicate: true,
			Reason:      fmt.Sprintf("Duplicate of existing vendor %s", vendor.Name),
		}, nil
	}

	if candidate.Website != "" {
		if vendor, err := d.vendors.FindVendorByWebsite(ctx, NormalizeWebsite(candidate.Website)); err != nil {
			return nil, fmt.Errorf("vendor website lookup: %w", err)
		} else if vendor != nil {
			return &DedupResult{
				IsDuplicate: true,
				Reason:      fmt.Sprintf("Website matches existing vendor %s", vendor.Name),
			}, nil
		}
	}

	if result, err := d.results.FindResultByJobAndName(ctx, jobID, candidate.CompanyName); err != nil {
		return nil, fmt.Errorf("same-job result lookup: %w", err)
	} else if result != nil {
		return &DedupResult{
			IsDuplicate: true,
			Reason:      "Duplicate candidate in this discovery job",
		}, nil
	}

	return &DedupResult{}, nil
}

// NormalizeWebsite strips scheme, leading www. and trailing slash, and
// lowercases, so that http://www.acme.com/ and acme.com compare equal
func NormalizeWebsite(website string) string {
	normalized := strings.ToLower(strings.TrimSpace(website))
	normalized = strings.TrimPrefix(normalized, "https://")
	normalized = strings.TrimPrefix(normalized, "http://")
	normalized = strings.TrimPrefix(normalized, "www.")
	normalized = strings.TrimSuffix(normalized, "/")
	return normalized
}
