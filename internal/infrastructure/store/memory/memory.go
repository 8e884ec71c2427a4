// Package memory provides an in-process implementation of the persistence
// contracts. It is the default store and the test double; data does not
// survive a restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vendorscout/backend/internal/domain"
)

// Store is a thread-safe in-memory persistence gateway
type Store struct {
	mutex    sync.RWMutex
	jobs     map[string]*domain.DiscoveryJob
	results  map[string]*domain.DiscoveryResult
	products map[string]*domain.DiscoveryProduct
	vendors  map[string]*domain.Vendor
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		jobs:     make(map[string]*domain.DiscoveryJob),
		results:  make(map[string]*domain.DiscoveryResult),
		products: make(map[string]*domain.DiscoveryProduct),
		vendors:  make(map[string]*domain.Vendor),
	}
}

// CreateJob stores a new job row
func (s *Store) CreateJob(ctx context.Context, job *domain.DiscoveryJob) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

// GetJob returns a copy of the job row
func (s *Store) GetJob(ctx context.Context, id string) (*domain.DiscoveryJob, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	job, exists := s.jobs[id]
	if !exists {
		return nil, domain.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

// ListJobs returns all jobs, newest first
func (s *Store) ListJobs(ctx context.Context) ([]*domain.DiscoveryJob, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	jobs := make([]*domain.DiscoveryJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		copied := *job
		jobs = append(jobs, &copied)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// UpdateJob replaces the job row, preserving counters and progress already
// advanced by concurrent increments
func (s *Store) UpdateJob(ctx context.Context, job *domain.DiscoveryJob) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	current, exists := s.jobs[job.ID]
	if !exists {
		return domain.ErrJobNotFound
	}

	updated := *job
	if current.TotalFound > updated.TotalFound {
		updated.TotalFound = current.TotalFound
	}
	if current.TotalNew > updated.TotalNew {
		updated.TotalNew = current.TotalNew
	}
	if current.TotalSkipped > updated.TotalSkipped {
		updated.TotalSkipped = current.TotalSkipped
	}
	if current.TotalImported > updated.TotalImported {
		updated.TotalImported = current.TotalImported
	}
	if current.Progress > updated.Progress && updated.Status != domain.JobStatusCompleted {
		updated.Progress = current.Progress
	}
	s.jobs[job.ID] = &updated
	return nil
}

// IncrementCounters applies the delta atomically under the store lock
func (s *Store) IncrementCounters(ctx context.Context, jobID string, delta domain.CounterDelta) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return domain.ErrJobNotFound
	}
	job.TotalFound += delta.Found
	job.TotalNew += delta.New
	job.TotalSkipped += delta.Skipped
	job.TotalImported += delta.Imported
	return nil
}

// UpdateProgress sets the job progress, never moving it backwards
func (s *Store) UpdateProgress(ctx context.Context, jobID string, progress float64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return domain.ErrJobNotFound
	}
	if progress > job.Progress {
		job.Progress = progress
	}
	return nil
}

// CreateResult stores a new result row
func (s *Store) CreateResult(ctx context.Context, result *domain.DiscoveryResult) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.results[result.ID]; exists {
		return fmt.Errorf("result %s already exists", result.ID)
	}
	stored := *result
	s.results[result.ID] = &stored
	return nil
}

// GetResult returns a copy of the result row
func (s *Store) GetResult(ctx context.Context, id string) (*domain.DiscoveryResult, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result, exists := s.results[id]
	if !exists {
		return nil, domain.ErrResultNotFound
	}
	copied := *result
	return &copied, nil
}

// ListResultsByJob returns all results of one job, oldest first
func (s *Store) ListResultsByJob(ctx context.Context, jobID string) ([]*domain.DiscoveryResult, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	results := make([]*domain.DiscoveryResult, 0)
	for _, result := range s.results {
		if result.JobID == jobID {
			copied := *result
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})
	return results, nil
}

// FindResultByJobAndName matches company names case-insensitively within
// one job
func (s *Store) FindResultByJobAndName(ctx context.Context, jobID, companyName string) (*domain.DiscoveryResult, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(companyName))
	for _, result := range s.results {
		if result.JobID == jobID && strings.ToLower(result.CompanyName) == needle {
			copied := *result
			return &copied, nil
		}
	}
	return nil, nil
}

// MarkImported sets the one-way imported flag
func (s *Store) MarkImported(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result, exists := s.results[id]
	if !exists {
		return domain.ErrResultNotFound
	}
	result.Imported = true
	result.UpdatedAt = time.Now()
	return nil
}

// MarkSkipped sets the skipped flag and reason
func (s *Store) MarkSkipped(ctx context.Context, id, reason string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result, exists := s.results[id]
	if !exists {
		return domain.ErrResultNotFound
	}
	result.Skipped = true
	result.SkipReason = reason
	result.UpdatedAt = time.Now()
	return nil
}

// CreateProduct stores a product row, silently skipping exact duplicates on
// (job, group, name, price, source)
func (s *Store) CreateProduct(ctx context.Context, product *domain.DiscoveryProduct) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, existing := range s.products {
		if existing.JobID == product.JobID &&
			existing.AlternativeGroup == product.AlternativeGroup &&
			existing.Name == product.Name &&
			existing.Price == product.Price &&
			existing.Source == product.Source {
			return nil
		}
	}
	stored := *product
	s.products[product.ID] = &stored
	return nil
}

// ListProductsByGroup returns all products of one alternative group
func (s *Store) ListProductsByGroup(ctx context.Context, alternativeGroup string) ([]*domain.DiscoveryProduct, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	products := make([]*domain.DiscoveryProduct, 0)
	for _, product := range s.products {
		if product.AlternativeGroup == alternativeGroup {
			copied := *product
			products = append(products, &copied)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Price < products[j].Price
	})
	return products, nil
}

// CreateVendor stores a new vendor row
func (s *Store) CreateVendor(ctx context.Context, vendor *domain.Vendor) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.vendors[vendor.ID]; exists {
		return fmt.Errorf("vendor %s already exists", vendor.ID)
	}
	stored := *vendor
	s.vendors[vendor.ID] = &stored
	return nil
}

// FindVendorByName matches case-insensitively on the exact vendor name
func (s *Store) FindVendorByName(ctx context.Context, name string) (*domain.Vendor, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(name))
	for _, vendor := range s.vendors {
		if strings.ToLower(vendor.Name) == needle {
			copied := *vendor
			return &copied, nil
		}
	}
	return nil, nil
}

// FindVendorByWebsite matches the normalized website as a substring in
// either direction
func (s *Store) FindVendorByWebsite(ctx context.Context, website string) (*domain.Vendor, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	needle := normalizeWebsite(website)
	if needle == "" {
		return nil, nil
	}
	for _, vendor := range s.vendors {
		stored := normalizeWebsite(vendor.Website)
		if stored == "" {
			continue
		}
		if strings.Contains(stored, needle) || strings.Contains(needle, stored) {
			copied := *vendor
			return &copied, nil
		}
	}
	return nil, nil
}

func normalizeWebsite(website string) string {
	normalized := strings.ToLower(strings.TrimSpace(website))
	normalized = strings.TrimPrefix(normalized, "https://")
	normalized = strings.TrimPrefix(normalized, "http://")
	normalized = strings.TrimPrefix(normalized, "www.")
	normalized = strings.TrimSuffix(normalized, "/")
	return normalized
}

// VendorCount returns the number of stored vendors (for tests/monitoring)
func (s *Store) VendorCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.vendors)
}

// Clear removes all rows
func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.jobs = make(map[string]*domain.DiscoveryJob)
	s.results = make(map[string]*domain.DiscoveryResult)
	s.products = make(map[string]*domain.DiscoveryProduct)
	s.vendors = make(map[string]*domain.Vendor)
}
