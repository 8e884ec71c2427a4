package domain

import "context"

// JobStore defines persistence for discovery jobs
type JobStore interface {
	CreateJob(ctx context.Context, job *DiscoveryJob) error
	GetJob(ctx context.Context, id string) (*DiscoveryJob, error)
	ListJobs(ctx context.Context) ([]*DiscoveryJob, error)
	UpdateJob(ctx context.Context, job *DiscoveryJob) error
	// IncrementCounters applies the delta atomically. Safe under repeated
	// calls from one job's sequential batches.
	IncrementCounters(ctx context.Context, jobID string, delta CounterDelta) error
	UpdateProgress(ctx context.Context, jobID string, progress float64) error
}

// ResultStore defines persistence for discovery results
type ResultStore interface {
	CreateResult(ctx context.Context, result *DiscoveryResult) error
	GetResult(ctx context.Context, id string) (*DiscoveryResult, error)
	ListResultsByJob(ctx context.Context, jobID string) ([]*DiscoveryResult, error)
	// FindResultByJobAndName matches company names case-insensitively
	// within one job
	FindResultByJobAndName(ctx context.Context, jobID, companyName string) (*DiscoveryResult, error)
	MarkImported(ctx context.Context, id string) error
	MarkSkipped(ctx context.Context, id, reason string) error
}

// ProductStore defines persistence for discovered products
type ProductStore interface {
	// CreateProduct skips silently when an identical product row
	// (job, group, name, price, source) already exists
	CreateProduct(ctx context.Context, product *DiscoveryProduct) error
	ListProductsByGroup(ctx context.Context, alternativeGroup string) ([]*DiscoveryProduct, error)
}

// VendorStore defines the vendor lookups and writes discovery needs
type VendorStore interface {
	CreateVendor(ctx context.Context, vendor *Vendor) error
	// FindVendorByName matches case-insensitively on the exact name
	FindVendorByName(ctx context.Context, name string) (*Vendor, error)
	// FindVendorByWebsite matches on normalized website (scheme, www.
	// prefix and trailing slash stripped) as a substring in either direction
	FindVendorByWebsite(ctx context.Context, website string) (*Vendor, error)
}

// Store bundles the four persistence contracts the pipeline consumes
type Store interface {
	JobStore
	ResultStore
	ProductStore
	VendorStore
}
