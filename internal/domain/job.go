package domain

import "time"

// JobStatus represents the lifecycle state of a discovery job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// IsTerminal reports whether the status is a final state
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

// DiscoveryMode identifies which sourcing strategy a job uses.
// Selected once at job creation and persisted for reproducibility.
type DiscoveryMode string

const (
	ModeMock       DiscoveryMode = "mock"
	ModeAIResearch DiscoveryMode = "ai-research"
	ModeWebSearch  DiscoveryMode = "web-search"
)

// DiscoveryJob represents one vendor discovery run over a set of
// product categories and target countries
type DiscoveryJob struct {
	ID     string    `json:"id"`
	Status JobStatus `json:"status"`

	Need                string        `json:"need,omitempty"`
	Categories          []string      `json:"productCategories"`
	Countries           []string      `json:"targetCountries"`
	MaxVendorsPerQuery  int           `json:"maxVendorsPerQuery"`
	AutoImport          bool          `json:"autoImport"`
	AutoImportThreshold float64       `json:"autoImportThreshold"`
	Mode                DiscoveryMode `json:"discoveryMode"`

	TotalFound    int `json:"totalFound"`
	TotalNew      int `json:"totalNew"`
	TotalSkipped  int `json:"totalSkipped"`
	TotalImported int `json:"totalImported"`

	// Progress is 0-100. It is non-decreasing while the job is running
	// and reaches 100 only together with JobStatusCompleted.
	Progress float64 `json:"progress"`

	// Error is set only when Status is JobStatusFailed
	Error string `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CounterDelta is a set of per-job counter increments applied atomically
// by the store
type CounterDelta struct {
	Found    int
	New      int
	Skipped  int
	Imported int
}

// SearchQuery is one planned sourcing task for a (category, country) pair
type SearchQuery struct {
	Category string `json:"category"`
	Country  string `json:"country"`
	Query    string `json:"query"`
}
