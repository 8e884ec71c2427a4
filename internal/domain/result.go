package domain

import "time"

// Candidate is a sanitized vendor candidate produced by a sourcing strategy.
// Every field has passed the sanitization boundary; Raw preserves the
// provider payload (including unknown fields) for audit.
type Candidate struct {
	CompanyName       string         `json:"companyName"`
	Country           string         `json:"country"`
	Website           string         `json:"website,omitempty"`
	Email             string         `json:"email,omitempty"`
	Phone             string         `json:"phone,omitempty"`
	Description       string         `json:"description,omitempty"`
	ProductCategories []string       `json:"productCategories"`
	Certifications    []string       `json:"certifications"`
	CompanySize       string         `json:"companySize,omitempty"`
	YearsInBusiness   int            `json:"yearsInBusiness,omitempty"`
	Confidence        float64        `json:"confidence"` // always within [0,1]
	Raw               map[string]any `json:"raw,omitempty"`
}

// DiscoveryResult is one persisted candidate belonging to a job.
// Imported and Skipped are mutually exclusive; import is a one-way transition.
type DiscoveryResult struct {
	ID    string `json:"id"`
	JobID string `json:"jobId"`

	CompanyName       string   `json:"companyName"`
	Country           string   `json:"country"`
	Website           string   `json:"website,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Description       string   `json:"description,omitempty"`
	ProductCategories []string `json:"productCategories"`
	Certifications    []string `json:"certifications"`
	CompanySize       string   `json:"companySize,omitempty"`
	YearsInBusiness   int      `json:"yearsInBusiness,omitempty"`
	Confidence        float64  `json:"confidence"`

	Imported   bool   `json:"imported"`
	Skipped    bool   `json:"skipped"`
	SkipReason string `json:"skipReason,omitempty"`

	// Price fields are set only when enrichment produced at least one sample
	PriceMin      *float64       `json:"priceMin,omitempty"`
	PriceMax      *float64       `json:"priceMax,omitempty"`
	PriceCurrency string         `json:"priceCurrency,omitempty"`
	PriceRaw      map[string]any `json:"priceRaw,omitempty"`

	Raw map[string]any `json:"raw,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanImport reports whether the result may still be imported
func (r *DiscoveryResult) CanImport() bool {
	return !r.Imported && !r.Skipped
}

// DiscoveryProduct is one discovered offering tied to a job and optionally a
// result. Products sharing an AlternativeGroup are interchangeable offers for
// the same (category, country) need. Append-only.
type DiscoveryProduct struct {
	ID               string    `json:"id"`
	JobID            string    `json:"jobId"`
	ResultID         string    `json:"resultId,omitempty"`
	Category         string    `json:"category"`
	Name             string    `json:"name"`
	Price            float64   `json:"price"` // always > 0
	Currency         string    `json:"currency"`
	Source           string    `json:"source"`
	SourceURL        string    `json:"sourceUrl,omitempty"`
	SourceVendor     string    `json:"sourceVendor,omitempty"`
	AlternativeGroup string    `json:"alternativeGroup"`
	CreatedAt        time.Time `json:"createdAt"`
}

// BatchImportOutcome is the aggregate response of a batch import operation
type BatchImportOutcome struct {
	ImportedCount int                `json:"importedCount"`
	FailedCount   int                `json:"failedCount"`
	Results       []*DiscoveryResult `json:"results"`
	Errors        []BatchImportError `json:"errors"`
}

// BatchImportError records why one result in a batch import failed
type BatchImportError struct {
	ResultID string `json:"resultId"`
	Error    string `json:"error"`
}
