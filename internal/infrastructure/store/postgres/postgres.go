// Package postgres implements the persistence contracts over PostgreSQL
// via sqlx and the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/vendorscout/backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS discovery_jobs (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	need TEXT NOT NULL DEFAULT '',
	categories JSONB NOT NULL,
	countries JSONB NOT NULL,
	max_vendors_per_query INT NOT NULL,
	auto_import BOOLEAN NOT NULL,
	auto_import_threshold DOUBLE PRECISION NOT NULL,
	mode TEXT NOT NULL,
	total_found INT NOT NULL DEFAULT 0,
	total_new INT NOT NULL DEFAULT 0,
	total_skipped INT NOT NULL DEFAULT 0,
	total_imported INT NOT NULL DEFAULT 0,
	progress DOUBLE PRECISION NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	started_at TIMESTAMPTZ,
	completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS discovery_results (
	id TEXT PRIMARY KEY,
	job_id TEXT NOT NULL REFERENCES discovery_jobs(id),
	company_name TEXT NOT NULL,
	country TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	product_categories JSONB NOT NULL,
	certifications JSONB NOT NULL,
	company_size TEXT NOT NULL DEFAULT '',
	years_in_business INT NOT NULL DEFAULT 0,
	confidence DOUBLE PRECISION NOT NULL,
	imported BOOLEAN NOT NULL DEFAULT FALSE,
	skipped BOOLEAN NOT NULL DEFAULT FALSE,
	skip_reason TEXT NOT NULL DEFAULT '',
	price_min DOUBLE PRECISION,
	price_max DOUBLE PRECISION,
	price_currency TEXT NOT NULL DEFAULT '',
	price_raw JSONB,
	raw JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS discovery_products (
	id TEXT PRIMARY KEY,
	job_id TEXT NOT NULL REFERENCES discovery_jobs(id),
	result_id TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	name TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL,
	currency TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT '',
	source_url TEXT NOT NULL DEFAULT '',
	source_vendor TEXT NOT NULL DEFAULT '',
	alternative_group TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (job_id, alternative_group, name, price, source)
);

CREATE TABLE IF NOT EXISTS vendors (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	country TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	product_categories JSONB NOT NULL,
	certifications JSONB NOT NULL,
	company_size TEXT NOT NULL DEFAULT '',
	years_in_business INT NOT NULL DEFAULT 0,
	source TEXT NOT NULL DEFAULT '',
	contacts JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`

// Store is the PostgreSQL persistence gateway
type Store struct {
	db *sqlx.DB
}

// NewStore connects to PostgreSQL and ensures the schema exists
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

type jobRow struct {
	ID                  string          `db:"id"`
	Status              string          `db:"status"`
	Need                string          `db:"need"`
	Categories          json.RawMessage `db:"categories"`
	Countries           json.RawMessage `db:"countries"`
	MaxVendorsPerQuery  int             `db:"max_vendors_per_query"`
	AutoImport          bool            `db:"auto_import"`
	AutoImportThreshold float64         `db:"auto_import_threshold"`
	Mode                string          `db:"mode"`
	TotalFound          int             `db:"total_found"`
	TotalNew            int             `db:"total_new"`
	TotalSkipped        int             `db:"total_skipped"`
	TotalImported       int             `db:"total_imported"`
	Progress            float64         `db:"progress"`
	Error               string          `db:"error"`
	CreatedAt           sql.NullTime    `db:"created_at"`
	StartedAt           sql.NullTime    `db:"started_at"`
	CompletedAt         sql.NullTime    `db:"completed_at"`
}

func (r *jobRow) toDomain() *domain.DiscoveryJob {
	job := &domain.DiscoveryJob{
		ID:                  r.ID,
		Status:              domain.JobStatus(r.Status),
		Need:                r.Need,
		Categories:          decodeStrings(r.Categories),
		Countries:           decodeStrings(r.Countries),
		MaxVendorsPerQuery:  r.MaxVendorsPerQuery,
		AutoImport:          r.AutoImport,
		AutoImportThreshold: r.AutoImportThreshold,
		Mode:                domain.DiscoveryMode(r.Mode),
		TotalFound:          r.TotalFound,
		TotalNew:            r.TotalNew,
		TotalSkipped:        r.TotalSkipped,
		TotalImported:       r.TotalImported,
		Progress:            r.Progress,
		Error:               r.Error,
	}
	if r.CreatedAt.Valid {
		job.CreatedAt = r.CreatedAt.Time
	}
	if r.StartedAt.Valid {
		t := r.StartedAt.Time
		job.StartedAt = &t
	}
	if r.CompletedAt.Valid {
		t := r.CompletedAt.Time
		job.CompletedAt = &t
	}
	return job
}

// CreateJob inserts a new job row
func (s *Store) CreateJob(ctx context.Context, job *domain.DiscoveryJob) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO discovery_jobs
		 (id, status, need, categories, countries, max_vendors_per_query,
		  auto_import, auto_import_threshold, mode, progress, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		job.ID, job.Status, job.Need, encodeStrings(job.Categories), encodeStrings(job.Countries),
		job.MaxVendorsPerQuery, job.AutoImport, job.AutoImportThreshold, job.Mode,
		job.Progress, job.Error, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("create job %s: %w", job.ID, err)
	}
	return nil
}

// GetJob loads one job row
func (s *Store) GetJob(ctx context.Context, id string) (*domain.DiscoveryJob, error) {
	var row jobRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM discovery_jobs WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// ListJobs returns all jobs, newest first
func (s *Store) ListJobs(ctx context.Context) ([]*domain.DiscoveryJob, error) {
	var rows []jobRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM discovery_jobs ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	jobs := make([]*domain.DiscoveryJob, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, rows[i].toDomain())
	}
	return jobs, nil
}

// UpdateJob updates the mutable job fields. Counters are not written here;
// they move only through IncrementCounters.
func (s *Store) UpdateJob(ctx context.Context, job *domain.DiscoveryJob) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE discovery_jobs
		 SET status = $2, progress = GREATEST(progress, $3), error = $4,
		     started_at = COALESCE($5, started_at), completed_at = COALESCE($6, completed_at)
		 WHERE id = $1`,
		job.ID, job.Status, job.Progress, job.Error, job.StartedAt, job.CompletedAt)
	if err != nil {
		return fmt.Errorf("update job %s: %w", job.ID, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// IncrementCounters applies the delta atomically in one statement
func (s *Store) IncrementCounters(ctx context.Context, jobID string, delta domain.CounterDelta) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE discovery_jobs
		 SET total_found = total_found + $2, total_new = total_new + $3,
		     total_skipped = total_skipped + $4, total_imported = total_imported + $5
		 WHERE id = $1`,
		jobID, delta.Found, delta.New, delta.Skipped, delta.Imported)
	if err != nil {
		return fmt.Errorf("increment counters for job %s: %w", jobID, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// UpdateProgress advances the progress value, never backwards
func (s *Store) UpdateProgress(ctx context.Context, jobID string, progress float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE discovery_jobs SET progress = GREATEST(progress, $2) WHERE id = $1`,
		jobID, progress)
	if err != nil {
		return fmt.Errorf("update progress for job %s: %w", jobID, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

type resultRow struct {
	ID                string          `db:"id"`
	JobID             string          `db:"job_id"`
	CompanyName       string          `db:"company_name"`
	Country           string          `db:"country"`
	Website           string          `db:"website"`
	Email             string          `db:"email"`
	Phone             string          `db:"phone"`
	Description       string          `db:"description"`
	ProductCategories json.RawMessage `db:"product_categories"`
	Certifications    json.RawMessage `db:"certifications"`
	CompanySize       string          `db:"company_size"`
	YearsInBusiness   int             `db:"years_in_business"`
	Confidence        float64         `db:"confidence"`
	Imported          bool            `db:"imported"`
	Skipped           bool            `db:"skipped"`
	SkipReason        string          `db:"skip_reason"`
	PriceMin          sql.NullFloat64 `db:"price_min"`
	PriceMax          sql.NullFloat64 `db:"price_max"`
	PriceCurrency     string          `db:"price_currency"`
	PriceRaw          json.RawMessage `db:"price_raw"`
	Raw               json.RawMessage `db:"raw"`
	CreatedAt         sql.NullTime    `db:"created_at"`
	UpdatedAt         sql.NullTime    `db:"updated_at"`
}

func (r *resultRow) toDomain() *domain.DiscoveryResult {
	result := &domain.DiscoveryResult{
		ID:                r.ID,
		JobID:             r.JobID,
		CompanyName:       r.CompanyName,
		Country:           r.Country,
		Website:           r.Website,
		Email:             r.Email,
		Phone:             r.Phone,
		Description:       r.Description,
		ProductCategories: decodeStrings(r.ProductCategories),
		Certifications:    decodeStrings(r.Certifications),
		CompanySize:       r.CompanySize,
		YearsInBusiness:   r.YearsInBusiness,
		Confidence:        r.Confidence,
		Imported:          r.Imported,
		Skipped:           r.Skipped,
		SkipReason:        r.SkipReason,
		PriceCurrency:     r.PriceCurrency,
		PriceRaw:          decodeMap(r.PriceRaw),
		Raw:               decodeMap(r.Raw),
	}
	if r.PriceMin.Valid {
		v := r.PriceMin.Float64
		result.PriceMin = &v
	}
	if r.PriceMax.Valid {
		v := r.PriceMax.Float64
		result.PriceMax = &v
	}
	if r.CreatedAt.Valid {
		result.CreatedAt = r.CreatedAt.Time
	}
	if r.UpdatedAt.Valid {
		result.UpdatedAt = r.UpdatedAt.Time
	}
	return result
}

// CreateResult inserts a new result row
func (s *Store) CreateResult(ctx context.Context, result *domain.DiscoveryResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO discovery_results
		 (id, job_id, company_name, country, website, email, phone, description,
		  product_categories, certifications, company_size, years_in_business,
		  confidence, imported, skipped, skip_reason, price_min, price_max,
		  price_currency, price_raw, raw, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		         $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		result.ID, result.JobID, result.CompanyName, result.Country, result.Website,
		result.Email, result.Phone, result.Description,
		encodeStrings(result.ProductCategories), encodeStrings(result.Certifications),
		result.CompanySize, result.YearsInBusiness, result.Confidence,
		result.Imported, result.Skipped, result.SkipReason,
		result.PriceMin, result.PriceMax, result.PriceCurrency,
		encodeMap(result.PriceRaw), encodeMap(result.Raw),
		result.CreatedAt, result.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create result %s: %w", result.ID, err)
	}
	return nil
}

// GetResult loads one result row
func (s *Store) GetResult(ctx context.Context, id string) (*domain.DiscoveryResult, error) {
	var row resultRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM discovery_results WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("get result %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// ListResultsByJob returns all results of one job, oldest first
func (s *Store) ListResultsByJob(ctx context.Context, jobID string) ([]*domain.DiscoveryResult, error) {
	var rows []resultRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM discovery_results WHERE job_id = $1 ORDER BY created_at ASC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list results for job %s: %w", jobID, err)
	}
	results := make([]*domain.DiscoveryResult, 0, len(rows))
	for i := range rows {
		results = append(results, rows[i].toDomain())
	}
	return results, nil
}

// FindResultByJobAndName matches company names case-insensitively within
// one job
func (s *Store) FindResultByJobAndName(ctx context.Context, jobID, companyName string) (*domain.DiscoveryResult, error) {
	var row resultRow
	err := s.db.GetContext(ctx, &row,
		`SELECT * FROM discovery_results WHERE job_id = $1 AND LOWER(company_name) = LOWER($2) LIMIT 1`,
		jobID, strings.TrimSpace(companyName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find result by name in job %s: %w", jobID, err)
	}
	return row.toDomain(), nil
}

// MarkImported sets the one-way imported flag
func (s *Store) MarkImported(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE discovery_results SET imported = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark result %s imported: %w", id, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.ErrResultNotFound
	}
	return nil
}

// MarkSkipped sets the skipped flag and reason
func (s *Store) MarkSkipped(ctx context.Context, id, reason string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE discovery_results SET skipped = TRUE, skip_reason = $2, updated_at = NOW() WHERE id = $1`,
		id, reason)
	if err != nil {
		return fmt.Errorf("mark result %s skipped: %w", id, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.ErrResultNotFound
	}
	return nil
}

// CreateProduct inserts a product row, silently skipping exact duplicates
func (s *Store) CreateProduct(ctx context.Context, product *domain.DiscoveryProduct) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO discovery_products
		 (id, job_id, result_id, category, name, price, currency, source,
		  source_url, source_vendor, alternative_group, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (job_id, alternative_group, name, price, source) DO NOTHING`,
		product.ID, product.JobID, product.ResultID, product.Category, product.Name,
		product.Price, product.Currency, product.Source, product.SourceURL,
		product.SourceVendor, product.AlternativeGroup, product.CreatedAt)
	if err != nil {
		return fmt.Errorf("create product %s: %w", product.ID, err)
	}
	return nil
}

// ListProductsByGroup returns all products of one alternative group
func (s *Store) ListProductsByGroup(ctx context.Context, alternativeGroup string) ([]*domain.DiscoveryProduct, error) {
	var products []*domain.DiscoveryProduct
	var rows []productRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM discovery_products WHERE alternative_group = $1 ORDER BY price ASC`,
		alternativeGroup)
	if err != nil {
		return nil, fmt.Errorf("list products for group %s: %w", alternativeGroup, err)
	}
	for i := range rows {
		products = append(products, rows[i].toDomain())
	}
	return products, nil
}

type productRow struct {
	ID               string       `db:"id"`
	JobID            string       `db:"job_id"`
	ResultID         string       `db:"result_id"`
	Category         string       `db:"category"`
	Name             string       `db:"name"`
	Price            float64      `db:"price"`
	Currency         string       `db:"currency"`
	Source           string       `db:"source"`
	SourceURL        string       `db:"source_url"`
	SourceVendor     string       `db:"source_vendor"`
	AlternativeGroup string       `db:"alternative_group"`
	CreatedAt        sql.NullTime `db:"created_at"`
}

func (r *productRow) toDomain() *domain.DiscoveryProduct {
	product := &domain.DiscoveryProduct{
		ID:               r.ID,
		JobID:            r.JobID,
		ResultID:         r.ResultID,
		Category:         r.Category,
		Name:             r.Name,
		Price:            r.Price,
		Currency:         r.Currency,
		Source:           r.Source,
		SourceURL:        r.SourceURL,
		SourceVendor:     r.SourceVendor,
		AlternativeGroup: r.AlternativeGroup,
	}
	if r.CreatedAt.Valid {
		product.CreatedAt = r.CreatedAt.Time
	}
	return product
}

type vendorRow struct {
	ID                string          `db:"id"`
	Name              string          `db:"name"`
	Country           string          `db:"country"`
	Website           string          `db:"website"`
	Email             string          `db:"email"`
	Phone             string          `db:"phone"`
	Description       string          `db:"description"`
	ProductCategories json.RawMessage `db:"product_categories"`
	Certifications    json.RawMessage `db:"certifications"`
	CompanySize       string          `db:"company_size"`
	YearsInBusiness   int             `db:"years_in_business"`
	Source            string          `db:"source"`
	Contacts          json.RawMessage `db:"contacts"`
	CreatedAt         sql.NullTime    `db:"created_at"`
}

func (r *vendorRow) toDomain() *domain.Vendor {
	vendor := &domain.Vendor{
		ID:                r.ID,
		Name:              r.Name,
		Country:           r.Country,
		Website:           r.Website,
		Email:             r.Email,
		Phone:             r.Phone,
		Description:       r.Description,
		ProductCategories: decodeStrings(r.ProductCategories),
		Certifications:    decodeStrings(r.Certifications),
		CompanySize:       r.CompanySize,
		YearsInBusiness:   r.YearsInBusiness,
		Source:            r.Source,
	}
	_ = json.Unmarshal(r.Contacts, &vendor.Contacts)
	if r.CreatedAt.Valid {
		vendor.CreatedAt = r.CreatedAt.Time
	}
	return vendor
}

// CreateVendor inserts a new vendor row
func (s *Store) CreateVendor(ctx context.Context, vendor *domain.Vendor) error {
	contacts, err := json.Marshal(vendor.Contacts)
	if err != nil {
		return fmt.Errorf("marshal contacts: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO vendors
		 (id, name, country, website, email, phone, description, product_categories,
		  certifications, company_size, years_in_business, source, contacts, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		vendor.ID, vendor.Name, vendor.Country, vendor.Website, vendor.Email,
		vendor.Phone, vendor.Description, encodeStrings(vendor.ProductCategories),
		encodeStrings(vendor.Certifications), vendor.CompanySize, vendor.YearsInBusiness,
		vendor.Source, contacts, vendor.CreatedAt)
	if err != nil {
		return fmt.Errorf("create vendor %s: %w", vendor.ID, err)
	}
	return nil
}

// FindVendorByName matches case-insensitively on the exact vendor name
func (s *Store) FindVendorByName(ctx context.Context, name string) (*domain.Vendor, error) {
	var row vendorRow
	err := s.db.GetContext(ctx, &row,
		`SELECT * FROM vendors WHERE LOWER(name) = LOWER($1) LIMIT 1`, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find vendor by name: %w", err)
	}
	return row.toDomain(), nil
}

// FindVendorByWebsite matches the normalized website as a substring in
// either direction
func (s *Store) FindVendorByWebsite(ctx context.Context, website string) (*domain.Vendor, error) {
	needle := normalizeWebsite(website)
	if needle == "" {
		return nil, nil
	}

	var row vendorRow
	err := s.db.GetContext(ctx, &row,
		`SELECT * FROM vendors
		 WHERE website <> ''
		   AND (POSITION($1 IN LOWER(REPLACE(REPLACE(REPLACE(website, 'https://', ''), 'http://', ''), 'www.', ''))) > 0
		     OR POSITION(LOWER(REPLACE(REPLACE(REPLACE(website, 'https://', ''), 'http://', ''), 'www.', '')) IN $1) > 0)
		 LIMIT 1`, needle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find vendor by website: %w", err)
	}
	return row.toDomain(), nil
}

func normalizeWebsite(website string) string {
	normalized := strings.ToLower(strings.TrimSpace(website))
	normalized = strings.TrimPrefix(normalized, "https://")
	normalized = strings.TrimPrefix(normalized, "http://")
	normalized = strings.TrimPrefix(normalized, "www.")
	normalized = strings.TrimSuffix(normalized, "/")
	return normalized
}

// encodeStrings serializes a string slice to JSON, mapping nil to []
func encodeStrings(values []string) []byte {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return data
}

func decodeStrings(data []byte) []string {
	values := []string{}
	_ = json.Unmarshal(data, &values)
	return values
}

// encodeMap serializes an audit payload, mapping nil to SQL NULL
func encodeMap(values map[string]any) any {
	if values == nil {
		return nil
	}
	data, _ := json.Marshal(values)
	return data
}

func decodeMap(data []byte) map[string]any {
	if len(data) == 0 {
		return nil
	}
	var values map[string]any
	_ = json.Unmarshal(data, &values)
	return values
}
