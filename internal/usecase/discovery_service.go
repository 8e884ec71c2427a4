package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vendorscout/backend/internal/domain"
)

// DiscoveryServiceConfig holds configuration for the discovery pipeline
type DiscoveryServiceConfig struct {
	BatchSize  int
	BatchDelay time.Duration
}

// CreateJobInput is the validated job-creation request
type CreateJobInput struct {
	Need                string   `json:"need"`
	ProductCategories   []string `json:"productCategories" binding:"required,min=1"`
	TargetCountries     []string `json:"targetCountries" binding:"required,min=1"`
	MaxVendorsPerQuery  int      `json:"maxVendorsPerQuery"`
	AutoImport          bool     `json:"autoImport"`
	AutoImportThreshold *float64 `json:"autoImportThreshold"`
}

// JobView is a job plus its derived liveness from the registry
type JobView struct {
	*domain.DiscoveryJob
	IsRunning bool `json:"isRunning"`
}

// DiscoveryService orchestrates vendor discovery jobs: planning, sourcing,
// enrichment, deduplication, persistence and auto-import
type DiscoveryService struct {
	store    domain.Store
	registry *JobRegistry
	strategy domain.SourcingStrategy
	enricher domain.PriceEnricher
	contacts domain.ContactExtractor
	dedup    *Deduplicator

	// jobLocks serializes dedup-check-then-persist per job, so that queries
	// of one batch running concurrently cannot both see the same company
	// name as new
	jobLocks sync.Map

	batchSize  int
	batchDelay time.Duration
}

// NewDiscoveryService creates the orchestrator. enricher and contacts may be
// nil; the corresponding pipeline steps are then skipped.
func NewDiscoveryService(
	store domain.Store,
	registry *JobRegistry,
	strategy domain.SourcingStrategy,
	enricher domain.PriceEnricher,
	contacts domain.ContactExtractor,
	config DiscoveryServiceConfig,
) *DiscoveryService {
	batchSize := config.BatchSize
	if batchSize < 1 {
		batchSize = 3
	}

	return &DiscoveryService{
		store:      store,
		registry:   registry,
		strategy:   strategy,
		enricher:   enricher,
		contacts:   contacts,
		dedup:      NewDeduplicator(store, store),
		batchSize:  batchSize,
		batchDelay: config.BatchDelay,
	}
}

// CreateJob validates the input, persists a pending job with the sourcing
// mode stamped on it, and launches the pipeline in the background. It
// returns as soon as the job row exists; it never waits for the run.
func (s *DiscoveryService) CreateJob(ctx context.Context, input *CreateJobInput) (*domain.DiscoveryJob, error) {
	if err := validateCreateJobInput(input); err != nil {
		return nil, err
	}

	maxVendors := input.MaxVendorsPerQuery
	if maxVendors == 0 {
		maxVendors = 10
	}

	threshold := 0.8
	if input.AutoImportThreshold != nil {
		threshold = *input.AutoImportThreshold
	}

	job := &domain.DiscoveryJob{
		ID:                  uuid.NewString(),
		Status:              domain.JobStatusPending,
		Need:                input.Need,
		Categories:          input.ProductCategories,
		Countries:           input.TargetCountries,
		MaxVendorsPerQuery:  maxVendors,
		AutoImport:          input.AutoImport,
		AutoImportThreshold: threshold,
		Mode:                s.strategy.Mode(),
		CreatedAt:           time.Now(),
	}

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	log.Printf("[Discovery] job %s created: %d categories x %d countries, mode=%s",
		job.ID, len(job.Categories), len(job.Countries), job.Mode)

	s.registry.Start(job.ID, func(runCtx context.Context) {
		s.run(runCtx, job.ID)
	})

	return job, nil
}

// validateCreateJobInput enforces the job-creation contract before anything
// is persisted
func validateCreateJobInput(input *CreateJobInput) error {
	if input == nil {
		return domain.ErrInvalidRequest
	}
	if len(input.ProductCategories) == 0 {
		return &domain.ValidationError{Field: "productCategories", Message: "at least one category is required"}
	}
	if len(input.TargetCountries) == 0 {
		return &domain.ValidationError{Field: "targetCountries", Message: "at least one country is required"}
	}
	if input.MaxVendorsPerQuery < 0 || input.MaxVendorsPerQuery > 50 {
		return &domain.ValidationError{Field: "maxVendorsPerQuery", Message: "must be within [1,50]"}
	}
	if input.AutoImportThreshold != nil && (*input.AutoImportThreshold < 0 || *input.AutoImportThreshold > 1) {
		return &domain.ValidationError{Field: "autoImportThreshold", Message: "must be within [0,1]"}
	}
	return nil
}

// run drives one job from RUNNING to a terminal state. It owns all job
// mutations after creation. Errors here never propagate to the request that
// created the job; the error boundary is the job row itself.
//
// Known race, left unresolved: two concurrent jobs over overlapping
// categories can each persist the same vendor as new. There is no cross-job
// dedup lock.
func (s *DiscoveryService) run(ctx context.Context, jobID string) {
	job, err := s.store.GetJob(context.Background(), jobID)
	if err != nil {
		log.Printf("[Discovery] job %s: cannot load for run: %v", jobID, err)
		return
	}

	now := time.Now()
	job.Status = domain.JobStatusRunning
	job.StartedAt = &now
	if err := s.store.UpdateJob(context.Background(), job); err != nil {
		log.Printf("[Discovery] job %s: cannot mark running: %v", jobID, err)
	}

	runErr := s.runPipeline(ctx, job)
	s.finalize(job, runErr)
}

// runPipeline executes the planned queries batch by batch
func (s *DiscoveryService) runPipeline(ctx context.Context, job *domain.DiscoveryJob) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pipeline panic: %v", rec)
		}
	}()

	queries := PlanQueries(job.Categories, job.Countries)
	log.Printf("[Discovery] job %s: %d queries planned", job.ID, len(queries))

	return RunBatches(ctx, queries, BatchOptions[domain.SearchQuery]{
		BatchSize: s.batchSize,
		Delay:     s.batchDelay,
		Process: func(ctx context.Context, query domain.SearchQuery) error {
			return s.processQuery(ctx, job, query)
		},
		OnProgress: func(completed, total int) {
			pct := float64(completed) / float64(total) * 100
			// 100 is reserved for the terminal completed update
			if pct > 99 {
				pct = 99
			}
			if err := s.store.UpdateProgress(context.Background(), job.ID, pct); err != nil {
				log.Printf("[Discovery] job %s: progress update failed: %v", job.ID, err)
			}
		},
	})
}

// finalize persists the terminal state. Persistence failures here are logged
// and ignored: no caller is waiting synchronously, and the counters already
// written stand.
func (s *DiscoveryService) finalize(job *domain.DiscoveryJob, runErr error) {
	ctx := context.Background()

	final, err := s.store.GetJob(ctx, job.ID)
	if err != nil {
		log.Printf("[Discovery] job %s: cannot load for finalize: %v", job.ID, err)
		final = job
	}

	now := time.Now()
	final.CompletedAt = &now

	switch {
	case runErr == nil:
		final.Status = domain.JobStatusCompleted
		final.Progress = 100
	case errors.Is(runErr, domain.ErrJobCancelled):
		final.Status = domain.JobStatusCancelled
	default:
		final.Status = domain.JobStatusFailed
		final.Error = runErr.Error()
	}

	if err := s.store.UpdateJob(ctx, final); err != nil {
		log.Printf("[Discovery] job %s: finalize persist failed (ignored): %v", final.ID, err)
	}
	s.jobLocks.Delete(final.ID)

	log.Printf("[Discovery] job %s finished: status=%s found=%d new=%d skipped=%d imported=%d",
		final.ID, final.Status, final.TotalFound, final.TotalNew, final.TotalSkipped, final.TotalImported)
}

// processQuery handles one planned (category, country) query: source
// candidates, enrich prices, then dedup + persist + maybe auto-import each
// candidate
func (s *DiscoveryService) processQuery(ctx context.Context, job *domain.DiscoveryJob, query domain.SearchQuery) error {
	candidates, err := s.strategy.Search(ctx, query.Category, query.Country, job.MaxVendorsPerQuery)
	if err != nil {
		return fmt.Errorf("sourcing %q: %w", query.Query, err)
	}

	intel := s.enrichPrices(ctx, job, query)

	for i := range candidates {
		candidate := &candidates[i]
		if err := s.processCandidate(ctx, job, query, candidate, intel); err != nil {
			log.Printf("[Discovery] job %s: candidate %q dropped: %v", job.ID, candidate.CompanyName, err)
		}
	}

	return nil
}

// enrichPrices runs optional price enrichment and persists the kept entries
// as discovery products. Failures degrade to no price data.
func (s *DiscoveryService) enrichPrices(ctx context.Context, job *domain.DiscoveryJob, query domain.SearchQuery) *domain.PriceIntelligence {
	if s.enricher == nil || !s.enricher.Available() {
		return nil
	}

	intel, err := s.enricher.Enrich(ctx, query.Category, query.Country)
	if err != nil {
		log.Printf("[Discovery] job %s: price enrichment failed for %s/%s: %v",
			job.ID, query.Category, query.Country, err)
		return nil
	}

	group := AlternativeGroup(query.Category, query.Country)
	for _, entry := range intel.Entries {
		product := &domain.DiscoveryProduct{
			ID:               uuid.NewString(),
			JobID:            job.ID,
			Category:         query.Category,
			Name:             entry.Title,
			Price:            entry.Price,
			Currency:         entry.Currency,
			Source:           entry.Source,
			SourceURL:        entry.URL,
			SourceVendor:     entry.Vendor,
			AlternativeGroup: group,
			CreatedAt:        time.Now(),
		}
		if err := s.store.CreateProduct(ctx, product); err != nil {
			log.Printf("[Discovery] job %s: product %q not stored: %v", job.ID, entry.Title, err)
		}
	}

	return intel
}

// jobLock returns the candidate-processing mutex of one job, creating it on
// first use. Finalize drops the entry.
func (s *DiscoveryService) jobLock(jobID string) *sync.Mutex {
	lock, _ := s.jobLocks.LoadOrStore(jobID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// AlternativeGroup builds the category+country key that clusters
// interchangeable discovered offerings
func AlternativeGroup(category, country string) string {
	return category + "-" + country
}

// processCandidate persists one candidate as a new or skipped result and
// applies the auto-import decision
func (s *DiscoveryService) processCandidate(
	ctx context.Context,
	job *domain.DiscoveryJob,
	query domain.SearchQuery,
	candidate *domain.Candidate,
	intel *domain.PriceIntelligence,
) error {
	lock := s.jobLock(job.ID)
	lock.Lock()
	defer lock.Unlock()

	dedupResult, err := s.dedup.Check(ctx, job.ID, candidate)
	if err != nil {
		return fmt.Errorf("dedup check: %w", err)
	}

	result := resultFromCandidate(job.ID, candidate)
	if intel != nil && intel.Samples > 0 {
		min, max := intel.Min, intel.Max
		result.PriceMin = &min
		result.PriceMax = &max
		result.PriceCurrency = intel.Currency
		result.PriceRaw = map[string]any{
			"samples": intel.Samples,
			"avg":     intel.Avg,
			"group":   AlternativeGroup(query.Category, query.Country),
		}
	}

	if dedupResult.IsDuplicate {
		result.Skipped = true
		result.SkipReason = dedupResult.Reason
	}

	if err := s.store.CreateResult(ctx, result); err != nil {
		return fmt.Errorf("create result: %w", err)
	}

	delta := domain.CounterDelta{Found: 1}
	if result.Skipped {
		delta.Skipped = 1
	} else {
		delta.New = 1
	}
	if err := s.store.IncrementCounters(ctx, job.ID, delta); err != nil {
		return fmt.Errorf("increment counters: %w", err)
	}

	if !result.Skipped && job.AutoImport && candidate.Confidence >= job.AutoImportThreshold {
		// Auto-import failures never escalate: the result stays available
		// for manual import
		if _, err := s.importResult(ctx, result); err != nil {
			log.Printf("[Discovery] WARNING: job %s: auto-import of %q failed: %v",
				job.ID, result.CompanyName, err)
		}
	}

	return nil
}

// resultFromCandidate maps a sanitized candidate onto a fresh result row
func resultFromCandidate(jobID string, candidate *domain.Candidate) *domain.DiscoveryResult {
	now := time.Now()
	return &domain.DiscoveryResult{
		ID:                uuid.NewString(),
		JobID:             jobID,
		CompanyName:       candidate.CompanyName,
		Country:           candidate.Country,
		Website:           candidate.Website,
		Email:             candidate.Email,
		Phone:             candidate.Phone,
		Description:       candidate.Description,
		ProductCategories: candidate.ProductCategories,
		Certifications:    candidate.Certifications,
		CompanySize:       candidate.CompanySize,
		YearsInBusiness:   candidate.YearsInBusiness,
		Confidence:        candidate.Confidence,
		Raw:               candidate.Raw,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// GetJob returns a job together with its registry liveness
func (s *DiscoveryService) GetJob(ctx context.Context, jobID string) (*JobView, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &JobView{DiscoveryJob: job, IsRunning: s.registry.IsRunning(jobID)}, nil
}

// ListJobs returns all jobs with their registry liveness
func (s *DiscoveryService) ListJobs(ctx context.Context) ([]*JobView, error) {
	jobs, err := s.store.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*JobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, &JobView{DiscoveryJob: job, IsRunning: s.registry.IsRunning(job.ID)})
	}
	return views, nil
}

// ListResults returns all results of a job
func (s *DiscoveryService) ListResults(ctx context.Context, jobID string) ([]*domain.DiscoveryResult, error) {
	if _, err := s.store.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	return s.store.ListResultsByJob(ctx, jobID)
}

// CancelJob requests cooperative cancellation. Valid only while the job is
// pending or running; the in-flight batch still runs to completion.
func (s *DiscoveryService) CancelJob(ctx context.Context, jobID string) error {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	if job.Status.IsTerminal() {
		return fmt.Errorf("%w: job is already %s", domain.ErrConflict, job.Status)
	}

	if s.registry.Cancel(jobID) {
		log.Printf("[Discovery] job %s: cancellation signalled", jobID)
		return nil
	}

	// Not tracked in this process (e.g. orphaned after a restart): the run
	// goroutine cannot finalize it, so mark it cancelled directly
	now := time.Now()
	job.Status = domain.JobStatusCancelled
	job.CompletedAt = &now
	if err := s.store.UpdateJob(ctx, job); err != nil {
		return fmt.Errorf("cancel job: %w", err)
	}
	return nil
}

// ImportResult promotes one result into a durable vendor record. Rejects
// results that are already imported or skipped.
func (s *DiscoveryService) ImportResult(ctx context.Context, resultID string) (*domain.DiscoveryResult, error) {
	result, err := s.store.GetResult(ctx, resultID)
	if err != nil {
		return nil, err
	}

	if result.Imported {
		return nil, fmt.Errorf("%w: result already imported", domain.ErrConflict)
	}
	if result.Skipped {
		return nil, fmt.Errorf("%w: result was skipped", domain.ErrConflict)
	}

	return s.importResult(ctx, result)
}

// importResult performs the shared import path: vendor + contacts creation,
// the imported flag, and the counter bump. Callers have already checked the
// imported/skipped flags.
func (s *DiscoveryService) importResult(ctx context.Context, result *domain.DiscoveryResult) (*domain.DiscoveryResult, error) {
	vendor := &domain.Vendor{
		ID:                uuid.NewString(),
		Name:              result.CompanyName,
		Country:           result.Country,
		Website:           result.Website,
		Email:             result.Email,
		Phone:             result.Phone,
		Description:       result.Description,
		ProductCategories: result.ProductCategories,
		Certifications:    result.Certifications,
		CompanySize:       result.CompanySize,
		YearsInBusiness:   result.YearsInBusiness,
		Source:            "discovery",
		Contacts:          s.collectContacts(ctx, result),
		CreatedAt:         time.Now(),
	}

	if err := s.store.CreateVendor(ctx, vendor); err != nil {
		return nil, fmt.Errorf("create vendor: %w", err)
	}

	if err := s.store.MarkImported(ctx, result.ID); err != nil {
		return nil, fmt.Errorf("mark imported: %w", err)
	}

	if err := s.store.IncrementCounters(ctx, result.JobID, domain.CounterDelta{Imported: 1}); err != nil {
		log.Printf("[Discovery] job %s: import counter bump failed: %v", result.JobID, err)
	}

	result.Imported = true
	result.UpdatedAt = time.Now()
	log.Printf("[Discovery] result %s imported as vendor %s", result.ID, vendor.ID)
	return result, nil
}

// collectContacts merges contacts from the result row with anything the
// contact extractor can scrape off the vendor website. Extraction failures
// are soft.
func (s *DiscoveryService) collectContacts(ctx context.Context, result *domain.DiscoveryResult) []domain.VendorContact {
	var contacts []domain.VendorContact
	if result.Email != "" {
		contacts = append(contacts, domain.VendorContact{Type: "email", Value: result.Email})
	}
	if result.Phone != "" {
		contacts = append(contacts, domain.VendorContact{Type: "phone", Value: result.Phone})
	}

	if s.contacts == nil || result.Website == "" {
		return contacts
	}

	info, err := s.contacts.Extract(ctx, result.Website)
	if err != nil {
		log.Printf("[Discovery] contact extraction for %s failed: %v", result.Website, err)
		return contacts
	}

	for _, email := range info.Emails {
		if email != result.Email {
			contacts = append(contacts, domain.VendorContact{Type: "email", Value: email})
		}
	}
	for _, phone := range info.Phones {
		if phone != result.Phone {
			contacts = append(contacts, domain.VendorContact{Type: "phone", Value: phone})
		}
	}
	return contacts
}

// ImportResults imports a list of results. One failure never blocks the
// rest; the outcome reports per-result errors.
func (s *DiscoveryService) ImportResults(ctx context.Context, resultIDs []string) *domain.BatchImportOutcome {
	outcome := &domain.BatchImportOutcome{
		Results: make([]*domain.DiscoveryResult, 0, len(resultIDs)),
		Errors:  []domain.BatchImportError{},
	}

	for _, id := range resultIDs {
		result, err := s.ImportResult(ctx, id)
		if err != nil {
			outcome.FailedCount++
			outcome.Errors = append(outcome.Errors, domain.BatchImportError{ResultID: id, Error: err.Error()})
			continue
		}
		outcome.ImportedCount++
		outcome.Results = append(outcome.Results, result)
	}

	return outcome
}

// SkipResult marks a result skipped with the given reason. Rejects results
// that are already imported; import is a one-way transition.
func (s *DiscoveryService) SkipResult(ctx context.Context, resultID, reason string) (*domain.DiscoveryResult, error) {
	result, err := s.store.GetResult(ctx, resultID)
	if err != nil {
		return nil, err
	}

	if result.Imported {
		return nil, fmt.Errorf("%w: result already imported", domain.ErrConflict)
	}

	if reason == "" {
		reason = "Skipped manually"
	}
	if err := s.store.MarkSkipped(ctx, resultID, reason); err != nil {
		return nil, fmt.Errorf("mark skipped: %w", err)
	}

	result.Skipped = true
	result.SkipReason = reason
	result.UpdatedAt = time.Now()
	return result, nil
}
