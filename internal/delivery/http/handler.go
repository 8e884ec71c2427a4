package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendorscout/backend/internal/domain"
	"github.com/vendorscout/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	discovery *usecase.DiscoveryService
}

// NewHandler creates a new HTTP handler
func NewHandler(discovery *usecase.DiscoveryService) *Handler {
	return &Handler{discovery: discovery}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "vendorscout-backend",
		"version": "1.0.0",
	})
}

// CreateJob starts a new discovery job and returns it without waiting for
// the pipeline
func (h *Handler) CreateJob(c *gin.Context) {
	var input usecase.CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.discovery.CreateJob(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, job)
}

// ListJobs returns all discovery jobs
func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.discovery.ListJobs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJob returns one job with its derived liveness
func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.discovery.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CancelJob requests cooperative cancellation of a pending or running job
func (h *Handler) CancelJob(c *gin.Context) {
	if err := h.discovery.CancelJob(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// ListResults returns all results of one job
func (h *Handler) ListResults(c *gin.Context) {
	results, err := h.discovery.ListResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ImportResult promotes one result into a vendor record
func (h *Handler) ImportResult(c *gin.Context) {
	result, err := h.discovery.ImportResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type batchImportRequest struct {
	ResultIDs []string `json:"resultIds" binding:"required,min=1"`
}

// ImportResults imports a list of results; one failure never blocks the rest
func (h *Handler) ImportResults(c *gin.Context) {
	var req batchImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.discovery.ImportResults(c.Request.Context(), req.ResultIDs)
	c.JSON(http.StatusOK, outcome)
}

type skipRequest struct {
	Reason string `json:"reason"`
}

// SkipResult marks one result as skipped
func (h *Handler) SkipResult(c *gin.Context) {
	var req skipRequest
	// Body is optional; an empty reason gets a default
	_ = c.ShouldBindJSON(&req)

	result, err := h.discovery.SkipResult(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps domain errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr), errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrJobNotFound), errors.Is(err, domain.ErrResultNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
