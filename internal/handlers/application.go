package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-service/internal/repositories"
	"jobboard-service/internal/telemetry"
)

// ApplicationHandler manages job application endpoints.
type ApplicationHandler struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobPostingRepository
	audit           *telemetry.AuditEmitter
}

// NewApplicationHandler builds an ApplicationHandler.
func NewApplicationHandler(applicationRepo repositories.ApplicationRepository, jobRepo repositories.JobPostingRepository, audit *telemetry.AuditEmitter) *ApplicationHandler {
	return &ApplicationHandler{applicationRepo: applicationRepo, jobRepo: jobRepo, audit: audit}
}

// CreateApplication records the caller's application to a posting. At
// most one application exists per (posting, seeker) pair; repeating the
// call returns the existing row.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req struct {
		JobPostingID int `json:"jobPostingId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.JobPostingID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobPostingId is required"})
		return
	}

	posting, err := h.jobRepo.GetByID(c.Request.Context(), req.JobPostingID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobPostingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job posting"})
		return
	}

	app, created, err := h.applicationRepo.CreateOrGet(c.Request.Context(), posting.ID, c.GetInt("userID"))
	if err != nil {
		h.audit.Emit(c.Request.Context(), "ERROR", "application create failed", requestIDFromContext(c), userIDFromContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create application"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, app)
}
