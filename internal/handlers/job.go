package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jobboard-service/internal/models"
	"jobboard-service/internal/repositories"
	"jobboard-service/internal/telemetry"
)

// JobHandler manages job posting endpoints. Mutations require the
// caller to be a recruiter attached to the posting's company.
type JobHandler struct {
	jobRepo  repositories.JobPostingRepository
	userRepo repositories.UserRepository
	audit    *telemetry.AuditEmitter
}

// NewJobHandler builds a JobHandler.
func NewJobHandler(jobRepo repositories.JobPostingRepository, userRepo repositories.UserRepository, audit *telemetry.AuditEmitter) *JobHandler {
	return &JobHandler{jobRepo: jobRepo, userRepo: userRepo, audit: audit}
}

// recruiterCompany loads the caller and verifies the recruiter role,
// returning the company id the caller may manage postings for.
func (h *JobHandler) recruiterCompany(c *gin.Context) (int, bool) {
	user, err := h.userRepo.GetByID(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "unknown user"})
			return 0, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return 0, false
	}
	if user.Role != models.RoleRecruiter {
		c.JSON(http.StatusForbidden, gin.H{"error": "only recruiters can manage job postings"})
		return 0, false
	}
	if user.CompanyID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recruiter has no company"})
		return 0, false
	}
	return *user.CompanyID, true
}

// CreateJob publishes a new posting for the recruiter's company.
func (h *JobHandler) CreateJob(c *gin.Context) {
	companyID, ok := h.recruiterCompany(c)
	if !ok {
		return
	}

	var req struct {
		Title     string     `json:"title"`
		Status    string     `json:"status"`
		ExpiresAt *time.Time `json:"expiresAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if req.Status == "" {
		req.Status = models.JobStatusOpen
	}
	if !models.ValidJobStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job status"})
		return
	}

	posting, err := h.jobRepo.Create(c.Request.Context(), companyID, req.Title, req.Status, req.ExpiresAt)
	if err != nil {
		h.audit.Emit(c.Request.Context(), "ERROR", "job posting create failed", requestIDFromContext(c), userIDFromContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create job posting"})
		return
	}

	c.JSON(http.StatusCreated, posting)
}

// UpdateJob patches a posting's title, status or expiry.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	companyID, ok := h.recruiterCompany(c)
	if !ok {
		return
	}

	postingID, err := strconv.Atoi(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	var req struct {
		Title     *string    `json:"title"`
		Status    *string    `json:"status"`
		ExpiresAt *time.Time `json:"expiresAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Status != nil && !models.ValidJobStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job status"})
		return
	}

	existing, err := h.jobRepo.GetByID(c.Request.Context(), postingID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobPostingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job posting"})
		return
	}
	if existing.CompanyID != companyID {
		c.JSON(http.StatusForbidden, gin.H{"error": "job posting belongs to another company"})
		return
	}

	posting, err := h.jobRepo.Update(c.Request.Context(), postingID, req.Title, req.Status, req.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update job posting"})
		return
	}

	c.JSON(http.StatusOK, posting)
}

// DeleteJob removes a posting owned by the recruiter's company.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	companyID, ok := h.recruiterCompany(c)
	if !ok {
		return
	}

	postingID, err := strconv.Atoi(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	existing, err := h.jobRepo.GetByID(c.Request.Context(), postingID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobPostingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job posting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job posting"})
		return
	}
	if existing.CompanyID != companyID {
		c.JSON(http.StatusForbidden, gin.H{"error": "job posting belongs to another company"})
		return
	}

	if err := h.jobRepo.Delete(c.Request.Context(), postingID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete job posting"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListJobs returns all open postings.
func (h *JobHandler) ListJobs(c *gin.Context) {
	postings, err := h.jobRepo.ListOpen(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job postings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_postings": postings})
}
