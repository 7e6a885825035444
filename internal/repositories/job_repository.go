package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"jobboard-service/internal/models"
)

var ErrJobPostingNotFound = errors.New("job posting not found")

// JobPostingRepository abstracts job posting persistence.
type JobPostingRepository interface {
	Create(ctx context.Context, companyID int, title, status string, expiresAt *time.Time) (models.JobPosting, error)
	GetByID(ctx context.Context, postingID int) (models.JobPosting, error)
	Update(ctx context.Context, postingID int, title, status *string, expiresAt *time.Time) (models.JobPosting, error)
	Delete(ctx context.Context, postingID int) error
	ListOpen(ctx context.Context) ([]models.JobPosting, error)
}

// JobPostingRepo is a sqlx implementation of JobPostingRepository.
type JobPostingRepo struct {
	db *sqlx.DB
}

// NewJobPostingRepo constructs a JobPostingRepo.
func NewJobPostingRepo(db *sqlx.DB) *JobPostingRepo {
	return &JobPostingRepo{db: db}
}

const jobPostingColumns = `id, company_id, title, status, posted_at, expires_at`

// Create publishes a posting for the company.
func (r *JobPostingRepo) Create(ctx context.Context, companyID int, title, status string, expiresAt *time.Time) (models.JobPosting, error) {
	var posting models.JobPosting
	err := r.db.GetContext(ctx, &posting,
		`INSERT INTO job_postings (company_id, title, status, expires_at)
         VALUES ($1, $2, $3, $4)
         RETURNING `+jobPostingColumns,
		companyID, title, status, expiresAt)
	return posting, err
}

// GetByID fetches a posting.
func (r *JobPostingRepo) GetByID(ctx context.Context, postingID int) (models.JobPosting, error) {
	var posting models.JobPosting
	err := r.db.GetContext(ctx, &posting,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE id=$1`, postingID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JobPosting{}, ErrJobPostingNotFound
	}
	return posting, err
}

// Update applies the non-nil fields to the posting.
func (r *JobPostingRepo) Update(ctx context.Context, postingID int, title, status *string, expiresAt *time.Time) (models.JobPosting, error) {
	var posting models.JobPosting
	err := r.db.GetContext(ctx, &posting,
		`UPDATE job_postings
         SET title = COALESCE($2, title),
             status = COALESCE($3, status),
             expires_at = COALESCE($4, expires_at)
         WHERE id=$1
         RETURNING `+jobPostingColumns,
		postingID, title, status, expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JobPosting{}, ErrJobPostingNotFound
	}
	return posting, err
}

// Delete removes a posting.
func (r *JobPostingRepo) Delete(ctx context.Context, postingID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM job_postings WHERE id=$1`, postingID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrJobPostingNotFound
	}
	return nil
}

// ListOpen returns open postings, newest first.
func (r *JobPostingRepo) ListOpen(ctx context.Context) ([]models.JobPosting, error) {
	var postings []models.JobPosting
	err := r.db.SelectContext(ctx, &postings,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE status='OPEN' ORDER BY posted_at DESC`)
	return postings, err
}
