package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"jobboard-service/internal/models"
)

var ErrApplicationNotFound = errors.New("job application not found")

// ApplicationRepository abstracts job application persistence.
type ApplicationRepository interface {
	CreateOrGet(ctx context.Context, jobPostingID, jobSeekerID int) (models.JobApplication, bool, error)
	GetByID(ctx context.Context, applicationID int) (models.JobApplication, error)
}

// ApplicationRepo is a sqlx implementation of ApplicationRepository.
type ApplicationRepo struct {
	db *sqlx.DB
}

// NewApplicationRepo constructs an ApplicationRepo.
func NewApplicationRepo(db *sqlx.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationColumns = `id, job_posting_id, job_seeker_id, status, created_at`

// CreateOrGet returns the application for the (posting, seeker) pair,
// creating it with status SUBMITTED when absent. The second result is true
// when a row was created.
func (r *ApplicationRepo) CreateOrGet(ctx context.Context, jobPostingID, jobSeekerID int) (models.JobApplication, bool, error) {
	var app models.JobApplication
	err := r.db.GetContext(ctx, &app,
		`SELECT `+applicationColumns+` FROM job_applications WHERE job_posting_id=$1 AND job_seeker_id=$2`,
		jobPostingID, jobSeekerID)
	if err == nil {
		return app, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.JobApplication{}, false, err
	}

	err = r.db.GetContext(ctx, &app,
		`INSERT INTO job_applications (job_posting_id, job_seeker_id, status)
         VALUES ($1, $2, 'SUBMITTED')
         ON CONFLICT (job_posting_id, job_seeker_id) DO UPDATE SET status = job_applications.status
         RETURNING `+applicationColumns,
		jobPostingID, jobSeekerID)
	if err != nil {
		return models.JobApplication{}, false, err
	}
	return app, true, nil
}

// GetByID fetches an application.
func (r *ApplicationRepo) GetByID(ctx context.Context, applicationID int) (models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.GetContext(ctx, &app,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id=$1`, applicationID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JobApplication{}, ErrApplicationNotFound
	}
	return app, err
}
