package models

import "time"

// Job posting statuses.
const (
	JobStatusOpen   = "OPEN"
	JobStatusClosed = "CLOSED"
	JobStatusDraft  = "DRAFT"
)

// Job application statuses.
const (
	ApplicationStatusSubmitted = "SUBMITTED"
	ApplicationStatusReviewing = "REVIEWING"
	ApplicationStatusRejected  = "REJECTED"
	ApplicationStatusOffered   = "OFFERED"
	ApplicationStatusExpired   = "EXPIRED"
)

// ValidJobStatus reports whether s is an accepted posting status.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusDraft:
		return true
	}
	return false
}

// JobPosting is a vacancy published by a company.
type JobPosting struct {
	ID        int        `db:"id" json:"id"`
	CompanyID int        `db:"company_id" json:"company_id"`
	Title     string     `db:"title" json:"title"`
	Status    string     `db:"status" json:"status"`
	PostedAt  time.Time  `db:"posted_at" json:"posted_at"`
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at"`
}

// JobApplication links a job seeker to a posting. At most one application
// exists per (posting, seeker) pair.
type JobApplication struct {
	ID           int       `db:"id" json:"id"`
	JobPostingID int       `db:"job_posting_id" json:"job_posting_id"`
	JobSeekerID  int       `db:"job_seeker_id" json:"job_seeker_id"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
