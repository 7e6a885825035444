package models

import "time"

// Roles a user profile can carry.
const (
	RoleJobSeeker = "JOB_SEEKER"
	RoleRecruiter = "RECRUITER"
	RoleAdmin     = "ADMIN"
)

// User is a job-board profile row. Credentials live with the external
// auth provider; this table only mirrors profile data.
type User struct {
	ID        int       `db:"id" json:"id"`
	FullName  *string   `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	CompanyID *int      `db:"company_id" json:"company_id"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Company groups recruiters and owns job postings.
type Company struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
