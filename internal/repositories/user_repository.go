package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"jobboard-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository abstracts profile persistence.
type UserRepository interface {
	Create(ctx context.Context, fullName *string, email, role string, isActive bool) (models.User, error)
	GetByID(ctx context.Context, userID int) (models.User, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, full_name, email, role, company_id, is_active, created_at`

// Create stores a profile row. Credentials are the auth provider's problem.
func (r *UserRepo) Create(ctx context.Context, fullName *string, email, role string, isActive bool) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`INSERT INTO users (full_name, email, role, is_active)
         VALUES ($1, $2, $3, $4)
         RETURNING `+userColumns,
		fullName, email, role, isActive)
	return user, err
}

// GetByID fetches a profile.
func (r *UserRepo) GetByID(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}
