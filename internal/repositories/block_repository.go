package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"jobboard-service/internal/models"
)

var ErrBlockNotFound = errors.New("contact block not found")

// BlockRepository manages contact blocks between users.
type BlockRepository interface {
	IsBlockedBetween(ctx context.Context, userA, userB int) (bool, error)
	Create(ctx context.Context, blockerID, blockedID int, reason *string) (models.ContactBlock, error)
	Revoke(ctx context.Context, blockID, blockerID int) error
}

// BlockRepo is a sqlx implementation of BlockRepository.
type BlockRepo struct {
	db *sqlx.DB
}

// NewBlockRepo constructs a BlockRepo.
func NewBlockRepo(db *sqlx.DB) *BlockRepo {
	return &BlockRepo{db: db}
}

// IsBlockedBetween reports whether an active block exists in either
// direction between the two users.
func (r *BlockRepo) IsBlockedBetween(ctx context.Context, userA, userB int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(
            SELECT 1 FROM contact_blocks
            WHERE is_active = TRUE
              AND ((blocker_id=$1 AND blocked_id=$2) OR (blocker_id=$2 AND blocked_id=$1))
        )`, userA, userB)
	return exists, err
}

// Create records a block, reactivating a previously revoked one for the same
// pair.
func (r *BlockRepo) Create(ctx context.Context, blockerID, blockedID int, reason *string) (models.ContactBlock, error) {
	var block models.ContactBlock
	err := r.db.GetContext(ctx, &block,
		`INSERT INTO contact_blocks (blocker_id, blocked_id, reason, is_active)
         VALUES ($1, $2, $3, TRUE)
         ON CONFLICT (blocker_id, blocked_id)
         DO UPDATE SET is_active = TRUE, reason = EXCLUDED.reason, revoked_at = NULL
         RETURNING id, blocker_id, blocked_id, reason, is_active, created_at, revoked_at`,
		blockerID, blockedID, reason)
	return block, err
}

// Revoke deactivates a block. Only the blocker may revoke their own block.
func (r *BlockRepo) Revoke(ctx context.Context, blockID, blockerID int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contact_blocks SET is_active = FALSE, revoked_at = NOW()
         WHERE id=$1 AND blocker_id=$2 AND is_active = TRUE`,
		blockID, blockerID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrBlockNotFound
	}
	return nil
}
