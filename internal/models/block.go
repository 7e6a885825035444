package models

import "time"

// ContactBlock suppresses messaging between two users while active,
// regardless of which side created it.
type ContactBlock struct {
	ID        int        `db:"id" json:"id"`
	BlockerID int        `db:"blocker_id" json:"blocker_id"`
	BlockedID int        `db:"blocked_id" json:"blocked_id"`
	Reason    *string    `db:"reason" json:"reason"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at"`
}
