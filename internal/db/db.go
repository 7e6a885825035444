package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS companies (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            full_name TEXT,
            email TEXT NOT NULL UNIQUE,
            role TEXT NOT NULL,
            company_id INT REFERENCES companies(id),
            is_active BOOLEAN DEFAULT TRUE,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS job_postings (
            id SERIAL PRIMARY KEY,
            company_id INT NOT NULL REFERENCES companies(id),
            title TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'OPEN',
            posted_at TIMESTAMPTZ DEFAULT NOW(),
            expires_at TIMESTAMPTZ
        );`,
		`CREATE TABLE IF NOT EXISTS job_applications (
            id SERIAL PRIMARY KEY,
            job_posting_id INT NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
            job_seeker_id INT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL DEFAULT 'SUBMITTED',
            created_at TIMESTAMPTZ DEFAULT NOW(),
            UNIQUE(job_posting_id, job_seeker_id)
        );`,
		`CREATE TABLE IF NOT EXISTS conversations (
            id SERIAL PRIMARY KEY,
            job_seeker_id INT NOT NULL REFERENCES users(id),
            recruiter_id INT NOT NULL REFERENCES users(id),
            job_posting_id INT REFERENCES job_postings(id) ON DELETE SET NULL,
            job_application_id INT REFERENCES job_applications(id) ON DELETE SET NULL,
            status TEXT NOT NULL DEFAULT 'ACTIVE',
            last_message_id INT,
            last_message_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            UNIQUE(job_posting_id, job_seeker_id, recruiter_id)
        );`,
		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            conversation_id INT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
            sender_id INT NOT NULL REFERENCES users(id),
            body TEXT,
            status TEXT NOT NULL DEFAULT 'SENT',
            failed_reason TEXT,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            sent_at TIMESTAMPTZ,
            delivered_at TIMESTAMPTZ,
            read_at TIMESTAMPTZ
        );`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation_created
            ON messages (conversation_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS contact_blocks (
            id SERIAL PRIMARY KEY,
            blocker_id INT NOT NULL REFERENCES users(id),
            blocked_id INT NOT NULL REFERENCES users(id),
            reason TEXT,
            is_active BOOLEAN DEFAULT TRUE,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            revoked_at TIMESTAMPTZ,
            UNIQUE(blocker_id, blocked_id)
        );`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Info().Msg("database migrations applied")
	return nil
}
