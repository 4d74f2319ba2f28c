package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urraccon/contacts-api/internal/models"
	"github.com/urraccon/contacts-api/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

const userColumns = `id, email, password_hash, subscription, COALESCE(session_token, ''), avatar_url, verified, COALESCE(verification_token, ''), created_at`

// Store provides Postgres-backed persistence for users and contacts.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to Postgres and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			subscription TEXT NOT NULL DEFAULT 'starter',
			session_token TEXT,
			avatar_url TEXT NOT NULL DEFAULT '',
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			verification_token TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_verification_token_idx
			ON users (verification_token) WHERE verification_token IS NOT NULL;`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			favorite BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row. The unique index on email is what
// ultimately decides concurrent signups; the loser gets ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (id, email, password_hash, subscription, avatar_url, verified)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + userColumns + `;`
	row := s.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Subscription, user.AvatarURL, user.Verified)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindUserByEmail fetches a user by email address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindUserByID fetches a user by id.
func (s *Store) FindUserByID(ctx context.Context, id string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// SetSessionToken overwrites the user's session token.
func (s *Store) SetSessionToken(ctx context.Context, id, token string) error {
	return s.updateUser(ctx, `UPDATE users SET session_token = $2 WHERE id = $1;`, id, token)
}

// ClearSessionToken removes the session token, succeeding even when no
// token was set.
func (s *Store) ClearSessionToken(ctx context.Context, id string) error {
	return s.updateUser(ctx, `UPDATE users SET session_token = NULL WHERE id = $1;`, id)
}

// SetVerificationToken replaces the verification token of an unverified user.
func (s *Store) SetVerificationToken(ctx context.Context, id, token string) error {
	return s.updateUser(ctx,
		`UPDATE users SET verification_token = $2 WHERE id = $1 AND verified = FALSE;`, id, token)
}

// ConsumeVerificationToken flips verified and clears the token in a single
// statement so two concurrent calls cannot both match the same token.
func (s *Store) ConsumeVerificationToken(ctx context.Context, token string) (models.User, error) {
	const query = `
	UPDATE users SET verified = TRUE, verification_token = NULL
	WHERE verification_token = $1 AND verified = FALSE
	RETURNING ` + userColumns + `;`
	return scanUser(s.pool.QueryRow(ctx, query, token))
}

func (s *Store) updateUser(ctx context.Context, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Subscription,
		&user.SessionToken, &user.AvatarURL, &user.Verified, &user.VerificationToken, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
