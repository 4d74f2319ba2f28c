// Package verify manages single-use email-verification tokens layered on the
// user store.
package verify

import (
	"context"

	"github.com/google/uuid"
	"github.com/urraccon/contacts-api/internal/models"
	"github.com/urraccon/contacts-api/internal/storage"
)

// Store generates and consumes verification tokens for unverified users.
type Store struct {
	users storage.UserStore
}

// NewStore wraps the user store.
func NewStore(users storage.UserStore) *Store {
	return &Store{users: users}
}

// IssueFor assigns a fresh unguessable token to the user, replacing and
// thereby invalidating any previously issued one.
func (s *Store) IssueFor(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.users.SetVerificationToken(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}

// Consume marks the matching user verified and clears the token. The store
// applies both in one atomic update, so a replayed token fails with
// storage.ErrNotFound.
func (s *Store) Consume(ctx context.Context, token string) (models.User, error) {
	return s.users.ConsumeVerificationToken(ctx, token)
}
