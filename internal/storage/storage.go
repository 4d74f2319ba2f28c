package storage

import (
	"context"
	"errors"

	"github.com/urraccon/contacts-api/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the persistence operations the auth core needs. The
// store is the single source of truth for email uniqueness and must apply
// each mutation as one atomic single-record update.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)

	// SetSessionToken overwrites the user's current session token.
	SetSessionToken(ctx context.Context, id, token string) error
	// ClearSessionToken removes the session token. Clearing an already
	// absent token still succeeds.
	ClearSessionToken(ctx context.Context, id string) error

	// SetVerificationToken assigns a fresh verification token, replacing any
	// previous one. Fails with ErrNotFound for unknown or already verified
	// users.
	SetVerificationToken(ctx context.Context, id, token string) error
	// ConsumeVerificationToken marks the matching user verified and clears
	// the token in one atomic update. A second call with the same token
	// fails with ErrNotFound.
	ConsumeVerificationToken(ctx context.Context, token string) (models.User, error)
}

// ContactUpdate describes a partial contact mutation. Nil fields are left
// untouched.
type ContactUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Favorite *bool
}

// ContactStore captures persistence for address-book entries.
type ContactStore interface {
	ListContacts(ctx context.Context) ([]models.Contact, error)
	FindContactByID(ctx context.Context, id string) (models.Contact, error)
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	UpdateContact(ctx context.Context, id string, upd ContactUpdate) (models.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

// Store bundles every persistence concern behind one backend.
type Store interface {
	UserStore
	ContactStore
}
