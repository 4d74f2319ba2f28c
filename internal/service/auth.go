// Package service implements the authentication lifecycle over user records:
// signup, login, logout, session lookup, and email verification.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/urraccon/contacts-api/internal/auth"
	"github.com/urraccon/contacts-api/internal/avatar"
	"github.com/urraccon/contacts-api/internal/models"
	"github.com/urraccon/contacts-api/internal/storage"
	"github.com/urraccon/contacts-api/internal/verify"
)

// VerificationSender hands a verification email off for background delivery.
// Implementations must not block and must swallow delivery failures.
type VerificationSender interface {
	Enqueue(email, token string)
}

// Auth orchestrates the user state machine: unregistered, pending
// verification, then active with the session token tracking login state.
type Auth struct {
	users         storage.UserStore
	tokens        *auth.TokenManager
	verifications *verify.Store
	mail          VerificationSender
}

// NewAuth wires the service with its collaborators.
func NewAuth(users storage.UserStore, tokens *auth.TokenManager, verifications *verify.Store, mail VerificationSender) *Auth {
	return &Auth{
		users:         users,
		tokens:        tokens,
		verifications: verifications,
		mail:          mail,
	}
}

// Signup registers a new unverified user and dispatches the verification
// email. Email delivery is best effort and never fails the signup.
func (s *Auth) Signup(ctx context.Context, email, password string) (models.PublicUser, error) {
	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return models.PublicUser{}, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.PublicUser{}, fmt.Errorf("find user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Subscription: models.SubscriptionStarter,
		AvatarURL:    avatar.URL(email),
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		// The store's unique index decides concurrent signups for the
		// same email.
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.PublicUser{}, ErrEmailTaken
		}
		return models.PublicUser{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.verifications.IssueFor(ctx, created.ID)
	if err != nil {
		// The account exists; a resend can still issue a token later.
		log.Printf("signup: issue verification token for %s: %v", created.Email, err)
		return created.Public(), nil
	}
	s.mail.Enqueue(created.Email, token)

	return created.Public(), nil
}

// Login checks credentials and mints a fresh bearer token, overwriting the
// previously stored session token. Unverified users are refused before the
// password is even considered.
func (s *Auth) Login(ctx context.Context, email, password string) (string, models.PublicUser, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", models.PublicUser{}, ErrUserNotFound
		}
		return "", models.PublicUser{}, fmt.Errorf("find user: %w", err)
	}
	if !user.Verified {
		return "", models.PublicUser{}, ErrEmailUnverified
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", models.PublicUser{}, ErrBadCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Subscription)
	if err != nil {
		return "", models.PublicUser{}, fmt.Errorf("issue token: %w", err)
	}
	if err := s.users.SetSessionToken(ctx, user.ID, token); err != nil {
		return "", models.PublicUser{}, fmt.Errorf("store session token: %w", err)
	}
	return token, user.Public(), nil
}

// Logout clears the stored session token. Logging out an already logged-out
// user still succeeds.
func (s *Auth) Logout(ctx context.Context, userID string) error {
	if err := s.users.ClearSessionToken(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// CurrentUser returns the public projection for an authenticated user id.
func (s *Auth) CurrentUser(ctx context.Context, userID string) (models.PublicUser, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.PublicUser{}, ErrUnauthorized
		}
		return models.PublicUser{}, fmt.Errorf("find user: %w", err)
	}
	return user.Public(), nil
}

// ResendVerification re-issues a verification token and dispatches the
// email. Returns false without sending when the user is already verified.
func (s *Auth) ResendVerification(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("find user: %w", err)
	}
	if user.Verified {
		return false, nil
	}

	token, err := s.verifications.IssueFor(ctx, user.ID)
	if err != nil {
		return false, fmt.Errorf("issue verification token: %w", err)
	}
	s.mail.Enqueue(user.Email, token)
	return true, nil
}

// CompleteVerification consumes a verification token, flipping the user to
// verified exactly once.
func (s *Auth) CompleteVerification(ctx context.Context, token string) error {
	if _, err := s.verifications.Consume(ctx, token); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("consume verification token: %w", err)
	}
	return nil
}

// Authenticate validates a bearer token and applies the server-side
// revocation check: a token superseded by a newer login or cleared by logout
// is rejected even while cryptographically valid. Callers must present every
// failure uniformly; the distinct error kinds exist for logging.
func (s *Auth) Authenticate(ctx context.Context, token string) (models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.users.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	if user.SessionToken == "" || user.SessionToken != token {
		return models.User{}, ErrUnauthorized
	}
	return user, nil
}

// IsAuthFailure reports whether err is one of the expected authentication
// failures rather than a server fault.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, auth.ErrTokenExpired) ||
		errors.Is(err, auth.ErrTokenMalformed) ||
		errors.Is(err, auth.ErrTokenUnsigned)
}
