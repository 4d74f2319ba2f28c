package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urraccon/contacts-api/internal/models"
	"github.com/urraccon/contacts-api/internal/storage"
	"github.com/urraccon/contacts-api/internal/storage/memory"
)

func newUnverifiedUser(t *testing.T, users storage.UserStore) models.User {
	t.Helper()
	user, err := users.CreateUser(context.Background(), models.User{
		ID:           "user-1",
		Email:        "a@x.com",
		PasswordHash: "digest",
		Subscription: models.SubscriptionStarter,
	})
	require.NoError(t, err)
	return user
}

func TestIssueForReplacesPriorToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := memory.New()
	store := NewStore(users)
	user := newUnverifiedUser(t, users)

	first, err := store.IssueFor(ctx, user.ID)
	require.NoError(t, err)
	second, err := store.IssueFor(ctx, user.ID)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// The superseded token no longer consumes.
	_, err = store.Consume(ctx, first)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	verified, err := store.Consume(ctx, second)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Empty(t, verified.VerificationToken)

	// Replay of a consumed token fails the same way.
	_, err = store.Consume(ctx, second)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestConsumeUnknownToken(t *testing.T) {
	t.Parallel()

	store := NewStore(memory.New())
	_, err := store.Consume(context.Background(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIssueForVerifiedUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := memory.New()
	store := NewStore(users)
	user := newUnverifiedUser(t, users)

	token, err := store.IssueFor(ctx, user.ID)
	require.NoError(t, err)
	_, err = store.Consume(ctx, token)
	require.NoError(t, err)

	// Once verified, no further token can be assigned.
	_, err = store.IssueFor(ctx, user.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
