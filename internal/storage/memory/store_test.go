package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urraccon/contacts-api/internal/models"
	"github.com/urraccon/contacts-api/internal/storage"
)

func TestCreateUserEnforcesEmailUniqueness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := New()

	_, err := store.CreateUser(ctx, models.User{ID: "u1", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, models.User{ID: "u2", Email: "a@x.com"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestConsumeVerificationTokenIsSingleWinner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := New()
	_, err := store.CreateUser(ctx, models.User{ID: "u1", Email: "a@x.com"})
	require.NoError(t, err)
	require.NoError(t, store.SetVerificationToken(ctx, "u1", "tok"))

	// Concurrent consumers: exactly one may succeed.
	const attempts = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.ConsumeVerificationToken(ctx, "tok"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	user, err := store.FindUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, user.Verified)
	assert.Empty(t, user.VerificationToken)
}

func TestContactOrderSurvivesDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := New()
	for _, id := range []string{"c1", "c2", "c3"} {
		_, err := store.CreateContact(ctx, models.Contact{ID: id, Name: "Contact " + id})
		require.NoError(t, err)
	}
	require.NoError(t, store.DeleteContact(ctx, "c2"))

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "c1", contacts[0].ID)
	assert.Equal(t, "c3", contacts[1].ID)
}
