package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactsRequireAuthentication(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/contacts", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/contacts", "stale-token",
		map[string]string{"name": "Ada Lovelace", "email": "ada@x.com", "phone": "+1 555 0100"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestContactsCRUD(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := signupVerifiedUser(t, env, "owner@x.com", "longpassword1")

	resp := env.request(t, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody(t, resp)["data"])

	resp = env.request(t, http.MethodPost, "/api/contacts", token,
		map[string]string{"name": "Ada Lovelace", "email": "ada@x.com", "phone": "+1 555 0100"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)["data"].(map[string]any)
	id := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Ada Lovelace", created["name"])
	assert.Equal(t, false, created["favorite"])

	resp = env.request(t, http.MethodGet, "/api/contacts/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodPut, "/api/contacts/"+id, token,
		map[string]string{"phone": "+1 555 0199"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "+1 555 0199", updated["phone"])
	assert.Equal(t, "Ada Lovelace", updated["name"])

	resp = env.request(t, http.MethodPatch, "/api/contacts/"+id+"/favorite", token,
		map[string]bool{"favorite": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	favored := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, true, favored["favorite"])

	resp = env.request(t, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody(t, resp)["data"].([]any)
	require.Len(t, list, 1)

	resp = env.request(t, http.MethodDelete, "/api/contacts/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Contact deleted", decodeBody(t, resp)["message"])

	resp = env.request(t, http.MethodGet, "/api/contacts/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContactValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := signupVerifiedUser(t, env, "owner@x.com", "longpassword1")

	// Create requires name, email, and phone.
	resp := env.request(t, http.MethodPost, "/api/contacts", token,
		map[string]string{"name": "Ada Lovelace"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "One or more requested fields are missing", decodeBody(t, resp)["message"])

	invalid := []map[string]string{
		{"name": "A", "email": "ada@x.com", "phone": "+1 555 0100"},
		{"name": "Ada L0velace", "email": "ada@x.com", "phone": "+1 555 0100"},
		{"name": "Ada Lovelace", "email": "not-an-email", "phone": "+1 555 0100"},
		{"name": "Ada Lovelace", "email": "ada@x.com", "phone": "abc"},
	}
	for _, payload := range invalid {
		resp := env.request(t, http.MethodPost, "/api/contacts", token, payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %v", payload)
	}

	resp = env.request(t, http.MethodPost, "/api/contacts", token,
		map[string]string{"name": "Ada Lovelace", "email": "ada@x.com", "phone": "+1 555 0100"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeBody(t, resp)["data"].(map[string]any)["id"].(string)

	// Update needs at least one field.
	resp = env.request(t, http.MethodPut, "/api/contacts/"+id, token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "The body of the request is empty", decodeBody(t, resp)["message"])

	// Favorite toggle needs the favorite field.
	resp = env.request(t, http.MethodPatch, "/api/contacts/"+id+"/favorite", token,
		map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing favorite field", decodeBody(t, resp)["message"])

	resp = env.request(t, http.MethodPut, "/api/contacts/unknown-id", token,
		map[string]string{"name": "New Name"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
