package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/urraccon/contacts-api/internal/http/respond"
	"github.com/urraccon/contacts-api/internal/models"
	"github.com/urraccon/contacts-api/internal/models/dto"
	"github.com/urraccon/contacts-api/internal/storage"
)

const operationCompleted = "The operation was successfully completed"

// ContactsHandler owns the address-book CRUD endpoints. Every route sits
// behind the bearer-token gate.
type ContactsHandler struct {
	store storage.ContactStore
}

// NewContactsHandler constructs the handler.
func NewContactsHandler(store storage.ContactStore) *ContactsHandler {
	return &ContactsHandler{store: store}
}

// Register attaches contact routes to the mux behind gate.
func (h *ContactsHandler) Register(mux *http.ServeMux, gate func(http.Handler) http.Handler) {
	mux.Handle("GET /api/contacts", gate(http.HandlerFunc(h.handleList)))
	mux.Handle("GET /api/contacts/{id}", gate(http.HandlerFunc(h.handleGet)))
	mux.Handle("POST /api/contacts", gate(http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /api/contacts/{id}", gate(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/contacts/{id}", gate(http.HandlerFunc(h.handleDelete)))
	mux.Handle("PATCH /api/contacts/{id}/favorite", gate(http.HandlerFunc(h.handleFavorite)))
}

func (h *ContactsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.store.ListContacts(r.Context())
	if err != nil {
		respond.ServerError(w, err)
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	writeContactData(w, http.StatusOK, contacts)
}

func (h *ContactsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	contact, err := h.store.FindContactByID(r.Context(), r.PathValue("id"))
	if err != nil {
		contactError(w, err)
		return
	}
	writeContactData(w, http.StatusOK, contact)
}

func (h *ContactsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeContact(w, r)
	if !ok {
		return
	}
	if req.Name == nil || req.Email == nil || req.Phone == nil {
		respond.Message(w, http.StatusBadRequest, "One or more requested fields are missing")
		return
	}
	if err := validateContactFields(req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	contact := models.Contact{
		ID:    uuid.NewString(),
		Name:  *req.Name,
		Email: *req.Email,
		Phone: *req.Phone,
	}
	if req.Favorite != nil {
		contact.Favorite = *req.Favorite
	}
	created, err := h.store.CreateContact(r.Context(), contact)
	if err != nil {
		respond.ServerError(w, err)
		return
	}
	writeContactData(w, http.StatusCreated, created)
}

func (h *ContactsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeContact(w, r)
	if !ok {
		return
	}
	if req.Name == nil && req.Email == nil && req.Phone == nil && req.Favorite == nil {
		respond.Message(w, http.StatusBadRequest, "The body of the request is empty")
		return
	}
	if err := validateContactFields(req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.store.UpdateContact(r.Context(), r.PathValue("id"), storage.ContactUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Favorite: req.Favorite,
	})
	if err != nil {
		contactError(w, err)
		return
	}
	writeContactData(w, http.StatusOK, updated)
}

func (h *ContactsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteContact(r.Context(), r.PathValue("id")); err != nil {
		contactError(w, err)
		return
	}
	respond.Message(w, http.StatusOK, "Contact deleted")
}

func (h *ContactsHandler) handleFavorite(w http.ResponseWriter, r *http.Request) {
	var req dto.FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Favorite == nil {
		respond.Message(w, http.StatusBadRequest, "Missing favorite field")
		return
	}

	updated, err := h.store.UpdateContact(r.Context(), r.PathValue("id"), storage.ContactUpdate{
		Favorite: req.Favorite,
	})
	if err != nil {
		contactError(w, err)
		return
	}
	writeContactData(w, http.StatusOK, updated)
}

func decodeContact(w http.ResponseWriter, r *http.Request) (dto.ContactRequest, bool) {
	var req dto.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON payload")
		return dto.ContactRequest{}, false
	}
	return req, true
}

func validateContactFields(req dto.ContactRequest) error {
	if req.Name != nil && !validContactName(*req.Name) {
		return errors.New("name must be 3-30 letters, spaces, or hyphens")
	}
	if req.Email != nil && !validEmail(*req.Email) {
		return errors.New("a valid email is required")
	}
	if req.Phone != nil && !validContactPhone(*req.Phone) {
		return errors.New("phone must be 3-20 digits or punctuation")
	}
	return nil
}

func contactError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Message(w, http.StatusNotFound, "Not found")
		return
	}
	respond.ServerError(w, err)
}

func writeContactData(w http.ResponseWriter, status int, data any) {
	respond.JSON(w, status, map[string]any{
		"message": operationCompleted,
		"data":    data,
	})
}
