// Package memory holds an in-memory storage.Store used by tests and local
// development. A single mutex makes every mutation atomic, mirroring the
// single-statement updates of the Postgres backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/urraccon/contacts-api/internal/models"
	"github.com/urraccon/contacts-api/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps users and contacts in process memory.
type Store struct {
	mu       sync.Mutex
	users    map[string]models.User
	contacts map[string]models.Contact
	order    []string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		contacts: make(map[string]models.Contact),
	}
}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	if _, ok := s.users[user.ID]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) FindUserByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) SetSessionToken(_ context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.SessionToken = token
	s.users[id] = user
	return nil
}

func (s *Store) ClearSessionToken(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.SessionToken = ""
	s.users[id] = user
	return nil
}

func (s *Store) SetVerificationToken(_ context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok || user.Verified {
		return storage.ErrNotFound
	}
	user.VerificationToken = token
	s.users[id] = user
	return nil
}

func (s *Store) ConsumeVerificationToken(_ context.Context, token string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, user := range s.users {
		if !user.Verified && user.VerificationToken != "" && user.VerificationToken == token {
			user.Verified = true
			user.VerificationToken = ""
			s.users[id] = user
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) ListContacts(_ context.Context) ([]models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]models.Contact, 0, len(s.order))
	for _, id := range s.order {
		contacts = append(contacts, s.contacts[id])
	}
	return contacts, nil
}

func (s *Store) FindContactByID(_ context.Context, id string) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact, ok := s.contacts[id]
	if !ok {
		return models.Contact{}, storage.ErrNotFound
	}
	return contact, nil
}

func (s *Store) CreateContact(_ context.Context, contact models.Contact) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[contact.ID]; ok {
		return models.Contact{}, storage.ErrAlreadyExists
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	s.contacts[contact.ID] = contact
	s.order = append(s.order, contact.ID)
	return contact, nil
}

func (s *Store) UpdateContact(_ context.Context, id string, upd storage.ContactUpdate) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact, ok := s.contacts[id]
	if !ok {
		return models.Contact{}, storage.ErrNotFound
	}
	if upd.Name != nil {
		contact.Name = *upd.Name
	}
	if upd.Email != nil {
		contact.Email = *upd.Email
	}
	if upd.Phone != nil {
		contact.Phone = *upd.Phone
	}
	if upd.Favorite != nil {
		contact.Favorite = *upd.Favorite
	}
	s.contacts[id] = contact
	return contact, nil
}

func (s *Store) DeleteContact(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.contacts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
