package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/urraccon/contacts-api/internal/models"
	"github.com/urraccon/contacts-api/internal/storage"
)

const contactColumns = `id, name, email, phone, favorite, created_at`

// ListContacts returns every contact ordered by creation time.
func (s *Store) ListContacts(ctx context.Context) ([]models.Contact, error) {
	const query = `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

// FindContactByID fetches a single contact.
func (s *Store) FindContactByID(ctx context.Context, id string) (models.Contact, error) {
	const query = `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1;`
	return scanContact(s.pool.QueryRow(ctx, query, id))
}

// CreateContact inserts a new contact row.
func (s *Store) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	const query = `
	INSERT INTO contacts (id, name, email, phone, favorite)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + contactColumns + `;`
	row := s.pool.QueryRow(ctx, query,
		contact.ID, contact.Name, contact.Email, contact.Phone, contact.Favorite)
	return scanContact(row)
}

// UpdateContact applies the non-nil fields of upd in one statement.
func (s *Store) UpdateContact(ctx context.Context, id string, upd storage.ContactUpdate) (models.Contact, error) {
	const query = `
	UPDATE contacts SET
		name = COALESCE($2, name),
		email = COALESCE($3, email),
		phone = COALESCE($4, phone),
		favorite = COALESCE($5, favorite)
	WHERE id = $1
	RETURNING ` + contactColumns + `;`
	row := s.pool.QueryRow(ctx, query, id, upd.Name, upd.Email, upd.Phone, upd.Favorite)
	return scanContact(row)
}

// DeleteContact removes a contact, failing with ErrNotFound if absent.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanContact(row pgx.Row) (models.Contact, error) {
	var contact models.Contact
	err := row.Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Phone,
		&contact.Favorite, &contact.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Contact{}, storage.ErrNotFound
		}
		return models.Contact{}, err
	}
	return contact, nil
}
