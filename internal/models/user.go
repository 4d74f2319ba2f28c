package models

import "time"

// User is the stored identity record. Credential and token fields never
// serialize to API clients.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Subscription      string    `json:"subscription"`
	SessionToken      string    `json:"-"`
	AvatarURL         string    `json:"avatarURL"`
	Verified          bool      `json:"verified"`
	VerificationToken string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// PublicUser is the projection returned to API clients.
type PublicUser struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL,omitempty"`
}

// Public projects the record down to its client-safe fields.
func (u User) Public() PublicUser {
	return PublicUser{
		Email:        u.Email,
		Subscription: u.Subscription,
		AvatarURL:    u.AvatarURL,
	}
}
