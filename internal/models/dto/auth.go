package dto

import "github.com/urraccon/contacts-api/internal/models"

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type SignupResponse struct {
	User models.PublicUser `json:"user"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}
