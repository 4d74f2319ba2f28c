package handlers

import (
	"errors"
	"net/mail"
	"regexp"
)

var (
	passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+-]+$`)
	namePattern     = regexp.MustCompile(`^[a-zA-Z\s-]+$`)
	phonePattern    = regexp.MustCompile(`^[\d+()\-\s]+$`)
)

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validateSignup(email, password string) error {
	if !validEmail(email) {
		return errors.New("a valid email is required")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if !passwordPattern.MatchString(password) {
		return errors.New("password contains unsupported characters")
	}
	return nil
}

func validContactName(name string) bool {
	return len(name) >= 3 && len(name) <= 30 && namePattern.MatchString(name)
}

func validContactPhone(phone string) bool {
	return len(phone) >= 3 && len(phone) <= 20 && phonePattern.MatchString(phone)
}
