package service

import (
	"net/mail"
	"strings"

	"github.com/tbessonov/securetodo-server/internal/model"
)

// validateEmail enforces the address rules shared by user enrollment and item
// sharing: no surrounding whitespace and a syntactically well-formed address.
func validateEmail(email string) error {
	if email == "" {
		return model.NewInvalidInput("email is required")
	}
	if strings.TrimSpace(email) != email {
		return model.NewInvalidInput("email can not start or end with whitespace")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return model.NewInvalidInput("email must be a well-formed email address")
	}

	return nil
}
