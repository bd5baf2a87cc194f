// Package account defines the credentialed account model.
package account

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
)

var (
	// ErrEmptyLogin indicates a missing or blank login.
	ErrEmptyLogin = apperrors.WithMetadata(apperrors.CodeValidation, "login/password required", map[string]string{"Field": "login"})
	// ErrEmptyPassword indicates a missing or blank password.
	ErrEmptyPassword = apperrors.WithMetadata(apperrors.CodeValidation, "login/password required", map[string]string{"Field": "password"})
)

// Account is a registered login with its password hash.
type Account struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Credentials is the login/password pair submitted by a client.
type Credentials struct {
	Login    string
	Password string
}

// NormalizeCredentials trims the login and rejects blank fields.
//
// The password is kept verbatim; only its blankness is checked.
func NormalizeCredentials(input Credentials) (Credentials, error) {
	input.Login = strings.TrimSpace(input.Login)
	if input.Login == "" {
		return Credentials{}, ErrEmptyLogin
	}
	if strings.TrimSpace(input.Password) == "" {
		return Credentials{}, ErrEmptyPassword
	}
	return input, nil
}
