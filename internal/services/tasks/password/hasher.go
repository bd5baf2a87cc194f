// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyPassword indicates an attempt to hash a blank password.
	ErrEmptyPassword = apperrors.New(apperrors.CodeValidation, "password is required")
	// ErrPasswordTooLong indicates a password past bcrypt's 72-byte input limit.
	ErrPasswordTooLong = apperrors.New(apperrors.CodeValidation, "password must be at most 72 bytes")
)

// Hasher produces salted one-way password hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a bcrypt hasher. A zero cost selects bcrypt.DefaultCost.
func NewHasher(cost int) (*Hasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

// Hash returns an encoded hash with an embedded random salt, so repeated
// calls on the same input yield different strings.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if strings.TrimSpace(plaintext) == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the encoded hash.
func (h *Hasher) Verify(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IsHashed reports whether a stored value is already a bcrypt hash.
func IsHashed(stored string) bool {
	if !strings.HasPrefix(stored, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}
