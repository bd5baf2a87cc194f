// Package service implements account and task use cases over the storage
// contracts.
package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
	"github.com/louisbranch/weathertask/internal/services/tasks/account"
	"github.com/louisbranch/weathertask/internal/services/tasks/password"
	"github.com/louisbranch/weathertask/internal/services/tasks/storage"
	"github.com/louisbranch/weathertask/internal/services/tasks/token"
)

var (
	// ErrLoginTaken indicates a registration for an existing login.
	ErrLoginTaken = apperrors.New(apperrors.CodeConflict, "login already exists")
	// ErrInvalidCredentials is returned for any failed login. Unknown logins
	// and wrong passwords are indistinguishable.
	ErrInvalidCredentials = apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
)

// Accounts handles registration and login.
type Accounts struct {
	store  storage.AccountStore
	hasher *password.Hasher
	tokens *token.Service
}

// NewAccounts wires the account use cases.
func NewAccounts(store storage.AccountStore, hasher *password.Hasher, tokens *token.Service) (*Accounts, error) {
	if store == nil {
		return nil, errors.New("account store is required")
	}
	if hasher == nil {
		return nil, errors.New("password hasher is required")
	}
	if tokens == nil {
		return nil, errors.New("token service is required")
	}
	return &Accounts{store: store, hasher: hasher, tokens: tokens}, nil
}

// Register creates an account with a hashed password.
func (s *Accounts) Register(ctx context.Context, login, plaintext string) (account.Account, error) {
	creds, err := account.NormalizeCredentials(account.Credentials{Login: login, Password: plaintext})
	if err != nil {
		return account.Account{}, err
	}

	exists, err := s.store.AccountExists(ctx, creds.Login)
	if err != nil {
		return account.Account{}, fmt.Errorf("check login: %w", err)
	}
	if exists {
		return account.Account{}, ErrLoginTaken
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return account.Account{}, err
	}
	saved, err := s.store.SaveAccount(ctx, account.Account{Login: creds.Login, PasswordHash: hash})
	if err != nil {
		// A concurrent registration won the unique index.
		if errors.Is(err, storage.ErrConflict) {
			return account.Account{}, ErrLoginTaken
		}
		return account.Account{}, fmt.Errorf("save account: %w", err)
	}
	return saved, nil
}

// Login verifies credentials and returns a signed token.
func (s *Accounts) Login(ctx context.Context, login, plaintext string) (string, error) {
	creds, err := account.NormalizeCredentials(account.Credentials{Login: login, Password: plaintext})
	if err != nil {
		return "", ErrInvalidCredentials
	}

	found, err := s.store.FindAccountByLogin(ctx, creds.Login)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find account: %w", err)
	}
	if !s.hasher.Verify(creds.Password, found.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(found.ID, found.Login)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}
