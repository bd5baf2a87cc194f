// Package seed provisions the demo account used by local frontends.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/weathertask/internal/services/tasks/account"
	"github.com/louisbranch/weathertask/internal/services/tasks/password"
	"github.com/louisbranch/weathertask/internal/services/tasks/storage"
)

const (
	DemoLogin    = "demo"
	DemoPassword = "demo"
)

// Outcome describes what EnsureDemoAccount did.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeRehashed  Outcome = "rehashed"
	OutcomeUnchanged Outcome = "unchanged"
)

// EnsureDemoAccount creates the demo account when missing and rehashes a
// stored password that is not a bcrypt hash.
func EnsureDemoAccount(ctx context.Context, store storage.AccountStore, hasher *password.Hasher) (Outcome, error) {
	if store == nil {
		return "", errors.New("account store is required")
	}
	if hasher == nil {
		return "", errors.New("password hasher is required")
	}

	existing, err := store.FindAccountByLogin(ctx, DemoLogin)
	switch {
	case err == nil:
		if password.IsHashed(existing.PasswordHash) {
			return OutcomeUnchanged, nil
		}
		hash, err := hasher.Hash(DemoPassword)
		if err != nil {
			return "", fmt.Errorf("hash demo password: %w", err)
		}
		existing.PasswordHash = hash
		if _, err := store.SaveAccount(ctx, existing); err != nil {
			return "", fmt.Errorf("rehash demo account: %w", err)
		}
		return OutcomeRehashed, nil
	case errors.Is(err, storage.ErrNotFound):
	default:
		return "", fmt.Errorf("find demo account: %w", err)
	}

	hash, err := hasher.Hash(DemoPassword)
	if err != nil {
		return "", fmt.Errorf("hash demo password: %w", err)
	}
	if _, err := store.SaveAccount(ctx, account.Account{Login: DemoLogin, PasswordHash: hash}); err != nil {
		// Another instance seeded first.
		if errors.Is(err, storage.ErrConflict) {
			return OutcomeUnchanged, nil
		}
		return "", fmt.Errorf("create demo account: %w", err)
	}
	return OutcomeCreated, nil
}
