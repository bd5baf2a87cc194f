// Package storage defines persistence contracts for accounts and tasks.
package storage

import (
	"context"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
	"github.com/louisbranch/weathertask/internal/services/tasks/account"
	"github.com/louisbranch/weathertask/internal/services/tasks/task"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
	// ErrConflict indicates a write violated a uniqueness constraint.
	ErrConflict = apperrors.New(apperrors.CodeConflict, "record already exists")
)

// AccountStore persists credentialed accounts.
type AccountStore interface {
	// FindAccountByLogin looks up an account by exact login.
	FindAccountByLogin(ctx context.Context, login string) (account.Account, error)
	AccountExists(ctx context.Context, login string) (bool, error)
	GetAccount(ctx context.Context, id int64) (account.Account, error)
	// SaveAccount inserts when ID is zero and otherwise updates the
	// password hash. Duplicate logins fail with ErrConflict.
	SaveAccount(ctx context.Context, a account.Account) (account.Account, error)
}

// TaskStore persists tasks. It does not check ownership.
type TaskStore interface {
	ListTasksByAccount(ctx context.Context, accountID int64) ([]task.Task, error)
	GetTask(ctx context.Context, id int64) (task.Task, error)
	// SaveTask inserts when ID is zero and otherwise updates title and status.
	SaveTask(ctx context.Context, t task.Task) (task.Task, error)
	// DeleteTask removes the row if present; missing ids are not an error.
	DeleteTask(ctx context.Context, id int64) error
}
