package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
	"github.com/louisbranch/weathertask/internal/platform/requestctx"
	"github.com/louisbranch/weathertask/internal/services/tasks/storage"
	"github.com/louisbranch/weathertask/internal/services/tasks/task"
)

// ErrUnauthenticated indicates a task call without a usable identity.
var ErrUnauthenticated = apperrors.New(apperrors.CodeUnauthorized, "authentication required")

// TasksOption configures Tasks.
type TasksOption func(*Tasks)

// WithOwnershipEnforcement toggles owner checks on update and delete.
//
// When disabled any authenticated caller may update or delete any task id.
func WithOwnershipEnforcement(enabled bool) TasksOption {
	return func(s *Tasks) {
		s.enforceOwnership = enabled
	}
}

// Tasks implements the owner-scoped task use cases.
type Tasks struct {
	tasks            storage.TaskStore
	accounts         storage.AccountStore
	enforceOwnership bool
}

// NewTasks wires the task use cases. Ownership is enforced unless disabled
// by option.
func NewTasks(tasks storage.TaskStore, accounts storage.AccountStore, opts ...TasksOption) (*Tasks, error) {
	if tasks == nil {
		return nil, errors.New("task store is required")
	}
	if accounts == nil {
		return nil, errors.New("account store is required")
	}
	s := &Tasks{tasks: tasks, accounts: accounts, enforceOwnership: true}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// EnforcesOwnership reports whether update and delete check the owner.
func (s *Tasks) EnforcesOwnership() bool {
	return s.enforceOwnership
}

// ListTasks returns the caller's tasks in creation order.
func (s *Tasks) ListTasks(ctx context.Context, identity requestctx.Identity) ([]task.Task, error) {
	if !identity.Authenticated() {
		return nil, ErrUnauthenticated
	}
	items, err := s.tasks.ListTasksByAccount(ctx, identity.AccountID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return items, nil
}

// CreateTask stores a new task owned by the caller. A blank status means NEW.
func (s *Tasks) CreateTask(ctx context.Context, identity requestctx.Identity, title, status string) (task.Task, error) {
	if !identity.Authenticated() {
		return task.Task{}, ErrUnauthenticated
	}
	normalizedTitle, err := task.NormalizeTitle(title)
	if err != nil {
		return task.Task{}, err
	}
	parsedStatus, err := task.StatusOrDefault(status)
	if err != nil {
		return task.Task{}, err
	}

	// Tokens outlive accounts; a deleted account must not gain new rows.
	if _, err := s.accounts.GetAccount(ctx, identity.AccountID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return task.Task{}, ErrUnauthenticated
		}
		return task.Task{}, fmt.Errorf("get account: %w", err)
	}

	created, err := s.tasks.SaveTask(ctx, task.Task{
		AccountID: identity.AccountID,
		Title:     normalizedTitle,
		Status:    parsedStatus,
	})
	if err != nil {
		return task.Task{}, fmt.Errorf("save task: %w", err)
	}
	return created, nil
}

// UpdateStatus changes the status of a task.
func (s *Tasks) UpdateStatus(ctx context.Context, identity requestctx.Identity, taskID int64, status string) (task.Task, error) {
	if !identity.Authenticated() {
		return task.Task{}, ErrUnauthenticated
	}
	parsedStatus, err := task.ParseStatus(status)
	if err != nil {
		return task.Task{}, err
	}

	current, err := s.visibleTask(ctx, identity, taskID)
	if err != nil {
		return task.Task{}, err
	}
	current.Status = parsedStatus
	updated, err := s.tasks.SaveTask(ctx, current)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, fmt.Errorf("save task: %w", err)
	}
	return updated, nil
}

// DeleteTask removes a task. Missing or foreign ids succeed without effect.
func (s *Tasks) DeleteTask(ctx context.Context, identity requestctx.Identity, taskID int64) error {
	if !identity.Authenticated() {
		return ErrUnauthenticated
	}
	if s.enforceOwnership {
		if _, err := s.visibleTask(ctx, identity, taskID); err != nil {
			if errors.Is(err, task.ErrNotFound) {
				return nil
			}
			return err
		}
	}
	if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// visibleTask loads a task, hiding rows owned by other accounts when
// ownership is enforced.
func (s *Tasks) visibleTask(ctx context.Context, identity requestctx.Identity, taskID int64) (task.Task, error) {
	current, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, fmt.Errorf("get task: %w", err)
	}
	if s.enforceOwnership && !current.OwnedBy(identity.AccountID) {
		return task.Task{}, task.ErrNotFound
	}
	return current, nil
}
