package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/weathertask/internal/services/tasks/storage"
	"github.com/louisbranch/weathertask/internal/services/tasks/task"
)

const taskColumns = `id, account_id, title, status, created_at, updated_at`

// ListTasksByAccount returns the account's tasks in insertion order.
func (s *Store) ListTasksByAccount(ctx context.Context, accountID int64) ([]task.Task, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		s.rebind(`SELECT `+taskColumns+` FROM tasks WHERE account_id = ? ORDER BY id ASC`),
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	items := make([]task.Task, 0)
	for rows.Next() {
		item, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return items, nil
}

// GetTask returns a task by id regardless of owner.
func (s *Store) GetTask(ctx context.Context, id int64) (task.Task, error) {
	if err := s.ensureDB(); err != nil {
		return task.Task{}, err
	}
	if id <= 0 {
		return task.Task{}, storage.ErrNotFound
	}
	row := s.sqlDB.QueryRowContext(ctx,
		s.rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`),
		id,
	)
	item, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, storage.ErrNotFound
	}
	return item, err
}

// SaveTask inserts a new task or updates title and status of an existing one.
func (s *Store) SaveTask(ctx context.Context, t task.Task) (task.Task, error) {
	if err := s.ensureDB(); err != nil {
		return task.Task{}, err
	}
	if t.AccountID <= 0 {
		return task.Task{}, fmt.Errorf("task account id is required")
	}
	if t.Status == "" {
		t.Status = task.StatusNew
	}

	now := s.now().UTC()
	if t.ID == 0 {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		t.UpdatedAt = t.CreatedAt
		err := s.sqlDB.QueryRowContext(ctx,
			s.rebind(`INSERT INTO tasks (account_id, title, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?) RETURNING id`),
			t.AccountID, t.Title, string(t.Status), toMillis(t.CreatedAt), toMillis(t.UpdatedAt),
		).Scan(&t.ID)
		if err != nil {
			return task.Task{}, fmt.Errorf("insert task: %w", err)
		}
		t.CreatedAt = fromMillis(toMillis(t.CreatedAt))
		t.UpdatedAt = fromMillis(toMillis(t.UpdatedAt))
		return t, nil
	}

	result, err := s.sqlDB.ExecContext(ctx,
		s.rebind(`UPDATE tasks SET title = ?, status = ?, updated_at = ? WHERE id = ?`),
		t.Title, string(t.Status), toMillis(now), t.ID,
	)
	if err != nil {
		return task.Task{}, fmt.Errorf("update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return task.Task{}, fmt.Errorf("update task rows: %w", err)
	}
	if affected == 0 {
		return task.Task{}, storage.ErrNotFound
	}
	return s.GetTask(ctx, t.ID)
}

// DeleteTask removes a task by id. Missing ids are ignored.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, s.rebind(`DELETE FROM tasks WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func scanTask(scan func(dest ...any) error) (task.Task, error) {
	var t task.Task
	var status string
	var createdAt, updatedAt int64
	if err := scan(&t.ID, &t.AccountID, &t.Title, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task.Task{}, err
		}
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.Status = task.Status(status)
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updatedAt)
	return t, nil
}
