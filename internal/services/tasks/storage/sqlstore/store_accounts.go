package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/weathertask/internal/services/tasks/account"
	"github.com/louisbranch/weathertask/internal/services/tasks/storage"
)

const accountColumns = `id, login, password_hash, created_at, updated_at`

// FindAccountByLogin returns the account with exactly this login.
func (s *Store) FindAccountByLogin(ctx context.Context, login string) (account.Account, error) {
	if err := s.ensureDB(); err != nil {
		return account.Account{}, err
	}
	if strings.TrimSpace(login) == "" {
		return account.Account{}, storage.ErrNotFound
	}
	row := s.sqlDB.QueryRowContext(ctx,
		s.rebind(`SELECT `+accountColumns+` FROM accounts WHERE login = ?`),
		login,
	)
	return scanAccount(row)
}

// AccountExists reports whether a login is taken.
func (s *Store) AccountExists(ctx context.Context, login string) (bool, error) {
	if err := s.ensureDB(); err != nil {
		return false, err
	}
	var found int
	err := s.sqlDB.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM accounts WHERE login = ?`), login).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check account exists: %w", err)
	}
	return true, nil
}

// GetAccount returns an account by id.
func (s *Store) GetAccount(ctx context.Context, id int64) (account.Account, error) {
	if err := s.ensureDB(); err != nil {
		return account.Account{}, err
	}
	if id <= 0 {
		return account.Account{}, storage.ErrNotFound
	}
	row := s.sqlDB.QueryRowContext(ctx,
		s.rebind(`SELECT `+accountColumns+` FROM accounts WHERE id = ?`),
		id,
	)
	return scanAccount(row)
}

// SaveAccount inserts a new account or updates an existing password hash.
func (s *Store) SaveAccount(ctx context.Context, a account.Account) (account.Account, error) {
	if err := s.ensureDB(); err != nil {
		return account.Account{}, err
	}
	if strings.TrimSpace(a.Login) == "" {
		return account.Account{}, fmt.Errorf("account login is required")
	}
	if a.PasswordHash == "" {
		return account.Account{}, fmt.Errorf("account password hash is required")
	}

	now := s.now().UTC()
	if a.ID == 0 {
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		a.UpdatedAt = a.CreatedAt
		err := s.sqlDB.QueryRowContext(ctx,
			s.rebind(`INSERT INTO accounts (login, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`),
			a.Login, a.PasswordHash, toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
		).Scan(&a.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return account.Account{}, storage.ErrConflict
			}
			return account.Account{}, fmt.Errorf("insert account: %w", err)
		}
		a.CreatedAt = fromMillis(toMillis(a.CreatedAt))
		a.UpdatedAt = fromMillis(toMillis(a.UpdatedAt))
		return a, nil
	}

	result, err := s.sqlDB.ExecContext(ctx,
		s.rebind(`UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`),
		a.PasswordHash, toMillis(now), a.ID,
	)
	if err != nil {
		return account.Account{}, fmt.Errorf("update account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return account.Account{}, fmt.Errorf("update account rows: %w", err)
	}
	if affected == 0 {
		return account.Account{}, storage.ErrNotFound
	}
	return s.GetAccount(ctx, a.ID)
}

func scanAccount(row *sql.Row) (account.Account, error) {
	var a account.Account
	var createdAt, updatedAt int64
	if err := row.Scan(&a.ID, &a.Login, &a.PasswordHash, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.Account{}, storage.ErrNotFound
		}
		return account.Account{}, fmt.Errorf("scan account: %w", err)
	}
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return a, nil
}
