package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	platformstorage "github.com/louisbranch/weathertask/internal/platform/storage"
	"github.com/louisbranch/weathertask/internal/platform/storage/migrate"
	"github.com/louisbranch/weathertask/internal/services/tasks/storage"
	"github.com/louisbranch/weathertask/internal/services/tasks/storage/sqlstore/migrations"
)

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store implements storage.AccountStore and storage.TaskStore over database/sql.
type Store struct {
	sqlDB   *sql.DB
	dialect platformstorage.Dialect
	now     func() time.Time
}

var (
	_ storage.AccountStore = (*Store)(nil)
	_ storage.TaskStore    = (*Store)(nil)
)

// DB returns the raw database handle.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Dialect returns the SQL flavor the store was opened with.
func (s *Store) Dialect() platformstorage.Dialect {
	if s == nil {
		return ""
	}
	return s.dialect
}

// Open opens a store for the dialect and applies bundled migrations.
//
// For SQLite the dsn is a file path; parent directories are created. For
// Postgres the dsn is a lib/pq connection string or URL.
func Open(ctx context.Context, dialect platformstorage.Dialect, dsn string) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("storage dsn is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var driverDSN string
	switch dialect {
	case platformstorage.DialectSQLite:
		cleanPath := filepath.Clean(dsn)
		if dir := filepath.Dir(cleanPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		driverDSN = "file:" + cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	case platformstorage.DialectPostgres:
		driverDSN = dsn
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	sqlDB, err := sql.Open(dialect.DriverName(), driverDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}

	store := &Store{
		sqlDB:   sqlDB,
		dialect: dialect,
		now:     time.Now,
	}
	if err := migrate.ApplyMigrations(ctx, sqlDB, dialect, migrations.FS, string(dialect)); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) rebind(query string) string {
	return s.dialect.Rebind(query)
}

func (s *Store) ensureDB() error {
	if s == nil || s.sqlDB == nil {
		return errors.New("store is not configured")
	}
	return nil
}

// isUniqueViolation reports whether err is a uniqueness constraint failure
// from either driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	return false
}
