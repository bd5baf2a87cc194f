package service

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
	"github.com/louisbranch/weathertask/internal/services/tasks/account"
	"github.com/louisbranch/weathertask/internal/services/tasks/password"
	"github.com/louisbranch/weathertask/internal/services/tasks/storage"
	"github.com/louisbranch/weathertask/internal/services/tasks/token"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAccounts(t *testing.T, store *fakeStore) (*Accounts, *token.Service) {
	t.Helper()
	hasher, err := password.NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	tokens, err := token.NewService(testSecret, func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	})
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	svc, err := NewAccounts(store, hasher, tokens)
	if err != nil {
		t.Fatalf("new accounts: %v", err)
	}
	return svc, tokens
}

func TestNewAccountsRequiresDependencies(t *testing.T) {
	if _, err := NewAccounts(nil, nil, nil); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestAccounts(t, store)

	created, err := svc.Register(context.Background(), "  alice  ", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Login != "alice" {
		t.Fatalf("login = %q, want trimmed alice", created.Login)
	}
	if created.PasswordHash == "secret" || !password.IsHashed(created.PasswordHash) {
		t.Fatalf("expected bcrypt hash, got %q", created.PasswordHash)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAccounts(t, newFakeStore())
	tests := []struct {
		name     string
		login    string
		password string
	}{
		{name: "empty login", login: "", password: "secret"},
		{name: "blank login", login: "   ", password: "secret"},
		{name: "empty password", login: "alice", password: ""},
		{name: "blank password", login: "alice", password: "  "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.login, tc.password)
			if apperrors.CodeOf(err) != apperrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateLogin(t *testing.T) {
	svc, _ := newTestAccounts(t, newFakeStore())
	if _, err := svc.Register(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "alice", "other")
	if err != ErrLoginTaken {
		t.Fatalf("expected ErrLoginTaken, got %v", err)
	}
}

func TestRegisterMapsStoreConflict(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestAccounts(t, store)
	if _, err := svc.Register(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	store.hideExisting = true
	_, err := svc.Register(context.Background(), "alice", "other")
	if err != ErrLoginTaken {
		t.Fatalf("expected ErrLoginTaken from unique index, got %v", err)
	}
}

func TestRegisterWrapsStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	svc, _ := newTestAccounts(t, store)
	_, err := svc.Register(context.Background(), "alice", "secret")
	if err == nil || apperrors.CodeOf(err) != apperrors.CodeUnknown {
		t.Fatalf("expected unknown error, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, tokens := newTestAccounts(t, newFakeStore())
	created, err := svc.Register(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	signed, err := svc.Login(context.Background(), " alice ", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	identity, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if identity.AccountID != created.ID || identity.Login != "alice" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestAccounts(t, newFakeStore())
	if _, err := svc.Register(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name     string
		login    string
		password string
	}{
		{name: "unknown login", login: "ghost", password: "secret"},
		{name: "wrong password", login: "alice", password: "wrong"},
		{name: "case differs", login: "Alice", password: "secret"},
		{name: "blank", login: "", password: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.login, tc.password)
			if err != ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLoginPropagatesStoreErrors(t *testing.T) {
	svc, _ := newTestAccounts(t, newFakeStore())
	svc.store = failingAccountStore{}
	_, err := svc.Login(context.Background(), "alice", "secret")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

type failingAccountStore struct {
	storage.AccountStore
}

func (failingAccountStore) FindAccountByLogin(context.Context, string) (account.Account, error) {
	return account.Account{}, errors.New("connection reset")
}
