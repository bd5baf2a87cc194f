package service

import (
	"context"
	"sort"
	"sync"

	"github.com/louisbranch/weathertask/internal/services/tasks/account"
	"github.com/louisbranch/weathertask/internal/services/tasks/storage"
	"github.com/louisbranch/weathertask/internal/services/tasks/task"
)

// fakeStore is an in-memory AccountStore and TaskStore.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]account.Account
	tasks    map[int64]task.Task

	// hideExisting makes AccountExists report false so the unique index
	// path is exercised.
	hideExisting bool
	saveErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: make(map[int64]account.Account),
		tasks:    make(map[int64]task.Task),
	}
}

func (s *fakeStore) FindAccountByLogin(_ context.Context, login string) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Login == login {
			return a, nil
		}
	}
	return account.Account{}, storage.ErrNotFound
}

func (s *fakeStore) AccountExists(ctx context.Context, login string) (bool, error) {
	if s.hideExisting {
		return false, nil
	}
	_, err := s.FindAccountByLogin(ctx, login)
	if err == storage.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (s *fakeStore) GetAccount(_ context.Context, id int64) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return account.Account{}, storage.ErrNotFound
	}
	return a, nil
}

func (s *fakeStore) SaveAccount(_ context.Context, a account.Account) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return account.Account{}, s.saveErr
	}
	if a.ID == 0 {
		for _, existing := range s.accounts {
			if existing.Login == a.Login {
				return account.Account{}, storage.ErrConflict
			}
		}
		s.nextID++
		a.ID = s.nextID
	} else if _, ok := s.accounts[a.ID]; !ok {
		return account.Account{}, storage.ErrNotFound
	}
	s.accounts[a.ID] = a
	return a, nil
}

func (s *fakeStore) ListTasksByAccount(_ context.Context, accountID int64) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]task.Task, 0)
	for _, t := range s.tasks {
		if t.AccountID == accountID {
			items = append(items, t)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *fakeStore) GetTask(_ context.Context, id int64) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return task.Task{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *fakeStore) SaveTask(_ context.Context, t task.Task) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return task.Task{}, s.saveErr
	}
	if t.ID == 0 {
		s.nextID++
		t.ID = s.nextID
	} else if _, ok := s.tasks[t.ID]; !ok {
		return task.Task{}, storage.ErrNotFound
	}
	s.tasks[t.ID] = t
	return t, nil
}

func (s *fakeStore) DeleteTask(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

func (s *fakeStore) taskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
