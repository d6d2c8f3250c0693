package inmemory

import (
	"context"
	"sync"

	"timeTracker/internal/logger"
	"timeTracker/internal/models/sheet"
	"timeTracker/internal/models/user"
	repo "timeTracker/internal/repository"
)

// SheetStorage keeps every user's grouped sheet in process memory.
// The whole per-user document is replaced on Save, last write wins,
// same hazard the browser-storage original had across tabs.
type SheetStorage struct {
	sheets map[string][]*sheet.TaskGroup
	users  map[string]*user.User
	order  []string
	mtx    *sync.RWMutex
}

func NewSheetStorage() *SheetStorage {
	return &SheetStorage{
		sheets: make(map[string][]*sheet.TaskGroup),
		users:  make(map[string]*user.User),
		order:  []string{},
		mtx:    &sync.RWMutex{},
	}
}

func (s *SheetStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: storage reachable")
	return nil
}

// Load returns a deep copy so callers never share task pointers with
// the storage. An unknown user gets an empty sheet, not an error.
func (s *SheetStorage) Load(ctx context.Context, userName string) ([]*sheet.TaskGroup, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	groups, ok := s.sheets[userName]
	if !ok {
		return []*sheet.TaskGroup{}, nil
	}
	return sheet.CloneGroups(groups), nil
}

func (s *SheetStorage) Save(ctx context.Context, userName string, groups []*sheet.TaskGroup) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.sheets[userName] = sheet.CloneGroups(groups)
	return nil
}

func (s *SheetStorage) Clear(ctx context.Context, userName string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.sheets, userName)
	return nil
}

func (s *SheetStorage) GetUser(ctx context.Context, name string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.users[name]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *SheetStorage) AddUser(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.users[u.Name]; ok {
		return repo.ErrUserExists
	}
	copied := *u
	s.users[u.Name] = &copied
	s.order = append(s.order, u.Name)
	return nil
}

// ListUsers returns users in registration order.
func (s *SheetStorage) ListUsers(ctx context.Context) ([]*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	result := make([]*user.User, 0, len(s.order))
	for _, name := range s.order {
		copied := *s.users[name]
		result = append(result, &copied)
	}
	return result, nil
}
