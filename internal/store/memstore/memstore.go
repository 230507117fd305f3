// Package memstore is the ephemeral store backend: mutex-guarded maps, no
// I/O. It backs tests and the zero-dependency dev mode the way the original
// app's local mock backend did, behind the same store.Store contract as the
// MySQL backend.
package memstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
	"github.com/google/uuid"
)

// Store holds all records in process memory. A single mutex serializes
// mutations, which gives the per-record "arrival order, last write wins"
// semantics the durable backend gets from the database engine.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*models.UserModel
	posts     map[string]*models.PostModel
	reminders map[string]*models.ReminderModel
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:     make(map[string]*models.UserModel),
		posts:     make(map[string]*models.PostModel),
		reminders: make(map[string]*models.ReminderModel),
	}
}

func (s *Store) Users() store.UserStore         { return (*userStore)(s) }
func (s *Store) Posts() store.PostStore         { return (*postStore)(s) }
func (s *Store) Reminders() store.ReminderStore { return (*reminderStore)(s) }

func (s *Store) Ping(ctx context.Context) error { return nil }

func newID() string { return uuid.New().String() }

type userStore Store

func (s *userStore) Create(ctx context.Context, username, email, passwordHash string) (*models.UserModel, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || passwordHash == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", store.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, fmt.Errorf("%w: email already registered", store.ErrValidation)
		}
	}

	now := time.Now()
	u := &models.UserModel{
		Base:     models.Base{ID: newID(), CreatedAt: now, UpdatedAt: now},
		Username: username,
		Email:    email,
		Password: passwordHash,
	}
	s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) GetByID(ctx context.Context, id string) (*models.UserModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
