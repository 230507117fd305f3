// Package gormstore is the durable store backend over MySQL via GORM.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
	"gorm.io/gorm"
)

// Store implements store.Store on a *gorm.DB. Single-statement writes rely
// on the engine's per-row atomicity; there is no optimistic concurrency
// token, so concurrent updates apply in arrival order and the later write
// wins entirely.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() store.UserStore         { return &userStore{db: s.db} }
func (s *Store) Posts() store.PostStore         { return &postStore{db: s.db} }
func (s *Store) Reminders() store.ReminderStore { return &reminderStore{db: s.db} }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrapErr(err)
	}
	return wrapErr(sqlDB.PingContext(ctx))
}

// wrapErr maps driver errors onto the store taxonomy.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
}

type userStore struct{ db *gorm.DB }

func (s *userStore) Create(ctx context.Context, username, email, passwordHash string) (*models.UserModel, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || passwordHash == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", store.ErrValidation)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, wrapErr(err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email already registered", store.ErrValidation)
	}

	u := models.UserModel{Username: username, Email: email, Password: passwordHash}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *userStore) GetByID(ctx context.Context, id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}
