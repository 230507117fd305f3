package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/pkg/jwt"
	"github.com/doodle-journal/core/internal/store"
)

var (
	errEmailTaken      = errors.New("email already registered")
	errBadCredentials  = errors.New("wrong email or password")
	errUserUnavailable = errors.New("user unavailable")
)

const tokenTTL = 7 * 24 * time.Hour

// Service implements registration and login over the user store.
type Service struct {
	users store.UserStore
}

func NewService(st store.Store) *Service {
	return &Service{users: st.Users()}
}

// Register creates a user with a bcrypt password hash and issues a token.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*models.UserModel, string, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", errEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u, err := s.users.Create(ctx, strings.TrimSpace(dto.Username), email, string(hash))
	if err != nil {
		return nil, "", err
	}

	token, err := jwt.Sign(u.ID, tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password come back as the same error.
func (s *Service) Login(ctx context.Context, dto *LoginDTO) (*models.UserModel, string, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", errBadCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.Password)); err != nil {
		return nil, "", errBadCredentials
	}

	token, err := jwt.Sign(u.ID, tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// CurrentUser resolves the authenticated principal by id.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.UserModel, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errUserUnavailable
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}
