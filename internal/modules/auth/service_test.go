package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodle-journal/core/internal/middleware"
	"github.com/doodle-journal/core/internal/store/memstore"
)

func newTestService() *Service {
	return NewService(memstore.New())
}

func TestRegister_IssuesUsableToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	u, token, err := svc.Register(ctx, &RegisterDTO{
		Username: "ayaka",
		Email:    "Ayaka@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "ayaka", u.Username)
	// Email is normalized on the way in.
	assert.Equal(t, "ayaka@example.com", u.Email)
	assert.NotEqual(t, "secret123", u.Password)

	uid, err := middleware.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, _, err := svc.Register(ctx, &RegisterDTO{Username: "a", Email: "dup@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, &RegisterDTO{Username: "b", Email: "DUP@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, errEmailTaken)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	registered, _, err := svc.Register(ctx, &RegisterDTO{
		Username: "ayaka", Email: "ayaka@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	u, token, err := svc.Login(ctx, &LoginDTO{Email: "ayaka@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, registered.ID, u.ID)

	// Wrong password and unknown email are indistinguishable.
	_, _, err = svc.Login(ctx, &LoginDTO{Email: "ayaka@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, errBadCredentials)
	_, _, err = svc.Login(ctx, &LoginDTO{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, errBadCredentials)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	u, _, err := svc.Register(ctx, &RegisterDTO{
		Username: "ayaka", Email: "ayaka@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	got, err := svc.CurrentUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = svc.CurrentUser(ctx, "deleted-user")
	assert.ErrorIs(t, err, errUserUnavailable)
}
