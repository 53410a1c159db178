package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeTokens{}, zerolog.Nop())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Name: " Jane ", Email: "Jane@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	stored, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	session, err := svc.Login(ctx, LoginInput{Email: "JANE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "token-"+user.ID.String(), session.Token)
	assert.Equal(t, user.ID, session.User.ID)
	assert.Empty(t, session.User.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), fakeTokens{}, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "a@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrAuthEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), fakeTokens{}, zerolog.Nop())

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), fakeTokens{}, zerolog.Nop())
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "a@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}
