package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
	"github.com/vivekmitra98/shareplaces-backend/internal/store/storetest"
)

func newUserService(st *storetest.Store) (*UserService, *TokenService) {
	tokens := NewTokenService("test-secret")
	return NewUserService(st, tokens, zerolog.Nop()), tokens
}

func TestSignupThenLogin(t *testing.T) {
	st := storetest.New()
	users, tokens := newUserService(st)
	ctx := context.Background()

	req := models.SignupRequest{Username: "Max", Email: "max@example.com", Password: "secret1"}
	auth, err := users.Signup(ctx, req, "uploads/images/max.png")
	require.NoError(t, err)
	assert.NotEmpty(t, auth.UserID)
	assert.Equal(t, "max@example.com", auth.Email)

	claims, err := tokens.Validate(auth.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.UserID, claims.UserID)

	logged, err := users.Login(ctx, models.LoginRequest{Email: "max@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, auth.UserID, logged.UserID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	st := storetest.New()
	users, _ := newUserService(st)
	ctx := context.Background()

	req := models.SignupRequest{Username: "Max", Email: "max@example.com", Password: "secret1"}
	_, err := users.Signup(ctx, req, "uploads/images/max.png")
	require.NoError(t, err)

	req.Username = "Other Max"
	_, err = users.Signup(ctx, req, "uploads/images/other.png")
	assert.ErrorIs(t, err, models.ErrEmailExists)

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "failed signup must not create a user record")
}

func TestLoginBadCredentials(t *testing.T) {
	st := storetest.New()
	users, _ := newUserService(st)
	ctx := context.Background()

	_, err := users.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, models.ErrBadCredentials)

	req := models.SignupRequest{Username: "Max", Email: "max@example.com", Password: "secret1"}
	_, err = users.Signup(ctx, req, "uploads/images/max.png")
	require.NoError(t, err)

	_, err = users.Login(ctx, models.LoginRequest{Email: "max@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, models.ErrBadCredentials)
}

func TestListUsersEmptyIsNotFound(t *testing.T) {
	users, _ := newUserService(storetest.New())

	_, err := users.List(context.Background())
	assert.ErrorIs(t, err, models.ErrNoUsers)
}

func TestSignupStoreFailure(t *testing.T) {
	st := storetest.New()
	st.FailCreateUser = errors.New("connection reset")
	users, _ := newUserService(st)

	req := models.SignupRequest{Username: "Max", Email: "max@example.com", Password: "secret1"}
	_, err := users.Signup(context.Background(), req, "uploads/images/max.png")
	assert.ErrorIs(t, err, models.ErrSignupFailed)
}

func TestHashPasswordDeterministic(t *testing.T) {
	assert.Equal(t, hashPassword("secret1"), hashPassword("secret1"))
	assert.NotEqual(t, hashPassword("secret1"), hashPassword("secret2"))
	assert.Len(t, hashPassword("secret1"), 32)
}
