package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/pkg/apperror"
	"github.com/minhphamdev/banle-api/pkg/utils"
)

type authFixture struct {
	users *fakeUserRepo
	jwt   *utils.JWTManager
	svc   *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users: newFakeUserRepo(),
		jwt:   utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour),
	}
	f.svc = NewAuthService(f.users, f.jwt)
	return f
}

func (f *authFixture) addUser(t *testing.T, username, password, role string, active bool) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &entity.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     "Test User",
		Role:         role,
		Active:       active,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestLogin_IssuesAccessAndRefreshTokens(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "cashier1", "secret123", "cashier", true)

	out, err := f.svc.Login(context.Background(), &LoginInput{Username: "cashier1", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.AccessToken)
	require.NotEmpty(t, out.RefreshToken)
	assert.NotEqual(t, out.AccessToken, out.RefreshToken)

	// Both tokens carry the full identity claims
	for _, token := range []string{out.AccessToken, out.RefreshToken} {
		claims, err := f.jwt.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "cashier1", claims.Username)
		assert.Equal(t, "cashier", claims.Role)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "cashier1", "secret123", "cashier", true)
	f.addUser(t, "retired", "secret123", "cashier", false)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, &LoginInput{Username: "cashier1", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, &LoginInput{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	// Deactivated accounts cannot log in
	_, err = f.svc.Login(ctx, &LoginInput{Username: "retired", Password: "secret123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	user, err := f.svc.Register(ctx, &RegisterInput{Username: "new", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "cashier", user.Role)
	assert.True(t, user.Active)
	assert.True(t, utils.CheckPasswordHash("secret123", user.PasswordHash))

	_, err = f.svc.Register(ctx, &RegisterInput{Username: "new", Password: "other"})
	assert.EqualError(t, err, "Username already taken")
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "cashier1", "secret123", "cashier", true)
	ctx := context.Background()

	err := f.svc.ChangePassword(ctx, user.ID, "wrong", "newpass456")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	require.NoError(t, f.svc.ChangePassword(ctx, user.ID, "secret123", "newpass456"))

	_, err = f.svc.Login(ctx, &LoginInput{Username: "cashier1", Password: "newpass456"})
	assert.NoError(t, err)
}
