package service

import (
	"context"
	"database/sql"
	"testing"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokenManager(t *testing.T) security.TokenManager {
	t.Helper()
	return security.NewTokenManager("test-secret-test-secret-test-secret", 7)
}

func TestRegister_HashesPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testTokenManager(t))

	userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, sql.ErrNoRows)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" && u.PasswordHash != "secret123" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Return(nil)

	user, err := svc.Register(context.Background(), "new@example.com", "secret123", "New User")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testTokenManager(t))

	userRepo.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{ID: "u-1", Email: "taken@example.com"}, nil)

	_, err := svc.Register(context.Background(), "taken@example.com", "secret123", "Someone")
	assert.ErrorIs(t, err, ErrEmailTaken)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_ReturnsUserAndToken(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokens := testTokenManager(t)
	svc := NewAuthService(userRepo, tokens)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetByEmail", mock.Anything, "admin@example.com").Return(&domain.User{
		ID:           "u-1",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}, nil)

	user, token, err := svc.Login(context.Background(), "admin@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testTokenManager(t))

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").
		Return(&domain.User{ID: "u-1", PasswordHash: string(hash)}, nil)

	_, _, err = svc.Login(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testTokenManager(t))

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
