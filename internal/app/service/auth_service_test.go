package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ebuka-odih/mini-ecommerce-backend/config"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/db"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/util"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	svc := NewAuthService(repository.NewUserRepository(testDB), config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	})
	return svc, testDB
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	result, err := svc.Register(RegisterInput{
		Email:    "jo@example.com",
		Password: "correct-horse",
		Name:     "Jo",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, result.User.Role)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.NotEqual(t, "correct-horse", result.User.PasswordHash)

	_, err = svc.Register(RegisterInput{
		Email:    "jo@example.com",
		Password: "another-pass",
		Name:     "Other Jo",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	_, err := svc.Register(RegisterInput{
		Email:    "jo@example.com",
		Password: "correct-horse",
		Name:     "Jo",
	})
	require.NoError(t, err)

	result, err := svc.Login(LoginInput{Email: "jo@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", result.User.Email)

	claims, err := util.ValidateToken(result.Tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)

	_, err = svc.Login(LoginInput{Email: "jo@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginInput{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, testDB := setupAuthServiceTest(t)

	result, err := svc.Register(RegisterInput{
		Email:    "jo@example.com",
		Password: "correct-horse",
		Name:     "Jo",
	})
	require.NoError(t, err)

	tokens, err := svc.Refresh(result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = svc.Refresh("not-a-token")
	assert.Error(t, err)

	// A deleted user's refresh token no longer works.
	require.NoError(t, testDB.Delete(&model.User{}, result.User.ID).Error)

	_, err = svc.Refresh(result.Tokens.RefreshToken)
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}
