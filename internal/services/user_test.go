package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopverse/ecommerce-backend/internal/config"
	appErrors "github.com/shopverse/ecommerce-backend/internal/errors"
	"github.com/shopverse/ecommerce-backend/internal/models"
	"github.com/shopverse/ecommerce-backend/internal/repositories/mocks"
	service "github.com/shopverse/ecommerce-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newUserServiceUnderTest() (service.UserService, *mocks.MockUserRepository, *mocks.MockRateLimiter) {
	repo := &mocks.MockUserRepository{}
	rateLimiter := &mocks.MockRateLimiter{}
	security := &config.Security{JWTKey: "test-signing-key", JWTExpiry: time.Hour}

	return service.NewUserService(repo, rateLimiter, security), repo, rateLimiter
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Password Stored Hashed", func(t *testing.T) {
		userService, repo, _ := newUserServiceUnderTest()

		// Arrange
		repo.On("GetUserByEmail", ctx, "new@example.com").Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateUser", ctx, mock.MatchedBy(func(user *models.User) bool {
			return user.Email == "new@example.com" &&
				bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-pass")) == nil
		})).Return(nil).Once()

		// Act
		user, err := userService.Register(ctx, &models.RegisterRequest{
			Email:    "new@example.com",
			Password: "s3cret-pass",
			Name:     "New User",
		})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEqual(t, "s3cret-pass", user.Password)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Email Taken", func(t *testing.T) {
		userService, repo, _ := newUserServiceUnderTest()

		// Arrange
		repo.On("GetUserByEmail", ctx, "taken@example.com").
			Return(&models.User{Email: "taken@example.com"}, nil).Once()

		// Act
		user, err := userService.Register(ctx, &models.RegisterRequest{
			Email:    "taken@example.com",
			Password: "s3cret-pass",
			Name:     "Someone",
		})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, user)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	existing := &models.User{Email: "user@example.com", Password: string(hashed)}

	t.Run("Success - Token Carries Claims", func(t *testing.T) {
		userService, repo, rateLimiter := newUserServiceUnderTest()

		// Arrange
		rateLimiter.On("CheckLoginRateLimit", ctx, "user@example.com").Return(true, 4, 0, nil).Once()
		repo.On("GetUserByEmail", ctx, "user@example.com").Return(existing, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: "user@example.com", Password: "s3cret-pass"})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.NotEmpty(t, resp.Token)

		claims := &models.Claims{}
		token, parseErr := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (any, error) {
			return []byte("test-signing-key"), nil
		})
		assert.NoError(t, parseErr)
		assert.True(t, token.Valid)
		assert.Equal(t, "user@example.com", claims.Email)
		rateLimiter.AssertExpectations(t)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		userService, repo, rateLimiter := newUserServiceUnderTest()

		// Arrange
		rateLimiter.On("CheckLoginRateLimit", ctx, "user@example.com").Return(true, 4, 0, nil).Once()
		repo.On("GetUserByEmail", ctx, "user@example.com").Return(existing, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: "user@example.com", Password: "wrong"})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Failure - Unknown Email Indistinguishable From Wrong Password", func(t *testing.T) {
		userService, repo, rateLimiter := newUserServiceUnderTest()

		// Arrange
		rateLimiter.On("CheckLoginRateLimit", ctx, "ghost@example.com").Return(true, 4, 0, nil).Once()
		repo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "anything"})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		userService, repo, rateLimiter := newUserServiceUnderTest()

		// Arrange
		rateLimiter.On("CheckLoginRateLimit", ctx, "user@example.com").Return(false, 0, 300, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: "user@example.com", Password: "s3cret-pass"})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, appErr.Code)
		repo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})
}
