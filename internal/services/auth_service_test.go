package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"teslo/internal/apperrors"
	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/internal/services"
	"teslo/internal/testutil"
	"teslo/pkg/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, time.Hour, logger.Nop())
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	ctx := context.Background()

	in := models.RegisterInput{Email: "  Test@Example.COM ", Password: "password123", FullName: "Test User"}

	// Test successful registration
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		if u.Email != "test@example.com" || !u.IsActive || !u.HasRole(models.RoleUser) {
			return false
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) != nil {
			return false
		}
		cost, err := bcrypt.Cost([]byte(u.Password))
		u.ID = "user-123"
		return err == nil && cost == services.PasswordCost
	})).Return(nil).Once()

	result, err := authService.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "user-123", result.User.ID)
	assert.Equal(t, "test@example.com", result.User.Email)
	assert.Equal(t, []string{models.RoleUser}, result.User.Roles)
	userID, err := authService.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	// Test email already registered
	mockRepo.On("Create", ctx, mock.Anything).Return(&repositories.StorageError{
		Kind: repositories.FailureUniqueViolation, Op: "create user", Detail: "Key (email)=(test@example.com) already exists.", Err: errors.New("23505"),
	}).Once()
	_, err = authService.Register(ctx, in)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	assert.Contains(t, err.Error(), "already exists")

	// Test unexpected storage failure
	mockRepo.On("Create", ctx, mock.Anything).Return(&repositories.StorageError{Op: "create user", Err: errors.New("connection reset")}).Once()
	_, err = authService.Register(ctx, in)
	assert.True(t, apperrors.Is(err, apperrors.KindInternal))
	assert.NotContains(t, err.Error(), "connection reset")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	ctx := context.Background()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := func() *models.User {
		return &models.User{ID: "user-123", Email: "test@example.com", Password: string(hashedPassword), IsActive: true}
	}

	// Test successful login
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(user(), nil).Once()
	result, err := authService.Login(ctx, "TEST@example.com ", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "user-123", result.User.ID)

	// Wrong password and unknown email fail identically
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(user(), nil).Once()
	_, wrongPassword := authService.Login(ctx, "test@example.com", "wrongpassword")

	mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, fmt.Errorf("get user: %w", repositories.ErrNotFound)).Once()
	_, unknownEmail := authService.Login(ctx, "nobody@example.com", "password123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.True(t, apperrors.Is(wrongPassword, apperrors.KindUnauthorized))
	assert.Equal(t, apperrors.KindOf(wrongPassword), apperrors.KindOf(unknownEmail))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	// Storage failures are not reported as bad credentials
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, &repositories.StorageError{Op: "get user", Err: errors.New("timeout")}).Once()
	_, err = authService.Login(ctx, "test@example.com", "password123")
	assert.True(t, apperrors.Is(err, apperrors.KindInternal))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_VerifyToken(t *testing.T) {
	authService := newAuthService(new(MockUserRepository))

	// Test valid token
	token, err := authService.IssueToken("user-123")
	require.NoError(t, err)
	userID, err := authService.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	// Test malformed token
	_, err = authService.VerifyToken("invalid.token.string")
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidToken))

	// Test wrong secret
	other := services.NewAuthService(new(MockUserRepository), "other_secret", time.Hour, logger.Nop())
	foreign, _ := other.IssueToken("user-123")
	_, err = authService.VerifyToken(foreign)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidToken))

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.StandardClaims{
		Subject:   "user-123",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.VerifyToken(expiredTokenString)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidToken))

	// Test token without subject
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()})
	anonymousString, _ := anonymous.SignedString([]byte(testJWTSecret))
	_, err = authService.VerifyToken(anonymousString)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidToken))

	// Test the payload carries only the subject and timestamps
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte(testJWTSecret), nil })
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sub", "iat", "exp"}, keys(claims))
}

func keys(m jwt.MapClaims) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestAuthService_ResolveUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	ctx := context.Background()
	token, _ := authService.IssueToken("user-123")

	mockRepo.On("GetByID", ctx, "user-123").Return(&models.User{ID: "user-123", IsActive: true}, nil).Once()
	user, err := authService.ResolveUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)

	mockRepo.On("GetByID", ctx, "user-123").Return(&models.User{ID: "user-123", IsActive: false}, nil).Once()
	_, err = authService.ResolveUser(ctx, token)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	mockRepo.On("GetByID", ctx, "user-123").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.ResolveUser(ctx, token)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidToken))
	mockRepo.AssertExpectations(t)
}

func TestAuthServiceDB_RegisterLoginCheckStatus(t *testing.T) {
	db := testutil.DB(t)
	authService := newAuthService(repositories.NewGORMUserRepository(db))
	ctx := context.Background()

	registered, err := authService.Register(ctx, models.RegisterInput{Email: "Shopper@Teslo.dev", Password: "Abc123456", FullName: "Shopper"})
	require.NoError(t, err)
	assert.Equal(t, "shopper@teslo.dev", registered.User.Email)

	_, err = authService.Register(ctx, models.RegisterInput{Email: "shopper@teslo.dev ", Password: "Abc123456", FullName: "Again"})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	loggedIn, err := authService.Login(ctx, "SHOPPER@teslo.dev", "Abc123456")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	user, err := authService.ResolveUser(ctx, loggedIn.Token)
	require.NoError(t, err)
	assert.Empty(t, user.Password)

	status, err := authService.CheckAuthStatus(user)
	require.NoError(t, err)
	assert.Equal(t, registered.User, status.User)
	assert.NotEmpty(t, status.Token)

	_, wrongPassword := authService.Login(ctx, "shopper@teslo.dev", "nope")
	_, unknownEmail := authService.Login(ctx, "ghost@teslo.dev", "Abc123456")
	assert.Equal(t, wrongPassword, unknownEmail)
}
