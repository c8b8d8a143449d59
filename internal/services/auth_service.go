package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"teslo/internal/apperrors"
	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/pkg/logger"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

// credentialsNotValid is shared by every login failure so callers cannot tell
// an unknown email from a wrong password.
const credentialsNotValid = "credentials are not valid"

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *logger.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new AuthService. The secret signs every token the
// service issues and verifies.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log.With("component", "auth_service"),
	}
}

// Register creates a regular user and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (*models.AuthResult, error) {
	return s.RegisterWithRoles(ctx, in, models.RoleUser)
}

// RegisterWithRoles creates a user holding the given roles.
func (s *AuthService) RegisterWithRoles(ctx context.Context, in models.RegisterInput, roles ...string) (*models.AuthResult, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		s.log.Error("failed to hash password", "error", err)
		return nil, apperrors.Internal(fmt.Errorf("hash password: %w", err))
	}
	if len(roles) == 0 {
		roles = []string{models.RoleUser}
	}

	user := &models.User{
		Email:    in.Email,
		Password: string(hashedPassword),
		FullName: in.FullName,
		IsActive: true,
		Roles:    datatypes.JSONSlice[string](roles),
	}
	user.Normalize()

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, translateStorageError(s.log, "register user", err, nil)
	}
	user.Password = ""
	return s.authResult(user)
}

// Login checks credentials and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Spend the same bcrypt time as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.dummyPasswordHash(), []byte(password))
			return nil, apperrors.Unauthorized(credentialsNotValid)
		}
		return nil, translateStorageError(s.log, "login", err, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized(credentialsNotValid)
	}
	user.Password = ""
	return s.authResult(user)
}

// CheckAuthStatus re-issues a token for an already authenticated user.
func (s *AuthService) CheckAuthStatus(user *models.User) (*models.AuthResult, error) {
	return s.authResult(user)
}

// IssueToken signs a token whose subject is the user id.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.StandardClaims{
		Subject:   userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the subject user id.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", apperrors.InvalidToken(err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", apperrors.InvalidToken(errors.New("token has no subject"))
	}
	return claims.Subject, nil
}

// ResolveUser verifies the token and loads the active user it names.
func (s *AuthService) ResolveUser(ctx context.Context, tokenString string) (*models.User, error) {
	userID, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, translateStorageError(s.log, "resolve user", err, func() *apperrors.Error {
			return apperrors.InvalidToken(err)
		})
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("user is inactive, talk with an admin")
	}
	user.Password = ""
	return user, nil
}

func (s *AuthService) authResult(user *models.User) (*models.AuthResult, error) {
	token, err := s.IssueToken(user.ID)
	if err != nil {
		s.log.Error("failed to sign token", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal(err)
	}
	return &models.AuthResult{User: user.View(), Token: token}, nil
}

func (s *AuthService) dummyPasswordHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), PasswordCost)
	})
	return s.dummyHash
}
