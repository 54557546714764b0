package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishydv/gharwa-backend/internal/models"
	"github.com/satishydv/gharwa-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	bcryptCost        = 12
)

// UserInfo is the public shape of a user, stripped of credentials.
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoginResult carries the authenticated identity and its bearer token.
type LoginResult struct {
	User  UserInfo
	Token string
}

// AuthService defines authentication operations.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	Register(ctx context.Context, username, email, password string) error
	GetUser(ctx context.Context, id int64) (*UserInfo, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService JWTService
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, jwtService JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login matches the identifier against username or email and verifies the
// password. Unknown user and wrong password are indistinguishable to the
// caller.
func (s *authService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		User: UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
		Token: token,
	}, nil
}

func (s *authService) Register(ctx context.Context, username, email, password string) error {
	if len(password) < minPasswordLength {
		return Validationf("Password must be at least 6 characters long")
	}

	exists, err := s.userRepo.Exists(ctx, username, email)
	if err != nil {
		return fmt.Errorf("registration lookup failed: %w", err)
	}
	if exists {
		return ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	return s.userRepo.Create(ctx, user)
}

func (s *authService) GetUser(ctx context.Context, id int64) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
