package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/taskpad/taskpad-go/internal/crypto"
	"github.com/taskpad/taskpad-go/internal/model"
	"github.com/taskpad/taskpad-go/internal/repository"
)

// Sentinel error texts double as client-facing messages, so they carry the
// exact casing the API responds with.
var (
	ErrCredentialsRequired = errors.New("Username and password are required")
	ErrPasswordTooShort    = errors.New("Password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("Password must be at most 72 characters long")
	ErrUsernameTaken       = errors.New("Username already exists")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
)

const (
	minPasswordLength = 6
	// bcrypt refuses inputs longer than 72 bytes.
	maxPasswordLength = 72
)

// AuthService handles registration and login business logic.
type AuthService struct {
	repo      *repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns an auth token. Username
// uniqueness is enforced by the database constraint, not a prior lookup;
// the duplicate key error from the insert is the conflict signal.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return model.AuthResponse{}, ErrCredentialsRequired
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return model.AuthResponse{}, ErrPasswordTooShort
	}
	if len(req.Password) > maxPasswordLength {
		return model.AuthResponse{}, ErrPasswordTooLong
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.AuthResponse{}, ErrUsernameTaken
		}
		return model.AuthResponse{}, err
	}

	token, err := crypto.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User: model.UserResponse{
			ID:       user.ID,
			Username: user.Username,
		},
	}, nil
}

// Login authenticates a user and returns an auth token. A missing user and a
// wrong password produce the same error; callers cannot tell which usernames
// are registered.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return model.AuthResponse{}, ErrCredentialsRequired
	}

	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User: model.UserResponse{
			ID:       user.ID,
			Username: user.Username,
		},
	}, nil
}

// GetUser retrieves a user by ID and returns safe user data.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:       user.ID,
		Username: user.Username,
	}, nil
}
