package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bioqr/bioqr-go/internal/crypto"
	"github.com/bioqr/bioqr-go/internal/model"
	"github.com/bioqr/bioqr-go/internal/repository"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailRequired      = fmt.Errorf("%w: email is required", ErrValidation)
	ErrPasswordRequired   = fmt.Errorf("%w: password is required", ErrValidation)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user already exists")
	ErrStoreUnavailable   = errors.New("credential store unavailable")
)

// SignupMessage is returned after a successful signup.
const SignupMessage = "User registered successfully"

// CredentialStore persists user credentials keyed by exact email.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

// PasswordHasher hashes passwords and verifies them against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// TokenIssuer issues session tokens for an identity.
type TokenIssuer interface {
	Issue(identity string) (string, error)
}

var (
	_ PasswordHasher = (*crypto.Hasher)(nil)
	_ TokenIssuer    = (*crypto.TokenManager)(nil)
)

// AuthService handles authentication business logic.
type AuthService struct {
	store  CredentialStore
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(store CredentialStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// Signup creates a new user account. No token is issued; the caller logs in separately.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.MessageResponse, error) {
	if req.Email == "" {
		return model.MessageResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.MessageResponse{}, ErrPasswordRequired
	}

	// Fast path only; the unique index decides concurrent signups.
	_, err := s.store.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return model.MessageResponse{}, ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return model.MessageResponse{}, storeError(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.MessageResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.MessageResponse{}, ErrEmailTaken
		}
		return model.MessageResponse{}, storeError(err)
	}

	return model.MessageResponse{Message: SignupMessage}, nil
}

// Login authenticates a user and returns a session token.
// Unknown emails and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if req.Email == "" {
		return model.LoginResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.LoginResponse{}, ErrPasswordRequired
	}

	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, storeError(err)
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return model.LoginResponse{Token: token}, nil
}

// Me returns the account behind an authenticated identity.
func (s *AuthService) Me(ctx context.Context, email string) (model.UserResponse, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, err
		}
		return model.UserResponse{}, storeError(err)
	}

	return model.UserResponse{
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
