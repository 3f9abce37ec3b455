package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/security"
)

// AuthService handles registration and login.
type AuthService struct {
	users  domain.UserRepository
	tokens *security.TokenService
	hash   *security.PasswordHasher
}

func NewAuthService(users domain.UserRepository, tokens *security.TokenService, hash *security.PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hash:   hash,
	}
}

type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	Branch        string
	Year          string
	ContactNumber string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult carries a freshly issued token with the authenticated user.
type AuthResult struct {
	Token string
	User  *domain.User
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Branch == "" || in.Year == "" {
		return nil, fmt.Errorf("%w: name, email, password, branch and year are required", domain.ErrValidation)
	}
	if !domain.ValidBranch(in.Branch) {
		return nil, fmt.Errorf("%w: unknown branch %q", domain.ErrValidation, in.Branch)
	}
	if !domain.ValidYear(in.Year) {
		return nil, fmt.Errorf("%w: unknown year %q", domain.ErrValidation, in.Year)
	}

	// Pre-check gives the clean error in the common case. Two concurrent
	// registrations can both pass it; the unique constraint in the store
	// is the real backstop and the repo maps its violation to the same
	// ErrDuplicateEmail.
	if existing, err := s.users.GetByEmail(ctx, in.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hashed, err := s.hash.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:           in.Name,
		Email:          in.Email,
		HashedPassword: hashed,
		Branch:         in.Branch,
		Year:           in.Year,
		ContactNumber:  in.ContactNumber,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.CreateForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		// Same error as a wrong password; the response must not reveal
		// whether the email is registered.
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.hash.Verify(in.Password, user.HashedPassword)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("stored password digest is malformed")
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.CreateForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
