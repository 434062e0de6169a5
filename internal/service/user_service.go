package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Kunal-41/task-manager-fullstack/internal/auth"
	"github.com/Kunal-41/task-manager-fullstack/internal/domain"
	"github.com/Kunal-41/task-manager-fullstack/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
}

func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
	}
}

// Register validates and creates a new account. The email is lowercased
// before storage so uniqueness is case-insensitive. The returned user
// never carries the password hash.
func (s *userService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)

	if email == "" {
		return nil, invalid("email", "Email and password are required")
	}
	if password == "" {
		return nil, invalid("password", "Email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, invalid("email", "Please enter a valid email address")
	}
	if utf8.RuneCountInString(password) < 6 {
		return nil, invalid("password", "Password must be at least 6 characters long")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Authenticate checks credentials against the stored hash. A missing
// account and a wrong password produce the same error.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("email", "Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
