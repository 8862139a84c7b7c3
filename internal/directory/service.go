package directory

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/business-nexus/nexus/internal/identifier"
)

// Service manages the user directory.
type Service struct {
	repo Repository
}

// NewService creates a new directory service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput captures data required to register a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates a user with a hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	if input.Email == "" {
		return User{}, errors.New("email is required")
	}
	if len(input.Password) < 8 {
		return User{}, errors.New("password must be at least 8 characters")
	}
	if input.Role != RoleInvestor && input.Role != RoleEntrepreneur {
		return User{}, errors.New("role must be investor or entrepreneur")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           identifier.New("user"),
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies login credentials.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByEmail(ctx, creds.Email)
	if err != nil {
		return User{}, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, errors.New("invalid credentials")
	}
	return user, nil
}

// FindUserByID looks a user up for display enrichment.
func (s *Service) FindUserByID(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// UsersByRole lists the directory entries for one side of the platform.
func (s *Service) UsersByRole(ctx context.Context, role string) ([]User, error) {
	return s.repo.ListByRole(ctx, role)
}
