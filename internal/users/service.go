package users

import (
	"context"
	"errors"
	"time"

	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
)

// Service encapsulates admin-user business logic
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// Authenticate verifies email+password, rejects deactivated accounts and
// records the login time.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.AdminUser, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}
	u.LastLogin = time.Now().UTC()
	if err := s.repo.SetLastLogin(ctx, u.ID, u.LastLogin); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*models.AdminUser, error) {
	return s.repo.List(ctx)
}

// Register creates a new active admin user with a hashed password.
func (s *Service) Register(ctx context.Context, email, password, name string, role models.Role) (*models.AdminUser, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.AdminUser{
		Email:    email,
		Password: hash,
		Name:     name,
		Role:     role,
		IsActive: true,
	}
	return s.repo.Create(ctx, u)
}

// ChangePassword verifies the current password before storing the new hash.
func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CheckPassword(u.Password, current) {
		return ErrInvalidCredentials
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

// ToggleActive flips the isActive flag. Accounts are never deleted.
func (s *Service) ToggleActive(ctx context.Context, id string) (*models.AdminUser, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetActive(ctx, id, !u.IsActive); err != nil {
		return nil, err
	}
	u.IsActive = !u.IsActive
	return u, nil
}
