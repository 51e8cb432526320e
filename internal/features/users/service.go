package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	store    Store
	log      *logger.Logger
	hashCost int
}

func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log.With("component", "users"), hashCost: bcrypt.DefaultCost}
}

// Save upserts on email. The password only applies to a new account; the
// hash of an existing one is never replaced here.
func (s *Service) Save(ctx context.Context, req SaveUserRequest) (*User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", apperrors.ErrInvalidInput)
	}

	provider := req.AuthProvider
	if provider == "" {
		provider = ProviderLocal
	}

	u := &User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PhotoURL:     req.PhotoURL,
		PhoneNumber:  req.PhoneNumber,
		AuthProvider: provider,
		Roles:        []string{RoleUser},
	}
	if req.Password != "" {
		hash, err := s.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	saved, err := s.store.UpsertByEmail(ctx, u)
	if err != nil {
		return nil, err
	}
	s.log.Debug("user saved", "id", saved.ID.Hex(), "email", saved.Email)
	return saved, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", email, err)
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

func (s *Service) ToggleBlocked(ctx context.Context, id string) (*User, error) {
	u, err := s.store.ToggleBlocked(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	s.log.Info("user block toggled", "id", id, "blocked", u.Blocked)
	return u, nil
}

// Delete removes the user only; callers cascade to owned records.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (s *Service) SetPassword(ctx context.Context, id, password string) error {
	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.SetPasswordHash(ctx, id, hash)
}

func (s *Service) SetRoles(ctx context.Context, id string, roles []string) error {
	return s.store.SetRoles(ctx, id, roles)
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares against the stored bcrypt hash.
func CheckPassword(u *User, password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
