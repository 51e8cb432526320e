package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xyz-asif/lostfound/internal/features/users"
	"github.com/xyz-asif/lostfound/internal/pkg/jwt"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	ErrAccountBlocked     = fmt.Errorf("account is blocked: %w", apperrors.ErrForbidden)
	ErrAdminRequired      = fmt.Errorf("admin access required: %w", apperrors.ErrForbidden)
	ErrGoogleDisabled     = fmt.Errorf("google sign-in is not configured: %w", apperrors.ErrUnavailable)
)

// Accounts is the user surface auth needs.
type Accounts interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetByID(ctx context.Context, id string) (*users.User, error)
	Save(ctx context.Context, req users.SaveUserRequest) (*users.User, error)
	SetPassword(ctx context.Context, id, password string) error
}

type Service struct {
	accounts Accounts
	tokens   *jwt.Config
	verifier TokenVerifier
	log      *logger.Logger
}

// NewService builds the auth service. verifier may be nil, which disables
// Google sign-in.
func NewService(accounts Accounts, tokens *jwt.Config, verifier TokenVerifier, log *logger.Logger) *Service {
	return &Service{accounts: accounts, tokens: tokens, verifier: verifier, log: log.With("component", "auth")}
}

// AdminLogin checks credentials for an ADMIN or OWNER. An admin without a
// stored password adopts the first one presented.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.accounts.GetByEmail(ctx, strings.TrimSpace(email))
	if apperrors.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.Blocked {
		return nil, ErrAccountBlocked
	}
	if !user.IsAdmin() {
		return nil, ErrAdminRequired
	}

	if user.PasswordHash == "" {
		if err := s.accounts.SetPassword(ctx, user.ID.Hex(), password); err != nil {
			return nil, err
		}
		s.log.Info("admin password initialised", "userId", user.ID.Hex())
		if user, err = s.accounts.GetByID(ctx, user.ID.Hex()); err != nil {
			return nil, err
		}
	}

	if !users.CheckPassword(user, password) {
		s.log.Warn("admin login rejected", "email", user.Email)
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := jwt.GenerateTokenPair(user.ID.Hex(), user.Email, user.Roles, s.tokens)
	if err != nil {
		return nil, err
	}

	s.log.Info("admin logged in", "userId", user.ID.Hex())
	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User: &UserSummary{
			ID:    user.ID.Hex(),
			Email: user.Email,
			Name:  user.Name,
			Roles: user.Roles,
		},
	}, nil
}

// Refresh issues a new access token while the user is still an unblocked admin.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := jwt.ValidateTokenOfType(refreshToken, jwt.TypeRefresh, s.tokens)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.accounts.GetByID(ctx, claims.UserID)
	if err != nil || user.Blocked || !user.IsAdmin() {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}

	access, err := jwt.GenerateAccessToken(user.ID.Hex(), user.Email, user.Roles, s.tokens)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: access}, nil
}

// GoogleSignIn verifies an ID token and upserts the user as a google account.
func (s *Service) GoogleSignIn(ctx context.Context, idToken string) (*users.User, error) {
	if s.verifier == nil {
		return nil, ErrGoogleDisabled
	}

	gu, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrUnauthorized)
	}
	if gu.Email == "" {
		return nil, fmt.Errorf("token has no email: %w", apperrors.ErrUnauthorized)
	}

	req := users.SaveUserRequest{
		Email:        gu.Email,
		Name:         gu.Name,
		PhotoURL:     gu.Picture,
		AuthProvider: users.ProviderGoogle,
	}
	existing, err := s.accounts.GetByEmail(ctx, gu.Email)
	switch {
	case err == nil:
		if existing.Blocked {
			return nil, ErrAccountBlocked
		}
		req.PhoneNumber = existing.PhoneNumber
		if req.Name == "" {
			req.Name = existing.Name
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	return s.accounts.Save(ctx, req)
}
