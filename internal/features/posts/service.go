package posts

import (
	"context"
	"fmt"

	"github.com/xyz-asif/lostfound/internal/features/users"
	"github.com/xyz-asif/lostfound/internal/pkg/clock"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	"github.com/xyz-asif/lostfound/internal/pkg/metrics"
	"github.com/xyz-asif/lostfound/internal/pkg/validator"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
)

// UserResolver looks up the submitter for display enrichment.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
}

// Service owns post creation, replacement and status transitions.
type Service struct {
	store   Store
	users   UserResolver
	clock   clock.Clock
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, users UserResolver, clk clock.Clock, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		users:   users,
		clock:   clk,
		log:     log.With("component", "posts"),
		metrics: m,
	}
}

// Create stores a new post. A missing date becomes today; a missing status
// becomes LOST. Duplicate reports are allowed.
func (s *Service) Create(ctx context.Context, req PostRequest) (*Post, error) {
	p := req.toPost()
	now := s.clock.Now()

	if p.Date == "" {
		p.Date = now.Format(validator.DateLayout)
	}
	if p.Status == "" {
		p.Status = StatusLost
	}
	s.enrich(ctx, p)
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	s.metrics.PostCreated(string(p.Status))
	s.log.Info("post created", "id", p.ID.Hex(), "type", p.Type, "status", p.Status)
	return p, nil
}

// enrich copies the submitter's display name. Lookup failures degrade to "U".
func (s *Service) enrich(ctx context.Context, p *Post) {
	p.UserInitial = fallbackInitial
	if p.UserID == "" {
		return
	}

	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.log.Warn("submitter lookup failed", "userId", p.UserID, "error", err)
		}
		return
	}
	p.UserName = u.Name
	p.UserInitial = Initial(u.Name)
}

// Update replaces the stored post under its original id. createdAt, the
// moderation flag and, when the draft has none, the status survive the replace.
func (s *Service) Update(ctx context.Context, id string, req PostRequest) (*Post, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", id, err)
	}

	p := req.toPost()
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.Hidden = existing.Hidden
	p.UpdatedAt = s.clock.Now()
	if p.Status == "" {
		p.Status = existing.Status
	}

	if err := s.store.Replace(ctx, p); err != nil {
		return nil, fmt.Errorf("post %s: %w", id, err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", id, err)
	}
	return p, nil
}

// List returns every post, regardless of hidden flag, optionally by status.
func (s *Service) List(ctx context.Context, status Status) ([]Post, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, apperrors.ErrInvalidInput)
	}
	return s.store.List(ctx, Filter{Status: status})
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Post, error) {
	return s.store.List(ctx, Filter{UserID: userID})
}

// Delete is idempotent and leaves interactions pointing at the post untouched.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		s.log.Info("post deleted", "id", id)
	}
	return nil
}

// Remove deletes a post that must exist.
func (s *Service) Remove(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
	}
	s.log.Info("post removed", "id", id)
	return nil
}

// Resolve marks the post RESOLVED with a single-field write.
func (s *Service) Resolve(ctx context.Context, id string) error {
	return s.SetStatus(ctx, id, StatusResolved)
}

func (s *Service) SetStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("status %q: %w", status, apperrors.ErrInvalidInput)
	}
	if err := s.store.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("post %s: %w", id, err)
	}
	return nil
}

func (s *Service) ToggleHidden(ctx context.Context, id string) (*Post, error) {
	p, err := s.store.ToggleHidden(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", id, err)
	}
	s.log.Info("post hidden toggled", "id", id, "hidden", p.Hidden)
	return p, nil
}

func (s *Service) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return s.store.DeleteByUser(ctx, userID)
}

func (s *Service) CountByStatus(ctx context.Context, status Status) (int64, error) {
	return s.store.CountByStatus(ctx, status)
}
