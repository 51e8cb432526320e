package interactions

import (
	"context"
	"fmt"
	"strings"

	"github.com/xyz-asif/lostfound/internal/features/posts"
	"github.com/xyz-asif/lostfound/internal/features/users"
	"github.com/xyz-asif/lostfound/internal/pkg/clock"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	"github.com/xyz-asif/lostfound/internal/pkg/metrics"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
)

// PostGateway is what the claim workflow needs from the post lifecycle.
type PostGateway interface {
	Get(ctx context.Context, id string) (*posts.Post, error)
	Resolve(ctx context.Context, id string) error
}

// UserDirectory resolves finders by email and owners by id.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetByID(ctx context.Context, id string) (*users.User, error)
}

// Service runs the claim workflow.
type Service struct {
	store   Store
	posts   PostGateway
	users   UserDirectory
	clock   clock.Clock
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, p PostGateway, u UserDirectory, clk clock.Clock, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		posts:   p,
		users:   u,
		clock:   clk,
		log:     log.With("component", "interactions"),
		metrics: m,
	}
}

// RecordFound stores a PENDING claim. The insert itself enforces one claim
// per (postId, finderEmail); a second attempt is a Conflict.
func (s *Service) RecordFound(ctx context.Context, req RecordFoundRequest) (*FoundInteraction, error) {
	postID := strings.TrimSpace(req.PostID)
	email := strings.TrimSpace(req.FinderEmail)
	if postID == "" || email == "" {
		return nil, fmt.Errorf("postId and finderEmail are required: %w", apperrors.ErrInvalidInput)
	}

	fi := &FoundInteraction{
		PostID:      postID,
		FinderEmail: email,
		FinderName:  strings.TrimSpace(req.FinderName),
		FinderPhone: strings.TrimSpace(req.FinderPhone),
	}
	s.enrichFinder(ctx, fi)
	s.enrichOwner(ctx, fi)
	fi.Status = StatusPending
	fi.Timestamp = s.clock.Now()

	if err := s.store.Create(ctx, fi); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			s.metrics.ClaimDuplicate()
			return nil, fmt.Errorf("interaction already recorded: %w", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("record claim: %w", err)
	}

	s.metrics.ClaimRecorded()
	s.log.Info("claim recorded", "id", fi.ID.Hex(), "postId", fi.PostID, "finder", fi.FinderEmail)
	return fi, nil
}

func (s *Service) enrichFinder(ctx context.Context, fi *FoundInteraction) {
	finder, err := s.users.GetByEmail(ctx, fi.FinderEmail)
	if err != nil {
		s.lookupFailed("finder", fi.FinderEmail, err)
		return
	}
	if finder.Name != "" {
		fi.FinderName = finder.Name
	}
	if finder.PhoneNumber != "" {
		fi.FinderPhone = finder.PhoneNumber
	}
}

func (s *Service) enrichOwner(ctx context.Context, fi *FoundInteraction) {
	post, err := s.posts.Get(ctx, fi.PostID)
	if err != nil {
		s.lookupFailed("post", fi.PostID, err)
		return
	}
	if post.UserID == "" {
		return
	}
	owner, err := s.users.GetByID(ctx, post.UserID)
	if err != nil {
		s.lookupFailed("owner", post.UserID, err)
		return
	}
	fi.OwnerEmail = owner.Email
}

func (s *Service) lookupFailed(what, key string, err error) {
	if apperrors.IsNotFound(err) {
		s.log.Debug("enrichment skipped", "lookup", what, "key", key)
		return
	}
	s.log.Warn("enrichment lookup failed", "lookup", what, "key", key, "error", err)
}

// ConfirmClaim accepts the claim, then resolves its post with a second,
// independent write. A missing post or failed post write leaves the claim
// ACCEPTED and reports PostResolved=false; calling again retries.
func (s *Service) ConfirmClaim(ctx context.Context, id string) (*ConfirmResult, error) {
	fi, err := s.store.Transition(ctx, id, sourcesOf(StatusAccepted), StatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("confirm claim %s: %w", id, err)
	}

	result := &ConfirmResult{FoundInteraction: *fi}

	switch err := s.posts.Resolve(ctx, fi.PostID); {
	case err == nil:
		result.PostResolved = true
	case apperrors.IsNotFound(err):
		s.log.Warn("claim accepted but post is gone", "id", id, "postId", fi.PostID)
	default:
		s.log.Warn("claim accepted but post resolution failed", "id", id, "postId", fi.PostID, "error", err)
	}

	s.metrics.ClaimConfirmed(result.PostResolved)
	s.log.Info("claim confirmed", "id", id, "postId", fi.PostID, "postResolved", result.PostResolved)
	return result, nil
}

// RejectClaim moves a PENDING claim to REJECTED.
func (s *Service) RejectClaim(ctx context.Context, id string) (*FoundInteraction, error) {
	fi, err := s.store.Transition(ctx, id, sourcesOf(StatusRejected), StatusRejected)
	if err != nil {
		return nil, fmt.Errorf("reject claim %s: %w", id, err)
	}

	s.metrics.ClaimRejected()
	s.log.Info("claim rejected", "id", id, "postId", fi.PostID)
	return fi, nil
}

// ListFoundByFinder returns the posts behind each of the finder's claims,
// skipping posts that have since been deleted.
func (s *Service) ListFoundByFinder(ctx context.Context, email string) ([]posts.Post, error) {
	claims, err := s.store.ListByFinder(ctx, email)
	if err != nil {
		return nil, err
	}

	found := make([]posts.Post, 0, len(claims))
	for _, fi := range claims {
		p, err := s.posts.Get(ctx, fi.PostID)
		if apperrors.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = append(found, *p)
	}
	return found, nil
}

// ListClaimsForOwner returns every claim on the owner's posts, in any state.
func (s *Service) ListClaimsForOwner(ctx context.Context, email string) ([]FoundInteraction, error) {
	return s.store.ListByOwner(ctx, email)
}
