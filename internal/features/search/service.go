package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/xyz-asif/lostfound/internal/features/posts"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	"github.com/xyz-asif/lostfound/internal/pkg/metrics"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
)

// ErrNoMatch is returned when no LOST post carries the identifier.
var ErrNoMatch = fmt.Errorf("no matching lost post: %w", apperrors.ErrNotFound)

// PostFinder is the slice of posts.Store the matcher needs.
type PostFinder interface {
	FindLostByIdentifier(ctx context.Context, field posts.Identifier, value string) (*posts.Post, error)
}

type Service struct {
	finder  PostFinder
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewService(finder PostFinder, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{finder: finder, log: log.With("component", "search"), metrics: m}
}

// ByIdentifier finds the newest LOST post whose IMEI (PHONE) or serial
// number (LAPTOP) equals value, ignoring case and surrounding space. Unknown
// types and blank values are no match rather than an error.
func (s *Service) ByIdentifier(ctx context.Context, deviceType, value string) (*posts.Post, error) {
	t, ok := ParseDeviceType(deviceType)
	if !ok {
		s.log.Debug("unsupported device type", "type", deviceType)
		s.metrics.Search("INVALID", false)
		return nil, ErrNoMatch
	}

	value = strings.TrimSpace(value)
	if value == "" {
		s.metrics.Search(string(t), false)
		return nil, ErrNoMatch
	}

	post, err := s.finder.FindLostByIdentifier(ctx, identifierFor[t], value)
	if apperrors.IsNotFound(err) {
		s.metrics.Search(string(t), false)
		return nil, ErrNoMatch
	}
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", t, err)
	}

	s.metrics.Search(string(t), true)
	s.log.Debug("identifier matched", "type", t, "postId", post.ID.Hex())
	return post, nil
}
