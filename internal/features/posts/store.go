package posts

import (
	"context"
)

// Filter narrows List. Zero fields match everything.
type Filter struct {
	Status Status
	UserID string
}

// Store persists posts. Lookups return apperrors.ErrNotFound when nothing matches.
// Lists are ordered newest first (createdAt, then id).
type Store interface {
	Insert(ctx context.Context, p *Post) error
	Get(ctx context.Context, id string) (*Post, error)
	Replace(ctx context.Context, p *Post) error
	List(ctx context.Context, f Filter) ([]Post, error)
	// FindLostByIdentifier returns the newest LOST post whose field equals
	// value ignoring case.
	FindLostByIdentifier(ctx context.Context, field Identifier, value string) (*Post, error)
	SetStatus(ctx context.Context, id string, status Status) error
	ToggleHidden(ctx context.Context, id string) (*Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
