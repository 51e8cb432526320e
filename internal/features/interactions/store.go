package interactions

import (
	"context"
)

// Store persists claims. Lookups return apperrors.ErrNotFound when nothing matches.
type Store interface {
	// Create inserts fi unless a claim for the same (postId, finderEmail)
	// exists, in which case it returns apperrors.ErrConflict and writes nothing.
	Create(ctx context.Context, fi *FoundInteraction) error
	Get(ctx context.Context, id string) (*FoundInteraction, error)
	// Transition atomically moves a claim whose status is one of from to to.
	// It returns apperrors.ErrConflict when the claim is in any other state.
	Transition(ctx context.Context, id string, from []Status, to Status) (*FoundInteraction, error)
	ListByFinder(ctx context.Context, email string) ([]FoundInteraction, error)
	ListByOwner(ctx context.Context, email string) ([]FoundInteraction, error)
}
