package users

import (
	"context"
)

// Store persists users. Lookups return apperrors.ErrNotFound when nothing matches.
type Store interface {
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// UpsertByEmail inserts u or, when its email exists, overwrites the profile
	// fields. PasswordHash, Roles and CreatedAt are written only on insert;
	// existing passwords change through SetPasswordHash.
	UpsertByEmail(ctx context.Context, u *User) (*User, error)
	SetPasswordHash(ctx context.Context, id, hash string) error
	SetRoles(ctx context.Context, id string, roles []string) error
	ToggleBlocked(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
