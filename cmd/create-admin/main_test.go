package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/lostfound/internal/features/users"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
)

func TestPromote(t *testing.T) {
	ctx := context.Background()
	svc := users.NewService(users.NewMemoryStore(), logger.Discard())

	existing, err := svc.Save(ctx, users.SaveUserRequest{Email: "boss@x.com", Name: "Boss"})
	require.NoError(t, err)

	u, err := promote(ctx, svc, options{Email: "boss@x.com", Name: "Boss", Password: "secret1", Role: "owner"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, u.ID)
	assert.ElementsMatch(t, []string{users.RoleOwner, users.RoleUser}, u.Roles)
	assert.True(t, u.IsAdmin())
	assert.True(t, users.CheckPassword(u, "secret1"))
}

func TestPromote_RejectsUnknownRole(t *testing.T) {
	svc := users.NewService(users.NewMemoryStore(), logger.Discard())
	_, err := promote(context.Background(), svc, options{Email: "a@x.com", Role: "USER"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
