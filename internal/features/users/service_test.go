package users

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	svc := NewService(store, logger.Discard())
	svc.hashCost = bcrypt.MinCost
	return svc, store
}

func TestSave_RequiresEmail(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Save(context.Background(), SaveUserRequest{Email: "   "})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSave_NewUserDefaults(t *testing.T) {
	svc, _ := newTestService()
	u, err := svc.Save(context.Background(), SaveUserRequest{Email: "a@x.com", Name: "Asha", Password: "secret1"})
	require.NoError(t, err)

	assert.False(t, u.ID.IsZero())
	assert.Equal(t, []string{RoleUser}, u.Roles)
	assert.Equal(t, ProviderLocal, u.AuthProvider)
	assert.True(t, CheckPassword(u, "secret1"))
	assert.False(t, CheckPassword(u, "wrong"))
}

func TestSave_UpsertKeepsIDAndPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Save(ctx, SaveUserRequest{Email: "a@x.com", Name: "Asha", Password: "secret1"})
	require.NoError(t, err)

	second, err := svc.Save(ctx, SaveUserRequest{Email: "a@x.com", Name: "Asha K", PhoneNumber: "+94 77 123 4567", AuthProvider: ProviderGoogle})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Asha K", second.Name)
	assert.Equal(t, ProviderGoogle, second.AuthProvider)
	assert.True(t, CheckPassword(second, "secret1"), "empty password must not wipe the hash")

	third, err := svc.Save(ctx, SaveUserRequest{Email: "a@x.com", Password: "newpass"})
	require.NoError(t, err)
	assert.True(t, CheckPassword(third, "secret1"), "upsert must not replace an existing hash")
	assert.False(t, CheckPassword(third, "newpass"))

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSave_ConcurrentSameEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Save(ctx, SaveUserRequest{Email: "race@x.com", Name: "R"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestGetByEmail_CaseSensitive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Save(ctx, SaveUserRequest{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	_, err = svc.GetByEmail(ctx, "A@X.COM")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestToggleBlockedAndDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, err := svc.Save(ctx, SaveUserRequest{Email: "a@x.com"})
	require.NoError(t, err)

	toggled, err := svc.ToggleBlocked(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.True(t, toggled.Blocked)
	toggled, err = svc.ToggleBlocked(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.False(t, toggled.Blocked)

	require.NoError(t, svc.Delete(ctx, u.ID.Hex()))
	require.ErrorIs(t, svc.Delete(ctx, u.ID.Hex()), apperrors.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "garbage"), apperrors.ErrNotFound)

	_, err = svc.GetByEmail(ctx, "a@x.com")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetRolesAndPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, err := svc.Save(ctx, SaveUserRequest{Email: "boss@x.com"})
	require.NoError(t, err)
	require.False(t, u.IsAdmin())

	require.NoError(t, svc.SetRoles(ctx, u.ID.Hex(), []string{RoleAdmin}))
	require.NoError(t, svc.SetPassword(ctx, u.ID.Hex(), "hunter22"))

	got, err := svc.GetByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())
	assert.True(t, CheckPassword(got, "hunter22"))
}
