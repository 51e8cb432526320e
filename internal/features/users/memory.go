package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xyz-asif/lostfound/internal/pkg/database"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store. Records are copied in and out.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]*User
	byEmail map[string]primitive.ObjectID
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[primitive.ObjectID]*User),
		byEmail: make(map[string]primitive.ObjectID),
		now:     time.Now,
	}
}

func clone(u *User) *User {
	c := *u
	c.Roles = append([]string(nil), u.Roles...)
	return &c
}

func (m *MemoryStore) Get(_ context.Context, id string) (*User, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[oid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return clone(u), nil
}

func (m *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	oid, ok := m.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return clone(m.byID[oid]), nil
}

func (m *MemoryStore) UpsertByEmail(_ context.Context, u *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if oid, ok := m.byEmail[u.Email]; ok {
		existing := m.byID[oid]
		existing.Name = u.Name
		existing.PhotoURL = u.PhotoURL
		existing.PhoneNumber = u.PhoneNumber
		existing.AuthProvider = u.AuthProvider
		existing.UpdatedAt = now
		return clone(existing), nil
	}

	stored := clone(u)
	stored.ID = primitive.NewObjectID()
	stored.Blocked = false
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.byID[stored.ID] = stored
	m.byEmail[stored.Email] = stored.ID
	return clone(stored), nil
}

func (m *MemoryStore) mutate(id string, fn func(u *User)) (*User, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[oid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = m.now()
	return clone(u), nil
}

func (m *MemoryStore) SetPasswordHash(_ context.Context, id, hash string) error {
	_, err := m.mutate(id, func(u *User) { u.PasswordHash = hash })
	return err
}

func (m *MemoryStore) SetRoles(_ context.Context, id string, roles []string) error {
	_, err := m.mutate(id, func(u *User) { u.Roles = append([]string(nil), roles...) })
	return err
}

func (m *MemoryStore) ToggleBlocked(_ context.Context, id string) (*User, error) {
	return m.mutate(id, func(u *User) { u.Blocked = !u.Blocked })
}

func (m *MemoryStore) List(_ context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, *clone(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[oid]
	if !ok {
		return false, nil
	}
	delete(m.byEmail, u.Email)
	delete(m.byID, oid)
	return true, nil
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.byID)), nil
}
