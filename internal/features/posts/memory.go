package posts

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xyz-asif/lostfound/internal/pkg/database"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]*Post
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[primitive.ObjectID]*Post), now: time.Now}
}

func clone(p *Post) *Post {
	c := *p
	c.Images = append([]string{}, p.Images...)
	return &c
}

func newer(a, b *Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.Hex() > b.ID.Hex()
}

func (m *MemoryStore) Insert(_ context.Context, p *Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.posts[p.ID] = clone(p)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Post, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.posts[oid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return clone(p), nil
}

func (m *MemoryStore) Replace(_ context.Context, p *Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[p.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.posts[p.ID] = clone(p)
	return nil
}

func (m *MemoryStore) collect(match func(p *Post) bool) []Post {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*Post
	for _, p := range m.posts {
		if match(p) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return newer(matched[i], matched[j]) })

	out := make([]Post, 0, len(matched))
	for _, p := range matched {
		out = append(out, *clone(p))
	}
	return out
}

func (m *MemoryStore) List(_ context.Context, f Filter) ([]Post, error) {
	return m.collect(func(p *Post) bool {
		if f.Status != "" && p.Status != f.Status {
			return false
		}
		if f.UserID != "" && p.UserID != f.UserID {
			return false
		}
		return true
	}), nil
}

func (m *MemoryStore) FindLostByIdentifier(_ context.Context, field Identifier, value string) (*Post, error) {
	found := m.collect(func(p *Post) bool {
		if p.Status != StatusLost {
			return false
		}
		switch field {
		case IdentifierIMEI:
			return strings.EqualFold(p.IMEI, value)
		case IdentifierSerial:
			return strings.EqualFold(p.SerialNumber, value)
		}
		return false
	})
	if len(found) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &found[0], nil
}

func (m *MemoryStore) mutate(id string, fn func(p *Post)) (*Post, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[oid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	fn(p)
	p.UpdatedAt = m.now()
	return clone(p), nil
}

func (m *MemoryStore) SetStatus(_ context.Context, id string, status Status) error {
	_, err := m.mutate(id, func(p *Post) { p.Status = status })
	return err
}

func (m *MemoryStore) ToggleHidden(_ context.Context, id string) (*Post, error) {
	return m.mutate(id, func(p *Post) { p.Hidden = !p.Hidden })
}

func (m *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[oid]; !ok {
		return false, nil
	}
	delete(m.posts, oid)
	return true, nil
}

func (m *MemoryStore) DeleteByUser(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, p := range m.posts {
		if p.UserID == userID {
			delete(m.posts, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountByStatus(_ context.Context, status Status) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, p := range m.posts {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}
