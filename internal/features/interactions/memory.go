package interactions

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/xyz-asif/lostfound/internal/pkg/database"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type pairKey struct {
	postID string
	email  string
}

// MemoryStore is an in-process Store. The pair index is checked and written
// under one lock, matching the unique index in Mongo.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[primitive.ObjectID]*FoundInteraction
	byPair map[pairKey]primitive.ObjectID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[primitive.ObjectID]*FoundInteraction),
		byPair: make(map[pairKey]primitive.ObjectID),
	}
}

func (m *MemoryStore) Create(_ context.Context, fi *FoundInteraction) error {
	key := pairKey{postID: fi.PostID, email: fi.FinderEmail}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byPair[key]; exists {
		return apperrors.ErrConflict
	}
	if fi.ID.IsZero() {
		fi.ID = primitive.NewObjectID()
	}
	stored := *fi
	m.byID[fi.ID] = &stored
	m.byPair[key] = fi.ID
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*FoundInteraction, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	fi, ok := m.byID[oid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *fi
	return &out, nil
}

func (m *MemoryStore) Transition(_ context.Context, id string, from []Status, to Status) (*FoundInteraction, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	fi, ok := m.byID[oid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	allowed := false
	for _, s := range from {
		if fi.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("claim is %s: %w", fi.Status, apperrors.ErrConflict)
	}

	fi.Status = to
	out := *fi
	return &out, nil
}

func (m *MemoryStore) list(match func(fi *FoundInteraction) bool) []FoundInteraction {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []FoundInteraction{}
	for _, fi := range m.byID {
		if match(fi) {
			out = append(out, *fi)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out
}

func (m *MemoryStore) ListByFinder(_ context.Context, email string) ([]FoundInteraction, error) {
	return m.list(func(fi *FoundInteraction) bool { return fi.FinderEmail == email }), nil
}

func (m *MemoryStore) ListByOwner(_ context.Context, email string) ([]FoundInteraction, error) {
	return m.list(func(fi *FoundInteraction) bool { return fi.OwnerEmail == email }), nil
}

// Len reports how many claims are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}
