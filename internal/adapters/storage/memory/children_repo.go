package memory

import (
	"context"
	"sort"
	"sync"

	"eohealth-registry/internal/adapters/storage"
	"eohealth-registry/internal/domain/children"
)

type childrenRepo struct {
	mu     sync.RWMutex
	byID   map[int64]children.Child
	nextID int64
}

func NewChildrenRepo() children.Repository {
	return &childrenRepo{
		byID:   make(map[int64]children.Child),
		nextID: 1,
	}
}

func (r *childrenRepo) Create(ctx context.Context, c children.Child) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// El contador nunca se resetea, ni siquiera tras DeleteAll: los ids
	// son estrictamente crecientes durante toda la vida del store.
	id := r.nextID
	r.nextID++

	c.ID = id
	r.byID[id] = c
	return id, nil
}

func (r *childrenRepo) SetSmartID(ctx context.Context, id int64, smartID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	c.SmartID = smartID
	r.byID[id] = c
	return true, nil
}

func (r *childrenRepo) GetByID(ctx context.Context, id int64) (children.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return children.Child{}, storage.ErrNotFound
	}
	return c, nil
}

func (r *childrenRepo) List(ctx context.Context) ([]children.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]children.Child, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *childrenRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[int64]children.Child)
	return nil
}
