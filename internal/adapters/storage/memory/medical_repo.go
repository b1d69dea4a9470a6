package memory

import (
	"context"
	"sort"
	"sync"

	"eohealth-registry/internal/domain/medical"
)

type medicalRepo struct {
	mu     sync.RWMutex
	byID   map[int64]medical.Entry
	nextID int64
}

func NewMedicalRepo() medical.Repository {
	return &medicalRepo{
		byID:   make(map[int64]medical.Entry),
		nextID: 1,
	}
}

func (r *medicalRepo) Create(ctx context.Context, e medical.Entry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	e.ID = id
	// copia defensiva del slice de files: el caller puede reusarlo
	e.Files = append([]string(nil), e.Files...)
	r.byID[id] = e
	return id, nil
}

func (r *medicalRepo) ListByChild(ctx context.Context, childID int64) ([]medical.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medical.Entry, 0)
	for _, e := range r.byID {
		if e.ChildID == childID {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *medicalRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[int64]medical.Entry)
	return nil
}
