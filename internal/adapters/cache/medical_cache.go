package cache

import (
	"context"
	"sync"

	"eohealth-registry/internal/domain/medical"
)

// MedicalRepo cachea ListByChild keyed por child id. Create invalida solo
// la key del child tocado; DeleteAll vacía todo.
type MedicalRepo struct {
	inner medical.Repository

	mu      sync.RWMutex
	byChild map[int64][]medical.Entry
}

func NewMedicalRepo(inner medical.Repository) *MedicalRepo {
	return &MedicalRepo{
		inner:   inner,
		byChild: make(map[int64][]medical.Entry),
	}
}

var _ medical.Repository = (*MedicalRepo)(nil)

func (r *MedicalRepo) Create(ctx context.Context, e medical.Entry) (int64, error) {
	id, err := r.inner.Create(ctx, e)
	if err == nil {
		r.mu.Lock()
		delete(r.byChild, e.ChildID)
		r.mu.Unlock()
	}
	return id, err
}

func (r *MedicalRepo) ListByChild(ctx context.Context, childID int64) ([]medical.Entry, error) {
	r.mu.RLock()
	cached, ok := r.byChild[childID]
	r.mu.RUnlock()
	if ok {
		return append([]medical.Entry(nil), cached...), nil
	}

	fresh, err := r.inner.ListByChild(ctx, childID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.byChild[childID] = fresh
	r.mu.Unlock()

	return append([]medical.Entry(nil), fresh...), nil
}

func (r *MedicalRepo) DeleteAll(ctx context.Context) error {
	err := r.inner.DeleteAll(ctx)
	if err == nil {
		r.mu.Lock()
		r.byChild = make(map[int64][]medical.Entry)
		r.mu.Unlock()
	}
	return err
}
