// Package cache es el read path que consumen UI y reportes: decora los
// repositorios cacheando las lecturas de lista, con invalidación disparada
// por escritura (sin TTL). La garantía es read-your-writes dentro del
// proceso; no hay invalidación cross-process. Reemplaza el st.cache_data +
// .clear() del prototipo.
package cache

import (
	"context"
	"sync"

	"eohealth-registry/internal/domain/children"
)

type ChildrenRepo struct {
	inner children.Repository

	mu    sync.RWMutex
	list  []children.Child
	valid bool
}

func NewChildrenRepo(inner children.Repository) *ChildrenRepo {
	return &ChildrenRepo{inner: inner}
}

var _ children.Repository = (*ChildrenRepo)(nil)

func (r *ChildrenRepo) Create(ctx context.Context, c children.Child) (int64, error) {
	id, err := r.inner.Create(ctx, c)
	if err == nil {
		r.invalidate()
	}
	return id, err
}

func (r *ChildrenRepo) SetSmartID(ctx context.Context, id int64, smartID string) (bool, error) {
	found, err := r.inner.SetSmartID(ctx, id, smartID)
	if err == nil && found {
		r.invalidate()
	}
	return found, err
}

func (r *ChildrenRepo) GetByID(ctx context.Context, id int64) (children.Child, error) {
	// lecturas puntuales van directo; la cache cubre solo el listado
	return r.inner.GetByID(ctx, id)
}

func (r *ChildrenRepo) List(ctx context.Context) ([]children.Child, error) {
	r.mu.RLock()
	if r.valid {
		out := append([]children.Child(nil), r.list...)
		r.mu.RUnlock()
		return out, nil
	}
	r.mu.RUnlock()

	fresh, err := r.inner.List(ctx)
	if err != nil {
		// los errores no se cachean: el próximo read reintenta
		return nil, err
	}

	r.mu.Lock()
	r.list = fresh
	r.valid = true
	r.mu.Unlock()

	return append([]children.Child(nil), fresh...), nil
}

func (r *ChildrenRepo) DeleteAll(ctx context.Context) error {
	err := r.inner.DeleteAll(ctx)
	if err == nil {
		r.invalidate()
	}
	return err
}

func (r *ChildrenRepo) invalidate() {
	r.mu.Lock()
	r.list = nil
	r.valid = false
	r.mu.Unlock()
}
