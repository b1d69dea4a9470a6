package medical

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) (int64, error)

	// ListByChild devuelve las entradas del child, más reciente primero
	// (id DESC). Un child sin entradas devuelve secuencia vacía.
	ListByChild(ctx context.Context, childID int64) ([]Entry, error)

	DeleteAll(ctx context.Context) error
}
