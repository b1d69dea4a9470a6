package children

import "context"

type Repository interface {
	// Create inserta el registro sin smart id y devuelve el id asignado.
	Create(ctx context.Context, c Child) (int64, error)

	// SetSmartID es el backfill de la segunda fase. found == false cuando
	// el id no existe: el caller decide si lo ignora (el prototipo lo
	// ignoraba en silencio; acá queda visible como resultado).
	SetSmartID(ctx context.Context, id int64, smartID string) (found bool, err error)

	GetByID(ctx context.Context, id int64) (Child, error)

	// List devuelve todos los registros, más reciente primero (id DESC).
	List(ctx context.Context) ([]Child, error)

	// DeleteAll vacía la colección completa (solo reset administrativo).
	DeleteAll(ctx context.Context) error
}
